package schedule

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID              uuid.UUID
	CandidateID     uuid.UUID
	AppointmentTime time.Time
	PositionCode    *string
	QRevision       *string
	Notes           *string
	CreatedAt       time.Time
}

// BlockedRange marks an inclusive calendar-day span as unavailable for
// booking. A nil EndDate means the block is open-ended: every day from
// StartDate onward is unavailable.
type BlockedRange struct {
	ID        uuid.UUID
	StartDate time.Time
	EndDate   *time.Time
	Reason    *string
	CreatedAt time.Time
}
