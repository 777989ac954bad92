package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrBlockedRangeNotFound = errors.New("blocked range not found")
	ErrCandidateNotFound    = errors.New("candidate not found")
)

// Repository contains all DB interactions needed by the booking engine.
type Repository interface {
	ListAppointments(ctx context.Context) ([]Appointment, error)
	ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]Appointment, error)
	ListAppointmentsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Appointment, error)
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error)
	UpdateAppointment(ctx context.Context, a Appointment) (*Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error

	ListBlockedRanges(ctx context.Context) ([]BlockedRange, error)
	CreateBlockedRange(ctx context.Context, b BlockedRange) (*BlockedRange, error)
	DeleteBlockedRange(ctx context.Context, id uuid.UUID) error

	// For validating the candidate reference before a booking mutation
	CandidateExists(ctx context.Context, id uuid.UUID) (bool, error)
}
