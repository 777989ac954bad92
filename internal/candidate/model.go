package candidate

import (
	"time"

	"github.com/google/uuid"
)

// Candidate status labels are free text written by the external ingestion
// pipeline. These are the ones the dashboard cares about; anything else is
// passed through untouched.
const (
	StatusCVProcessed  = "CV Processed"
	StatusForInterview = "For Interview"
	StatusInterviewed  = "Interviewed"
	StatusHired        = "Hired"
	StatusRejected     = "Rejected"
)

type Candidate struct {
	ID           uuid.UUID
	Name         string
	Email        *string
	Phone        *string
	PositionCode *string
	Status       string
	Vote         *float64 // evaluation score, 0..10
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Position is a row of the position-codes lookup table.
type Position struct {
	Code      string
	Title     string
	CreatedAt time.Time
}
