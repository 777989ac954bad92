package candidate

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrUnknownField      = errors.New("unknown candidate field")
)

// Repository contains all DB interactions needed by the directory.
type Repository interface {
	ListCandidates(ctx context.Context) ([]Candidate, error)
	GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error)

	// UpdateCandidateField patches a single column and returns the full
	// updated row, so callers can refresh every copy they hold.
	UpdateCandidateField(ctx context.Context, id uuid.UUID, field string, value any) (*Candidate, error)

	ListPositions(ctx context.Context) ([]Position, error)
}
