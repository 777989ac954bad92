package evaluation

import (
	"context"

	"github.com/google/uuid"
)

// Repository contains the read-only DB interactions of the results and
// progress viewers. Evaluations and logs are written by an external
// pipeline; this client never mutates them.
type Repository interface {
	ListEvaluations(ctx context.Context) ([]AIEvaluation, error)
	ListEvaluationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]AIEvaluation, error)

	ListExecutionLogs(ctx context.Context) ([]ExecutionLog, error)
	ListExecutionLogsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]ExecutionLog, error)
}
