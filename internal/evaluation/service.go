package evaluation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CandidateEvaluations(ctx context.Context, candidateID uuid.UUID) ([]AIEvaluation, error) {
	evals, err := s.repo.ListEvaluationsByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return evals, nil
}

func (s *Service) CandidateLogs(ctx context.Context, candidateID uuid.UUID) ([]ExecutionLog, error) {
	logs, err := s.repo.ListExecutionLogsByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list execution logs: %w", err)
	}
	return logs, nil
}

// ResultsByCandidate returns every evaluation row grouped per candidate,
// the shape the results viewer joins against its candidate list.
func (s *Service) ResultsByCandidate(ctx context.Context) (map[uuid.UUID][]AIEvaluation, error) {
	evals, err := s.repo.ListEvaluations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return GroupByCandidate(evals), nil
}

// ProgressByCandidate is the progress viewer's counterpart over the
// execution logs.
func (s *Service) ProgressByCandidate(ctx context.Context) (map[uuid.UUID][]ExecutionLog, error) {
	logs, err := s.repo.ListExecutionLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list execution logs: %w", err)
	}
	return GroupLogsByCandidate(logs), nil
}

// GroupByCandidate builds the typed lookup map the results viewer joins
// against. It is built once per fetch cycle, not per rendered row.
func GroupByCandidate(evals []AIEvaluation) map[uuid.UUID][]AIEvaluation {
	byCandidate := make(map[uuid.UUID][]AIEvaluation)
	for _, e := range evals {
		byCandidate[e.CandidateID] = append(byCandidate[e.CandidateID], e)
	}
	return byCandidate
}

// GroupLogsByCandidate is the progress viewer's counterpart lookup map.
func GroupLogsByCandidate(logs []ExecutionLog) map[uuid.UUID][]ExecutionLog {
	byCandidate := make(map[uuid.UUID][]ExecutionLog)
	for _, l := range logs {
		byCandidate[l.CandidateID] = append(byCandidate[l.CandidateID], l)
	}
	return byCandidate
}
