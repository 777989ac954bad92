package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	evals []AIEvaluation
	logs  []ExecutionLog
}

func (f *fakeRepo) ListEvaluations(ctx context.Context) ([]AIEvaluation, error) {
	return f.evals, nil
}

func (f *fakeRepo) ListEvaluationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]AIEvaluation, error) {
	var out []AIEvaluation
	for _, e := range f.evals {
		if e.CandidateID == candidateID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListExecutionLogs(ctx context.Context) ([]ExecutionLog, error) {
	return f.logs, nil
}

func (f *fakeRepo) ListExecutionLogsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]ExecutionLog, error) {
	var out []ExecutionLog
	for _, l := range f.logs {
		if l.CandidateID == candidateID {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestResultsByCandidate_GroupsAndKeepsOrder(t *testing.T) {
	ada := uuid.UUID{1}
	grace := uuid.UUID{2}

	repo := &fakeRepo{evals: []AIEvaluation{
		{ID: uuid.New(), CandidateID: ada, AnswerIndex: 0},
		{ID: uuid.New(), CandidateID: ada, AnswerIndex: 1},
		{ID: uuid.New(), CandidateID: grace, AnswerIndex: 0},
	}}
	svc := NewService(repo)

	grouped, err := svc.ResultsByCandidate(context.Background())
	if err != nil {
		t.Fatalf("results by candidate: %v", err)
	}

	if len(grouped) != 2 {
		t.Fatalf("grouped into %d candidates, want 2", len(grouped))
	}
	if len(grouped[ada]) != 2 || len(grouped[grace]) != 1 {
		t.Fatalf("row counts = %d/%d, want 2/1", len(grouped[ada]), len(grouped[grace]))
	}
	for i, e := range grouped[ada] {
		if e.AnswerIndex != i {
			t.Fatalf("answer order not preserved: index %d at position %d", e.AnswerIndex, i)
		}
	}
}

func TestProgressByCandidate_GroupsLogs(t *testing.T) {
	ada := uuid.UUID{1}
	grace := uuid.UUID{2}
	now := time.Now()

	repo := &fakeRepo{logs: []ExecutionLog{
		{ID: 1, CandidateID: ada, CurrentStatus: "CV received", CreatedAt: now},
		{ID: 2, CandidateID: ada, CurrentStatus: "CV parsed", CreatedAt: now.Add(time.Hour)},
		{ID: 3, CandidateID: grace, CurrentStatus: "CV received", CreatedAt: now},
	}}
	svc := NewService(repo)

	grouped, err := svc.ProgressByCandidate(context.Background())
	if err != nil {
		t.Fatalf("progress by candidate: %v", err)
	}

	if len(grouped[ada]) != 2 {
		t.Fatalf("ada has %d log rows, want 2", len(grouped[ada]))
	}
	if grouped[ada][0].CurrentStatus != "CV received" || grouped[ada][1].CurrentStatus != "CV parsed" {
		t.Fatal("log order not preserved within a candidate")
	}
	if len(grouped[grace]) != 1 {
		t.Fatalf("grace has %d log rows, want 1", len(grouped[grace]))
	}
}

func TestGroupByCandidate_EmptyInput(t *testing.T) {
	if got := GroupByCandidate(nil); len(got) != 0 {
		t.Fatalf("empty input grouped into %d entries", len(got))
	}
	if got := GroupLogsByCandidate(nil); len(got) != 0 {
		t.Fatalf("empty input grouped into %d entries", len(got))
	}
}
