package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/evaluation"
	"github.com/briandean03/interview-manager-staging/internal/schedule"
)

func cand(id byte, status string) candidate.Candidate {
	return candidate.Candidate{ID: uuid.UUID{id}, Name: "c", Status: status}
}

func apptAt(candID byte, at time.Time) schedule.Appointment {
	return schedule.Appointment{ID: uuid.New(), CandidateID: uuid.UUID{candID}, AppointmentTime: at}
}

func evalFor(candID byte, idx int) evaluation.AIEvaluation {
	return evaluation.AIEvaluation{ID: uuid.New(), CandidateID: uuid.UUID{candID}, AnswerIndex: idx}
}

func TestCompute_PendingEvaluationsNeverNegative(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	// one interviewed candidate, three evaluated candidates
	candidates := []candidate.Candidate{
		cand(1, candidate.StatusInterviewed),
		cand(2, candidate.StatusCVProcessed),
		cand(3, candidate.StatusCVProcessed),
		cand(4, candidate.StatusCVProcessed),
	}
	evals := []evaluation.AIEvaluation{
		evalFor(1, 0), evalFor(2, 0), evalFor(3, 0),
	}

	m := Compute(candidates, nil, evals, now)
	if m.PendingEvaluations != 0 {
		t.Fatalf("pending evaluations = %d, want floor at 0", m.PendingEvaluations)
	}
}

func TestCompute_PendingEvaluationsHeuristic(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	candidates := []candidate.Candidate{
		cand(1, candidate.StatusInterviewed),
		cand(2, candidate.StatusInterviewed),
		cand(3, candidate.StatusInterviewed),
	}
	// candidate 1 has two answer rows but counts once
	evals := []evaluation.AIEvaluation{
		evalFor(1, 0), evalFor(1, 1),
	}

	m := Compute(candidates, nil, evals, now)
	if m.PendingEvaluations != 2 {
		t.Fatalf("pending evaluations = %d, want 2", m.PendingEvaluations)
	}
}

func TestCompute_UpcomingExcludesInterviewed(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	candidates := []candidate.Candidate{
		cand(1, candidate.StatusForInterview),
		cand(2, candidate.StatusInterviewed),
	}
	appts := []schedule.Appointment{
		apptAt(1, now.AddDate(0, 0, 3)),  // future, counts
		apptAt(2, now.AddDate(0, 0, 3)),  // future but interviewed, excluded
		apptAt(1, now.AddDate(0, 0, -3)), // past, excluded
	}

	m := Compute(candidates, appts, nil, now)
	if m.UpcomingInterviews != 1 {
		t.Fatalf("upcoming interviews = %d, want 1", m.UpcomingInterviews)
	}
}

func TestCompute_MonthlyTrendSortedAscending(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	candidates := []candidate.Candidate{cand(1, candidate.StatusForInterview)}
	appts := []schedule.Appointment{
		apptAt(1, time.Date(2025, time.July, 10, 10, 0, 0, 0, time.UTC)),
		apptAt(1, time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)),
		apptAt(1, time.Date(2025, time.June, 5, 10, 0, 0, 0, time.UTC)),
		apptAt(1, time.Date(2025, time.June, 6, 10, 0, 0, 0, time.UTC)),
	}

	m := Compute(candidates, appts, nil, now)

	want := []MonthBucket{
		{Month: "2025-05", Count: 1},
		{Month: "2025-06", Count: 2},
		{Month: "2025-07", Count: 1},
	}
	if len(m.MonthlyTrend) != len(want) {
		t.Fatalf("trend has %d buckets, want %d", len(m.MonthlyTrend), len(want))
	}
	for i, b := range want {
		if m.MonthlyTrend[i] != b {
			t.Fatalf("bucket %d = %+v, want %+v", i, m.MonthlyTrend[i], b)
		}
	}
}

func TestCompute_StatusCounts(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	candidates := []candidate.Candidate{
		cand(1, candidate.StatusCVProcessed),
		cand(2, candidate.StatusCVProcessed),
		cand(3, candidate.StatusHired),
		{ID: uuid.UUID{4}, Name: "c", Status: "Some Custom Stage"},
	}

	m := Compute(candidates, nil, nil, now)
	if m.TotalCandidates != 4 {
		t.Fatalf("total = %d, want 4", m.TotalCandidates)
	}
	if m.StatusCounts[candidate.StatusCVProcessed] != 2 {
		t.Fatalf("cv processed = %d, want 2", m.StatusCounts[candidate.StatusCVProcessed])
	}
	if m.StatusCounts["Some Custom Stage"] != 1 {
		t.Fatal("free-text statuses must be counted as-is")
	}
}
