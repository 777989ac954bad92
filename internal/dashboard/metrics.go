package dashboard

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/evaluation"
	"github.com/briandean03/interview-manager-staging/internal/schedule"
)

// Metrics is the dashboard snapshot. It is pure derivation over fetched
// rows; nothing here is authoritative beyond "count matching rows".
type Metrics struct {
	TotalCandidates    int            `json:"total_candidates"`
	StatusCounts       map[string]int `json:"status_counts"`
	UpcomingInterviews int            `json:"upcoming_interviews"`
	PendingEvaluations int            `json:"pending_evaluations"`
	MonthlyTrend       []MonthBucket  `json:"monthly_trend"`
	ComputedAt         time.Time      `json:"computed_at"`
}

// MonthBucket counts future appointments per calendar month.
type MonthBucket struct {
	Month string `json:"month"` // yyyy-MM
	Count int    `json:"count"`
}

// Compute derives the dashboard metrics from the three row sets. Lookup maps
// keyed by candidate ID are built once here, not per row.
//
// PendingEvaluations is a documented heuristic: interviewed candidates minus
// candidates with at least one evaluation row, floored at zero. A candidate
// with a partial evaluation counts as evaluated, so the value can undercount;
// that is the source behavior, kept on purpose.
func Compute(candidates []candidate.Candidate, appts []schedule.Appointment, evals []evaluation.AIEvaluation, now time.Time) Metrics {
	m := Metrics{
		TotalCandidates: len(candidates),
		StatusCounts:    make(map[string]int),
		ComputedAt:      now,
	}

	statusByCandidate := make(map[uuid.UUID]string, len(candidates))
	for _, c := range candidates {
		m.StatusCounts[c.Status]++
		statusByCandidate[c.ID] = c.Status
	}

	trend := make(map[string]int)
	for _, a := range appts {
		if !a.AppointmentTime.After(now) {
			continue
		}
		if statusByCandidate[a.CandidateID] == candidate.StatusInterviewed {
			continue
		}
		m.UpcomingInterviews++
		trend[a.AppointmentTime.Format("2006-01")]++
	}

	for month, count := range trend {
		m.MonthlyTrend = append(m.MonthlyTrend, MonthBucket{Month: month, Count: count})
	}
	sort.Slice(m.MonthlyTrend, func(i, j int) bool {
		return m.MonthlyTrend[i].Month < m.MonthlyTrend[j].Month
	})

	evaluated := make(map[uuid.UUID]struct{})
	for _, e := range evals {
		evaluated[e.CandidateID] = struct{}{}
	}

	pending := m.StatusCounts[candidate.StatusInterviewed] - len(evaluated)
	if pending < 0 {
		pending = 0
	}
	m.PendingEvaluations = pending

	return m
}
