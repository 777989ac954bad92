package candidate

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func testCandidates(now time.Time) []Candidate {
	return []Candidate{
		{
			ID:           uuid.UUID{1},
			Name:         "Ada Lovelace",
			Email:        strPtr("ada@example.com"),
			PositionCode: strPtr("BE-GO"),
			Status:       StatusForInterview,
			CreatedAt:    now.Add(-2 * time.Hour),
		},
		{
			ID:           uuid.UUID{2},
			Name:         "Grace Hopper",
			Email:        strPtr("grace@example.com"),
			PositionCode: strPtr("BE-GO"),
			Status:       StatusInterviewed,
			CreatedAt:    now.AddDate(0, 0, -10),
		},
		{
			ID:           uuid.UUID{3},
			Name:         "Alan Turing",
			Email:        strPtr("alan@example.com"),
			PositionCode: strPtr("DATA"),
			Status:       StatusForInterview,
			CreatedAt:    now.AddDate(0, 0, -40),
		},
		{
			ID:        uuid.UUID{4},
			Name:      "No Contact",
			Status:    StatusCVProcessed,
			CreatedAt: now.AddDate(0, 0, -3),
		},
	}
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	now := time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)
	cands := testCandidates(now)

	got := Filter{Search: "LOVELACE"}.Apply(cands, now)
	if len(got) != 1 || got[0].Name != "Ada Lovelace" {
		t.Fatalf("search by name: got %d results", len(got))
	}

	got = Filter{Search: "grace@"}.Apply(cands, now)
	if len(got) != 1 || got[0].Name != "Grace Hopper" {
		t.Fatalf("search by email: got %d results", len(got))
	}

	got = Filter{Search: "be-go"}.Apply(cands, now)
	if len(got) != 2 {
		t.Fatalf("search by position: got %d results, want 2", len(got))
	}
}

func TestFilter_PredicatesCommute(t *testing.T) {
	now := time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)
	cands := testCandidates(now)

	statusThenPosition := Filter{PositionCode: "BE-GO"}.Apply(
		Filter{Status: StatusForInterview}.Apply(cands, now), now)
	positionThenStatus := Filter{Status: StatusForInterview}.Apply(
		Filter{PositionCode: "BE-GO"}.Apply(cands, now), now)
	combined := Filter{Status: StatusForInterview, PositionCode: "BE-GO"}.Apply(cands, now)

	if len(statusThenPosition) != len(positionThenStatus) || len(combined) != len(statusThenPosition) {
		t.Fatalf("filter order changed the result: %d vs %d vs %d",
			len(statusThenPosition), len(positionThenStatus), len(combined))
	}
	for i := range combined {
		if combined[i].ID != statusThenPosition[i].ID || combined[i].ID != positionThenStatus[i].ID {
			t.Fatalf("filter order changed result membership at index %d", i)
		}
	}
}

func TestFilter_CreatedBuckets(t *testing.T) {
	now := time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)
	cands := testCandidates(now)

	cases := []struct {
		bucket CreatedBucket
		want   int
	}{
		{CreatedToday, 1},     // Ada, 2h ago
		{CreatedLast7, 2},     // Ada + No Contact
		{CreatedLast30, 3},    // + Grace (10 days)
		{CreatedThisMonth, 3}, // Alan is 40 days back, April
		{CreatedLastMonth, 1}, // Alan
		{CreatedAny, 4},
	}

	for _, tc := range cases {
		got := Filter{Created: tc.bucket}.Apply(cands, now)
		if len(got) != tc.want {
			t.Fatalf("bucket %q: got %d candidates, want %d", tc.bucket, len(got), tc.want)
		}
	}
}

func TestFilter_AllPredicatesAnded(t *testing.T) {
	now := time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)
	cands := testCandidates(now)

	f := Filter{
		Search:       "example.com",
		Status:       StatusForInterview,
		PositionCode: "BE-GO",
		Created:      CreatedLast7,
	}

	got := f.Apply(cands, now)
	if len(got) != 1 || got[0].Name != "Ada Lovelace" {
		t.Fatalf("combined filter: got %d results, want Ada only", len(got))
	}
}
