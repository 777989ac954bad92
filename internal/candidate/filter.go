package candidate

import (
	"strings"
	"time"
)

// CreatedBucket selects candidates by how recently their row was created.
type CreatedBucket string

const (
	CreatedAny       CreatedBucket = ""
	CreatedToday     CreatedBucket = "today"
	CreatedLast7     CreatedBucket = "last7"
	CreatedLast30    CreatedBucket = "last30"
	CreatedThisMonth CreatedBucket = "this_month"
	CreatedLastMonth CreatedBucket = "last_month"
)

// Filter is the directory's client-side filter. Zero values mean "no
// constraint"; all set constraints are ANDed, so applying them in any order
// yields the same result set.
type Filter struct {
	Search       string
	Status       string
	PositionCode string
	Created      CreatedBucket
}

// Apply evaluates the filter over the full in-memory candidate set. The
// directory holds the whole set and re-filters on every keystroke; this is
// fine at the assumed scale of hundreds of rows.
func (f Filter) Apply(candidates []Candidate, now time.Time) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if f.Matches(c, now) {
			out = append(out, c)
		}
	}
	return out
}

func (f Filter) Matches(c Candidate, now time.Time) bool {
	return f.matchesSearch(c) &&
		f.matchesStatus(c) &&
		f.matchesPosition(c) &&
		f.matchesCreated(c, now)
}

func (f Filter) matchesSearch(c Candidate) bool {
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	if c.Email != nil && strings.Contains(strings.ToLower(*c.Email), term) {
		return true
	}
	if c.PositionCode != nil && strings.Contains(strings.ToLower(*c.PositionCode), term) {
		return true
	}
	return false
}

func (f Filter) matchesStatus(c Candidate) bool {
	return f.Status == "" || c.Status == f.Status
}

func (f Filter) matchesPosition(c Candidate) bool {
	if f.PositionCode == "" {
		return true
	}
	return c.PositionCode != nil && *c.PositionCode == f.PositionCode
}

func (f Filter) matchesCreated(c Candidate, now time.Time) bool {
	if f.Created == CreatedAny {
		return true
	}

	created := c.CreatedAt.In(now.Location())
	today := truncateToDay(now)

	switch f.Created {
	case CreatedToday:
		return truncateToDay(created).Equal(today)
	case CreatedLast7:
		return !created.Before(today.AddDate(0, 0, -7))
	case CreatedLast30:
		return !created.Before(today.AddDate(0, 0, -30))
	case CreatedThisMonth:
		return created.Year() == now.Year() && created.Month() == now.Month()
	case CreatedLastMonth:
		// last day of the previous month, safe across 31st-of-month edges
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
		return created.Year() == prev.Year() && created.Month() == prev.Month()
	default:
		return true
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
