package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func appt(id byte, at time.Time) Appointment {
	return Appointment{
		ID:              uuid.UUID{id},
		CandidateID:     uuid.UUID{0xF0, id},
		AppointmentTime: at,
	}
}

func TestWeekStart_AlwaysConfiguredFirstDay(t *testing.T) {
	// 2025-01-06 is a Monday
	for i := 0; i < 7; i++ {
		ref := day(2025, time.January, 6+i)
		start := WeekStart(ref, time.Monday)

		if start.Weekday() != time.Monday {
			t.Fatalf("week start of %s is %s, want Monday", ref.Format("2006-01-02"), start.Weekday())
		}
		if !start.Equal(day(2025, time.January, 6)) {
			t.Fatalf("week start of %s = %s, want 2025-01-06", ref.Format("2006-01-02"), start.Format("2006-01-02"))
		}
	}
}

func TestWeekStart_SundayFirst(t *testing.T) {
	start := WeekStart(day(2025, time.January, 8), time.Sunday)
	if !start.Equal(day(2025, time.January, 5)) {
		t.Fatalf("expected 2025-01-05, got %s", start.Format("2006-01-02"))
	}
}

func TestBuildWeek_GridContainsReference(t *testing.T) {
	ref := day(2025, time.March, 19)
	grid := BuildWeek(ref, nil, nil, time.Monday, 8, 22)

	found := false
	for _, col := range grid.Days {
		if col.Date.Equal(ref) {
			found = true
		}
	}
	if !found {
		t.Fatalf("grid starting %s does not contain reference date %s",
			grid.Start.Format("2006-01-02"), ref.Format("2006-01-02"))
	}
}

func TestBuildWeek_MinutesIgnoredForBucketing(t *testing.T) {
	monday := day(2025, time.January, 6)

	appts := []Appointment{
		appt(1, monday.Add(10*time.Hour)),
		appt(2, monday.Add(10*time.Hour+29*time.Minute)),
		appt(3, monday.Add(10*time.Hour+59*time.Minute)),
		appt(4, monday.Add(11*time.Hour)),
	}

	grid := BuildWeek(monday, appts, nil, time.Monday, 8, 22)

	tenAM := grid.Days[0].Slots[10-8]
	if len(tenAM.Appointments) != 3 {
		t.Fatalf("expected 3 appointments in the 10:00 cell, got %d", len(tenAM.Appointments))
	}

	elevenAM := grid.Days[0].Slots[11-8]
	if len(elevenAM.Appointments) != 1 {
		t.Fatalf("expected 1 appointment in the 11:00 cell, got %d", len(elevenAM.Appointments))
	}

	// each appointment lands in exactly one cell
	total := 0
	for _, col := range grid.Days {
		for _, cell := range col.Slots {
			total += len(cell.Appointments)
		}
	}
	if total != len(appts) {
		t.Fatalf("expected %d placed appointments, got %d", len(appts), total)
	}
}

func TestIsBlocked_InclusiveBoundaries(t *testing.T) {
	end := day(2025, time.January, 10)
	ranges := []BlockedRange{
		{StartDate: day(2025, time.January, 5), EndDate: &end},
	}

	cases := []struct {
		d    time.Time
		want bool
	}{
		{day(2025, time.January, 4), false},
		{day(2025, time.January, 5), true},
		{day(2025, time.January, 7), true},
		{day(2025, time.January, 10), true},
		{day(2025, time.January, 11), false},
	}

	for _, tc := range cases {
		if got := IsBlocked(tc.d, ranges); got != tc.want {
			t.Fatalf("IsBlocked(%s) = %v, want %v", tc.d.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestIsBlocked_RangeDatesFromAnotherZone(t *testing.T) {
	// Range dates scan out of date columns as UTC midnights; the day under
	// test lives in the server's zone. Membership is by calendar date, so a
	// zone offset must never shift the boundaries.
	end := day(2025, time.January, 10)
	ranges := []BlockedRange{
		{StartDate: day(2025, time.January, 5), EndDate: &end},
	}

	zones := []*time.Location{
		time.FixedZone("UTC-5", -5*60*60),
		time.FixedZone("UTC+13", 13*60*60),
	}

	for _, loc := range zones {
		localDay := func(d int) time.Time {
			return time.Date(2025, time.January, d, 0, 0, 0, 0, loc)
		}

		if IsBlocked(localDay(4), ranges) {
			t.Fatalf("%s: day before the range reported blocked", loc)
		}
		if !IsBlocked(localDay(5), ranges) {
			t.Fatalf("%s: inclusive start not blocked", loc)
		}
		if !IsBlocked(localDay(10), ranges) {
			t.Fatalf("%s: inclusive end not blocked", loc)
		}
		if IsBlocked(localDay(11), ranges) {
			t.Fatalf("%s: day after the range reported blocked", loc)
		}
	}
}

func TestIsBlocked_OpenEndedRange(t *testing.T) {
	ranges := []BlockedRange{
		{StartDate: day(2025, time.June, 1)},
	}

	if IsBlocked(day(2025, time.May, 31), ranges) {
		t.Fatal("day before an open-ended block should not be blocked")
	}
	if !IsBlocked(day(2025, time.June, 1), ranges) {
		t.Fatal("start of an open-ended block should be blocked")
	}
	if !IsBlocked(day(2030, time.December, 25), ranges) {
		t.Fatal("any later day of an open-ended block should be blocked")
	}
}

func TestDaySelection_BlockedDayIsNoOp(t *testing.T) {
	end := day(2025, time.January, 10)
	ranges := []BlockedRange{
		{StartDate: day(2025, time.January, 1), EndDate: &end},
	}

	sel := NewDaySelection(day(2025, time.January, 15))

	if sel.Select(day(2025, time.January, 6), ranges) {
		t.Fatal("selecting a blocked day must report false")
	}
	if !sel.Date().Equal(day(2025, time.January, 15)) {
		t.Fatalf("selected date changed to %s after a blocked selection", sel.Date().Format("2006-01-02"))
	}

	if !sel.Select(day(2025, time.January, 20), ranges) {
		t.Fatal("selecting an unblocked day must report true")
	}
	if !sel.Date().Equal(day(2025, time.January, 20)) {
		t.Fatalf("selected date = %s, want 2025-01-20", sel.Date().Format("2006-01-02"))
	}
	if sel.Param() != "2025-01-20" {
		t.Fatalf("query parameter = %q, want 2025-01-20", sel.Param())
	}
}

func TestParseDateParam_FallsBackToToday(t *testing.T) {
	now := time.Date(2025, time.April, 3, 14, 30, 0, 0, time.UTC)

	if got := ParseDateParam("2025-01-06", now); !got.Equal(day(2025, time.January, 6)) {
		t.Fatalf("parsed %s, want 2025-01-06", got.Format("2006-01-02"))
	}
	if got := ParseDateParam("not-a-date", now); !got.Equal(day(2025, time.April, 3)) {
		t.Fatalf("fallback %s, want 2025-04-03", got.Format("2006-01-02"))
	}
	if got := ParseDateParam("", now); !got.Equal(day(2025, time.April, 3)) {
		t.Fatalf("empty fallback %s, want 2025-04-03", got.Format("2006-01-02"))
	}
}

// Full scenario: two candidates share the 10:00 cell, then a blocked range
// covers the week and the day becomes non-selectable.
func TestBuildWeek_SharedCellAndBlockedSpan(t *testing.T) {
	monday := day(2025, time.January, 6)

	a := appt(0xA, monday.Add(10*time.Hour+15*time.Minute))
	b := appt(0xB, monday.Add(10*time.Hour+45*time.Minute))

	grid := BuildWeek(monday, []Appointment{a, b}, nil, time.Monday, 8, 22)

	cell := grid.Days[0].Slots[10-8]
	if len(cell.Appointments) != 2 {
		t.Fatalf("expected both appointments in the 10:00 cell, got %d", len(cell.Appointments))
	}

	end := day(2025, time.January, 10)
	blocked := []BlockedRange{{StartDate: day(2025, time.January, 1), EndDate: &end}}

	grid = BuildWeek(monday, []Appointment{a, b}, blocked, time.Monday, 8, 22)

	for i, col := range grid.Days {
		wantBlocked := !col.Date.After(end)
		if col.Blocked != wantBlocked {
			t.Fatalf("day %d (%s) blocked = %v, want %v", i, col.Date.Format("2006-01-02"), col.Blocked, wantBlocked)
		}
	}

	sel := NewDaySelection(monday)
	if sel.Select(monday, blocked) {
		t.Fatal("2025-01-06 must not be selectable while blocked")
	}
}
