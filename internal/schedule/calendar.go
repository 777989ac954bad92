package schedule

import "time"

// The booking calendar is a 7-day week of hourly slots. Appointments are
// bucketed by local calendar date and hour of day; minutes are ignored, so a
// 10:17 appointment lands in the 10:00 cell. Multiple appointments may share
// a cell: the grid holds all of them and does no conflict detection.

const dateParamLayout = "2006-01-02"

type SlotCell struct {
	Hour         int
	Appointments []Appointment
}

type DayColumn struct {
	Date    time.Time // midnight, grid location
	Blocked bool
	Slots   []SlotCell
}

type WeekGrid struct {
	Start time.Time // first day of the week containing the reference date
	Days  [7]DayColumn
}

// WeekStart truncates d to the configured first day of its week.
func WeekStart(d time.Time, firstDay time.Weekday) time.Time {
	day := truncateToDay(d)
	offset := (int(day.Weekday()) - int(firstDay) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// SlotHours returns the ordered hourly ticks of a booking day, inclusive on
// both ends.
func SlotHours(startHour, endHour int) []int {
	var hours []int
	for h := startHour; h <= endHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// IsBlocked reports whether day falls inside any blocked range, inclusive on
// both ends by calendar date. A range without an end date blocks every day
// from its start onward. Each value's date is read in its own location: range
// dates come back from date columns as UTC midnights while the day under test
// is usually local, so converting instants across zones would shift the range
// by a day near midnight.
func IsBlocked(day time.Time, ranges []BlockedRange) bool {
	d := day.Format(dateParamLayout)
	for _, r := range ranges {
		if d < r.StartDate.Format(dateParamLayout) {
			continue
		}
		if r.EndDate == nil || d <= r.EndDate.Format(dateParamLayout) {
			return true
		}
	}
	return false
}

// BuildWeek assembles the grid for the week containing ref. Every
// appointment whose local date falls inside the week and whose hour matches
// a slot tick lands in exactly one cell; appointments outside the slot hours
// are dropped from the grid (the source view simply had no row for them).
func BuildWeek(ref time.Time, appts []Appointment, blocked []BlockedRange, firstDay time.Weekday, startHour, endHour int) WeekGrid {
	start := WeekStart(ref, firstDay)
	hours := SlotHours(startHour, endHour)

	grid := WeekGrid{Start: start}

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		col := DayColumn{
			Date:    day,
			Blocked: IsBlocked(day, blocked),
			Slots:   make([]SlotCell, len(hours)),
		}
		for j, h := range hours {
			col.Slots[j] = SlotCell{Hour: h}
		}
		grid.Days[i] = col
	}

	loc := ref.Location()
	for _, a := range appts {
		at := a.AppointmentTime.In(loc)
		day := truncateToDay(at)

		// date equality, not instant arithmetic: DST weeks are not 168h
		idx := -1
		for i := range grid.Days {
			if grid.Days[i].Date.Equal(day) {
				idx = i
				break
			}
		}
		if idx == -1 {
			continue
		}

		hour := at.Hour()
		if hour < startHour || hour > endHour {
			continue
		}

		cell := &grid.Days[idx].Slots[hour-startHour]
		cell.Appointments = append(cell.Appointments, a)
	}

	return grid
}

// DaySelection is the linkable "selected date" of the booking view. It backs
// the date=yyyy-MM-dd query parameter, so a selection is shareable as a URL.
type DaySelection struct {
	date time.Time
}

func NewDaySelection(d time.Time) DaySelection {
	return DaySelection{date: truncateToDay(d)}
}

// Select moves the selection to day unless the day is blocked. Selecting a
// blocked day is a no-op and reports false, so callers skip navigation.
func (s *DaySelection) Select(day time.Time, blocked []BlockedRange) bool {
	if IsBlocked(day, blocked) {
		return false
	}
	s.date = truncateToDay(day)
	return true
}

func (s *DaySelection) Date() time.Time {
	return s.date
}

// Param renders the selection as the shareable query-parameter value.
func (s *DaySelection) Param() string {
	return s.date.Format(dateParamLayout)
}

// ParseDateParam reads a yyyy-MM-dd query parameter. Anything unparseable
// falls back to the current date rather than failing the view.
func ParseDateParam(raw string, now time.Time) time.Time {
	if raw == "" {
		return truncateToDay(now)
	}
	d, err := time.ParseInLocation(dateParamLayout, raw, now.Location())
	if err != nil {
		return truncateToDay(now)
	}
	return d
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
