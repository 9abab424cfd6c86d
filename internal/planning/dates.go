package planning

import "time"

// DayLayout is the wire format for calendar dates. Dates are naive local
// dates; no timezone is attached anywhere in the planning views.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string. Unparseable input yields ok=false;
// callers must treat that as the Invalid-Date equivalent, not an error.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Midnight strips the time-of-day component, keeping the location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
}

// MonthGrid produces a flattened week-aligned grid for the given month, with
// weeks starting on Monday. Leading cells before day 1 are nil placeholders;
// the grid is not padded to a multiple of 7 at the end, so its length is
// always leading offset + days in month.
func MonthGrid(year int, month time.Month) []*time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	offset := (int(first.Weekday()) + 6) % 7 // Monday-aligned
	days := DaysInMonth(year, month)

	grid := make([]*time.Time, 0, offset+days)
	for i := 0; i < offset; i++ {
		grid = append(grid, nil)
	}
	for d := 1; d <= days; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		grid = append(grid, &day)
	}
	return grid
}

// IsWithinRange reports whether day falls inside [startDate, endDate], both
// bounds inclusive, after normalizing everything to midnight. An invalid
// bound makes the check false rather than panicking; a start after its end
// simply contains no day at all.
func IsWithinRange(day time.Time, startDate, endDate string) bool {
	start, ok := ParseDay(startDate)
	if !ok {
		return false
	}
	end, ok := ParseDay(endDate)
	if !ok {
		return false
	}
	d := Midnight(day)
	return !d.Before(start) && !d.After(end)
}
