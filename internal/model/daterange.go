package model

import "time"

// DateRange is an inclusive day-granularity window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// PreviousMonth returns the full calendar month preceding now's month,
// in now's location. Handles year boundaries and short months: the end is
// always the last day of the preceding month, whatever its length.
func PreviousMonth(now time.Time) DateRange {
	year, month, _ := now.Date()
	start := time.Date(year, month-1, 1, 0, 0, 0, 0, now.Location())
	// Day zero of the current month is the last day of the previous one.
	end := time.Date(year, month, 0, 0, 0, 0, 0, now.Location())
	return DateRange{Start: start, End: end}
}

// Month returns the window covering the given calendar month.
func Month(year int, month time.Month, loc *time.Location) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return DateRange{Start: start, End: end}
}

// QueryAfter formats the start bound for a Gmail after: operator.
func (r DateRange) QueryAfter() string {
	return r.Start.Format("2006/01/02")
}

// QueryBefore formats the exclusive end bound for a Gmail before:
// operator. Gmail treats before: as exclusive, so the inclusive window end
// is pushed forward by one day.
func (r DateRange) QueryBefore() string {
	return r.End.AddDate(0, 0, 1).Format("2006/01/02")
}

// Display renders the window for logs and notification text.
func (r DateRange) Display() string {
	return r.Start.Format("2006/01/02") + " 〜 " + r.End.Format("2006/01/02")
}

// Contains reports whether t's calendar day falls within the window.
func (r DateRange) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.Start.Location())
	return !day.Before(r.Start) && !day.After(r.End)
}
