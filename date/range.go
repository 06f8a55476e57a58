package date

import "time"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// YearRange returns the range covering the whole calendar year.
func YearRange(year int) Range {
	return Range{
		From: New(year, time.January, 1),
		To:   New(year, time.December, 31),
	}
}

// Contains returns true if date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }
