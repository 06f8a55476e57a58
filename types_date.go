package taxfolio

import "github.com/taxfolio/taxfolio/date"

// Date is the calendar date type used on every trade record.
type Date = date.Date

// Today returns the current date.
func Today() Date { return date.Today() }

// ParseDate parses a Date in ISO-8601 form.
func ParseDate(s string) (Date, error) { return date.Parse(s) }
