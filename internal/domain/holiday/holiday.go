// internal/domain/holiday/holiday.go
package holiday

import (
	"time"

	"cloud.google.com/go/civil"
)

// Holiday is a single non-work calendar date.
// Corresponds to the 'holidays' table, keyed by (month name, day, year).
type Holiday struct {
	ID    int64
	Month time.Month
	Day   int
	Year  int
}

func FromDate(d civil.Date) *Holiday {
	return &Holiday{Month: d.Month, Day: d.Day, Year: d.Year}
}

func (h *Holiday) Date() civil.Date {
	return civil.Date{Year: h.Year, Month: h.Month, Day: h.Day}
}
