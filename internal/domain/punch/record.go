// internal/domain/punch/record.go
package punch

import (
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
)

// Record is the timekeeping card for a single calendar day.
// Corresponds to the 'punches' table.
type Record struct {
	ID         int64
	Day        civil.Date // Unique per record
	ClockIn    sql.NullTime
	LunchStart sql.NullTime
	LunchEnd   sql.NullTime
	ClockOut   sql.NullTime
	IsWorkDay  sql.NullBool // Unset until the day has been qualified
}

// Punched returns the timestamp recorded for the given action, if any.
func (r *Record) Punched(action Action) (time.Time, bool) {
	var slot sql.NullTime
	switch action {
	case ActionClockIn:
		slot = r.ClockIn
	case ActionStartLunch:
		slot = r.LunchStart
	case ActionEndLunch:
		slot = r.LunchEnd
	case ActionClockOut:
		slot = r.ClockOut
	}
	return slot.Time, slot.Valid
}

// Set stores the timestamp in memory. It mirrors the write-once rule of the
// store: an already populated slot is left untouched and false is returned.
func (r *Record) Set(action Action, at time.Time) bool {
	var slot *sql.NullTime
	switch action {
	case ActionClockIn:
		slot = &r.ClockIn
	case ActionStartLunch:
		slot = &r.LunchStart
	case ActionEndLunch:
		slot = &r.LunchEnd
	case ActionClockOut:
		slot = &r.ClockOut
	default:
		return false
	}
	if slot.Valid {
		return false
	}
	*slot = sql.NullTime{Time: at, Valid: true}
	return true
}

// Worked is the time spent on the clock so far, lunch excluded.
// Only complete intervals are counted.
func (r *Record) Worked() time.Duration {
	var total time.Duration
	if r.ClockIn.Valid && r.LunchStart.Valid {
		total += r.LunchStart.Time.Sub(r.ClockIn.Time)
	}
	if r.LunchEnd.Valid && r.ClockOut.Valid {
		total += r.ClockOut.Time.Sub(r.LunchEnd.Time)
	}
	return total
}
