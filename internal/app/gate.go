// internal/app/gate.go
package app

import (
	"database/sql"
	"math/rand/v2"
	"time"

	"punchclock/internal/domain/punch"
)

// Window is how long to wait after the previous punch: Base plus a whole
// number of minutes drawn uniformly from [JitterMin, JitterMax].
type Window struct {
	Base      time.Duration
	JitterMin time.Duration
	JitterMax time.Duration
}

// Windows holds the wait for each punch that follows another.
type Windows struct {
	LunchStart Window // After clock in
	LunchEnd   Window // After lunch start
	ClockOut   Window // After lunch end
}

// DefaultWindows is the standard day: lunch roughly four hours in, half an
// hour for lunch, then the afternoon.
var DefaultWindows = Windows{
	LunchStart: Window{Base: 4 * time.Hour, JitterMin: 1 * time.Minute, JitterMax: 30 * time.Minute},
	LunchEnd:   Window{Base: 0, JitterMin: 31 * time.Minute, JitterMax: 35 * time.Minute},
	ClockOut:   Window{Base: 8 * time.Hour, JitterMin: 40 * time.Minute, JitterMax: 45 * time.Minute},
}

// JitterFunc returns a uniformly distributed integer in [lo, hi].
type JitterFunc func(lo, hi int) int

func uniformJitter(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.IntN(hi-lo+1)
}

// ActionGate decides which punch, if any, is due. It holds no state about
// the day; everything comes from the record passed in.
type ActionGate struct {
	startHour int
	windows   Windows
	jitter    JitterFunc
}

// NewActionGate builds a gate. A nil jitter draws from math/rand/v2.
func NewActionGate(startHour int, windows Windows, jitter JitterFunc) *ActionGate {
	if jitter == nil {
		jitter = uniformJitter
	}
	return &ActionGate{startHour: startHour, windows: windows, jitter: jitter}
}

// NextDueAction evaluates the punches in order and returns the first one that
// is due at now. Jitter is drawn fresh on every call.
func (g *ActionGate) NextDueAction(rec *punch.Record, now time.Time) (punch.Action, bool) {
	if !rec.ClockIn.Valid && now.Hour() == g.startHour {
		return punch.ActionClockIn, true
	}
	if g.elapsed(rec.ClockIn, rec.LunchStart, now, g.windows.LunchStart) {
		return punch.ActionStartLunch, true
	}
	if g.elapsed(rec.LunchStart, rec.LunchEnd, now, g.windows.LunchEnd) {
		return punch.ActionEndLunch, true
	}
	if g.elapsed(rec.LunchEnd, rec.ClockOut, now, g.windows.ClockOut) {
		return punch.ActionClockOut, true
	}
	return 0, false
}

// elapsed reports whether the window after previous has passed while current
// is still unset.
func (g *ActionGate) elapsed(previous, current sql.NullTime, now time.Time, w Window) bool {
	if current.Valid || !previous.Valid {
		return false
	}
	return now.Sub(previous.Time) > g.draw(w)
}

func (g *ActionGate) draw(w Window) time.Duration {
	lo := int(w.JitterMin / time.Minute)
	hi := int(w.JitterMax / time.Minute)
	return w.Base + time.Duration(g.jitter(lo, hi))*time.Minute
}
