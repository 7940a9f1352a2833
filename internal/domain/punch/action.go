// internal/domain/punch/action.go
package punch

// Action identifies one of the four daily punches.
type Action int

const (
	ActionClockIn Action = iota + 1
	ActionStartLunch
	ActionEndLunch
	ActionClockOut
)

// Actions lists every punch in the order it happens during a day.
var Actions = []Action{ActionClockIn, ActionStartLunch, ActionEndLunch, ActionClockOut}

func (a Action) String() string {
	switch a {
	case ActionClockIn:
		return "Clock In"
	case ActionStartLunch:
		return "Start Lunch"
	case ActionEndLunch:
		return "End Lunch"
	case ActionClockOut:
		return "Clock Out"
	default:
		return "Unknown"
	}
}

// Previous returns the punch that must already be recorded before a can be.
// The second value is false for ActionClockIn, which has no predecessor.
func (a Action) Previous() (Action, bool) {
	switch a {
	case ActionStartLunch:
		return ActionClockIn, true
	case ActionEndLunch:
		return ActionStartLunch, true
	case ActionClockOut:
		return ActionEndLunch, true
	default:
		return 0, false
	}
}
