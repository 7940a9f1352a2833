// internal/domain/notify/notifier.go
package notify

import (
	"context"
	"fmt"
	"strings"
)

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelAlert
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelAlert:
		return "ALERT"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "alert":
		return LevelAlert, nil
	}
	return LevelInfo, fmt.Errorf("unknown notification level %q", s)
}

// Notifier delivers messages to the person whose time is being kept.
// Delivery is fire-and-forget: a failed send never aborts the caller.
type Notifier interface {
	Alert(ctx context.Context, message string)
	Warning(ctx context.Context, message string)
	Info(ctx context.Context, message string)
}
