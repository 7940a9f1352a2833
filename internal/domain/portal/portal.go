// internal/domain/portal/portal.go
package portal

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"
)

// ErrElementNotFound is returned when a control on the timekeeping portal
// could not be located or clicked.
var ErrElementNotFound = errors.New("portal element not found")

// Session logs into the timekeeping portal.
type Session interface {
	Login(ctx context.Context) (*Landing, error)
}

// Landing is where a login ends up. Exactly one of the fields is set.
type Landing struct {
	Dashboard Dashboard
	Question  QuestionPrompt
}

// QuestionPrompt is the secret question page the portal sometimes shows after login.
type QuestionPrompt interface {
	Question(ctx context.Context) (string, error)
	Answer(ctx context.Context, answer string) (Dashboard, error)
}

// Dashboard is the logged-in landing page.
type Dashboard interface {
	ClockIn(ctx context.Context) error
	StartLunch(ctx context.Context) error
	EndLunch(ctx context.Context) error
	ClockOut(ctx context.Context) error
	// IsLeaveApproved reports whether day falls inside an approved leave request.
	IsLeaveApproved(ctx context.Context, day civil.Date) (bool, error)
}
