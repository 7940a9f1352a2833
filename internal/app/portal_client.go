// internal/app/portal_client.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"punchclock/internal/domain/portal"
	"punchclock/internal/domain/punch"

	"cloud.google.com/go/civil"
)

var ErrUnknownSecretQuestion = errors.New("no answer configured for secret question")

// PortalClient logs into the portal for every operation and performs one
// action on the dashboard. Each operation is bounded by timeout.
type PortalClient struct {
	session portal.Session
	answers map[string]string
	timeout time.Duration
}

func NewPortalClient(session portal.Session, answers map[string]string, timeout time.Duration) *PortalClient {
	return &PortalClient{session: session, answers: answers, timeout: timeout}
}

// Perform logs in and clicks the control for action.
func (c *PortalClient) Perform(ctx context.Context, action punch.Action) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dashboard, err := c.open(ctx)
	if err != nil {
		return err
	}
	return dispatch(ctx, dashboard, action)
}

// IsLeaveApproved logs in and checks the leave calendar for day.
func (c *PortalClient) IsLeaveApproved(ctx context.Context, day civil.Date) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dashboard, err := c.open(ctx)
	if err != nil {
		return false, err
	}
	return dashboard.IsLeaveApproved(ctx, day)
}

// open logs in, answering the secret question when the portal asks one.
func (c *PortalClient) open(ctx context.Context) (portal.Dashboard, error) {
	landing, err := c.session.Login(ctx)
	if err != nil {
		return nil, fmt.Errorf("portal login: %w", err)
	}
	// The login might've gone straight to the dashboard.
	if landing.Dashboard != nil {
		return landing.Dashboard, nil
	}
	if landing.Question == nil {
		return nil, errors.New("portal login landed on neither dashboard nor question page")
	}

	question, err := landing.Question.Question(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading secret question: %w", err)
	}
	answer, ok := c.answers[question]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSecretQuestion, question)
	}
	dashboard, err := landing.Question.Answer(ctx, answer)
	if err != nil {
		return nil, fmt.Errorf("answering secret question: %w", err)
	}
	return dashboard, nil
}

func dispatch(ctx context.Context, d portal.Dashboard, action punch.Action) error {
	switch action {
	case punch.ActionClockIn:
		return d.ClockIn(ctx)
	case punch.ActionStartLunch:
		return d.StartLunch(ctx)
	case punch.ActionEndLunch:
		return d.EndLunch(ctx)
	case punch.ActionClockOut:
		return d.ClockOut(ctx)
	}
	return fmt.Errorf("unknown punch action %d", int(action))
}
