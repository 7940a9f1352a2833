// internal/infra/portal/dryrun.go
package portal

import (
	"context"
	"fmt"

	"punchclock/internal/domain/portal"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
)

// DryRunSession stands in for the real portal. It logs every action instead of
// clicking anything, which is enough to exercise the scheduler end to end.
type DryRunSession struct {
	username  string
	loginURL  string
	leaveDays map[civil.Date]bool
	logger    *logrus.Logger
}

func NewDryRunSession(username, loginURL string, leaveDays []string, logger *logrus.Logger) (*DryRunSession, error) {
	days := make(map[civil.Date]bool, len(leaveDays))
	for _, s := range leaveDays {
		d, err := civil.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid leave day %q: %w", s, err)
		}
		days[d] = true
	}
	return &DryRunSession{username: username, loginURL: loginURL, leaveDays: days, logger: logger}, nil
}

func (s *DryRunSession) Login(ctx context.Context) (*portal.Landing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"user": s.username, "url": s.loginURL}).Info("Dry run: logging into portal")
	return &portal.Landing{Dashboard: &dryRunDashboard{session: s}}, nil
}

type dryRunDashboard struct {
	session *DryRunSession
}

func (d *dryRunDashboard) ClockIn(ctx context.Context) error    { return d.click(ctx, "ClockIn") }
func (d *dryRunDashboard) StartLunch(ctx context.Context) error { return d.click(ctx, "StartLunch") }
func (d *dryRunDashboard) EndLunch(ctx context.Context) error   { return d.click(ctx, "EndLunch") }
func (d *dryRunDashboard) ClockOut(ctx context.Context) error   { return d.click(ctx, "ClockOut") }

func (d *dryRunDashboard) IsLeaveApproved(ctx context.Context, day civil.Date) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	approved := d.session.leaveDays[day]
	d.session.logger.WithField("day", day.String()).Infof("Dry run: leave approved = %t", approved)
	return approved, nil
}

func (d *dryRunDashboard) click(ctx context.Context, element string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.session.logger.WithField("element", element).Info("Dry run: clicking portal button")
	return nil
}
