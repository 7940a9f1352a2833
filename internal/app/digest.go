// internal/app/digest.go
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"punchclock/internal/domain/notify"
	"punchclock/internal/domain/punch"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
)

// DigestService summarises a day's punches. It only reads the store.
type DigestService struct {
	punches  punch.Repository
	notifier notify.Notifier
	logger   *logrus.Logger
	now      func() time.Time
}

func NewDigestService(punches punch.Repository, notifier notify.Notifier, logger *logrus.Logger) *DigestService {
	return &DigestService{punches: punches, notifier: notifier, logger: logger, now: time.Now}
}

// SendDailyDigest sends an info page summarising today's record. Nothing is
// sent when today has no record or has not been qualified as a work day.
func (s *DigestService) SendDailyDigest(ctx context.Context) error {
	today := civil.DateOf(s.now())
	log := s.logger.WithField("day", today.String())

	rec, err := s.punches.MostRecent(ctx)
	if errors.Is(err, punch.ErrRecordNotFound) {
		log.Info("No punch records yet, skipping digest.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load punch record for digest: %w", err)
	}
	if rec.Day != today {
		log.Infof("No punch record for today (latest is %s), skipping digest.", rec.Day)
		return nil
	}
	if !rec.IsWorkDay.Valid || !rec.IsWorkDay.Bool {
		log.Info("Not a work day, skipping digest.")
		return nil
	}

	s.notifier.Info(ctx, Summarize(rec))
	return nil
}

// Summarize renders a record as one line per punch plus the time worked.
func Summarize(rec *punch.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Punches for %s\n", rec.Day)
	for _, action := range punch.Actions {
		if t, ok := rec.Punched(action); ok {
			fmt.Fprintf(&b, "%s: %s\n", action, t.Format("15:04"))
		} else {
			fmt.Fprintf(&b, "%s: missing\n", action)
		}
	}
	worked := rec.Worked().Round(time.Minute)
	fmt.Fprintf(&b, "Worked %dh%02dm", int(worked.Hours()), int(worked.Minutes())%60)
	return b.String()
}
