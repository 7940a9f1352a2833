// internal/app/punch_scheduler.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"punchclock/internal/domain/notify"
	"punchclock/internal/domain/portal"
	"punchclock/internal/domain/punch"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ActionExecutor performs a punch on the timekeeping portal.
type ActionExecutor interface {
	Perform(ctx context.Context, action punch.Action) error
}

type SchedulerConfig struct {
	TickInterval time.Duration // Sleep between ticks on a work day
	IdleInterval time.Duration // Sleep between ticks on a day off
	StoreTimeout time.Duration // Bound on each punch store call
}

// PunchScheduler is the control loop. It keeps no authoritative state of its
// own: every tick reloads today's record from the store.
type PunchScheduler struct {
	punches   punch.Repository
	qualifier *DayQualifier
	gate      *ActionGate
	executor  ActionExecutor
	notifier  notify.Notifier
	cfg       SchedulerConfig
	logger    *logrus.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPunchScheduler(
	punches punch.Repository,
	qualifier *DayQualifier,
	gate *ActionGate,
	executor ActionExecutor,
	notifier notify.Notifier,
	cfg SchedulerConfig,
	logger *logrus.Logger,
) *PunchScheduler {
	return &PunchScheduler{
		punches:   punches,
		qualifier: qualifier,
		gate:      gate,
		executor:  executor,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Run ticks until ctx is cancelled or a tick fails in a way the loop cannot
// recover from. It never returns nil.
func (s *PunchScheduler) Run(ctx context.Context) error {
	s.logger.Info("Starting punch scheduler...")
	for {
		wait, err := s.Tick(ctx)
		if err != nil {
			return err
		}
		if err := s.sleep(ctx, wait); err != nil {
			s.logger.Info("Punch scheduler stopped.")
			return err
		}
	}
}

// Tick runs one pass of the loop and returns how long to sleep before the
// next one. A non-nil error is fatal to the process.
func (s *PunchScheduler) Tick(ctx context.Context) (time.Duration, error) {
	now := s.now()
	today := civil.DateOf(now)
	log := s.logger.WithFields(logrus.Fields{"tick": uuid.NewString(), "day": today.String()})

	rec, ok := s.today(ctx, today, log)
	if !ok {
		return s.cfg.TickInterval, nil
	}

	isWorkDay, err := s.qualifier.IsWorkDay(ctx, rec)
	if err != nil {
		log.Errorf("Could not qualify day: %v", err)
		s.notifier.Warning(ctx, fmt.Sprintf("Could not determine whether %s is a work day: %v", today, err))
		return s.cfg.IdleInterval, nil
	}
	if !isWorkDay {
		// Sleep for greater intervals on days off.
		return s.cfg.IdleInterval, nil
	}

	action, due := s.gate.NextDueAction(rec, now)
	if !due {
		log.Debug("No punch due.")
		return s.cfg.TickInterval, nil
	}

	if err := s.perform(ctx, rec, action, now, log); err != nil {
		return 0, err
	}
	return s.cfg.TickInterval, nil
}

// today loads the record for day, creating it when the store is empty or the
// latest record is from an earlier day.
func (s *PunchScheduler) today(ctx context.Context, day civil.Date, log *logrus.Entry) (*punch.Record, bool) {
	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	rec, err := s.punches.MostRecent(storeCtx)
	switch {
	case errors.Is(err, punch.ErrRecordNotFound):
		log.Info("Punch store is empty, creating the first record.")
	case err != nil:
		log.Errorf("Failed to load most recent punch record: %v", err)
		s.notifier.Warning(ctx, fmt.Sprintf("Could not read punch records: %v", err))
		return nil, false
	case rec.Day == day:
		return rec, true
	case rec.Day.After(day):
		log.Errorf("Most recent punch record is for %s, which is after today. Is the clock wrong?", rec.Day)
		return nil, false
	default:
		log.Infof("Most recent punch record is for %s, creating today's record.", rec.Day)
	}

	id, err := s.punches.InsertDay(storeCtx, day)
	if err != nil {
		log.Errorf("Failed to create punch record: %v", err)
		s.notifier.Alert(ctx, fmt.Sprintf("Did not create punch record for %s: %v", day, err))
		return nil, false
	}
	log.WithField("record_id", id).Info("Created punch record.")
	return &punch.Record{ID: id, Day: day}, true
}

// perform punches on the portal and records the result. Only an unexpected
// portal failure is returned.
func (s *PunchScheduler) perform(ctx context.Context, rec *punch.Record, action punch.Action, at time.Time, log *logrus.Entry) error {
	log = log.WithField("action", action.String())
	log.Info("Punch due, performing.")

	if err := s.executor.Perform(ctx, action); err != nil {
		if errors.Is(err, portal.ErrElementNotFound) {
			log.Errorf("Punch failed: %v", err)
			s.notifier.Alert(ctx, fmt.Sprintf("Did not %s successfully.", action))
			return nil
		}
		return fmt.Errorf("%s failed: %w", action, err)
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	recordErr := s.punches.RecordPunch(storeCtx, rec.ID, action, at)
	cancel()

	s.notifier.Info(ctx, fmt.Sprintf("%s at %s", action, at.Format(time.ANSIC)))
	if recordErr != nil {
		log.Errorf("Failed to record punch: %v", recordErr)
		s.notifier.Warning(ctx, fmt.Sprintf("Did not log %s to database", action))
		return nil
	}
	rec.Set(action, at)
	log.Info("Punch recorded.")
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
