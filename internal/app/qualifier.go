// internal/app/qualifier.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"punchclock/internal/domain/holiday"
	"punchclock/internal/domain/punch"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
)

// LeaveOracle answers whether a day is covered by approved leave.
type LeaveOracle interface {
	IsLeaveApproved(ctx context.Context, day civil.Date) (bool, error)
}

// DayQualifier decides once per day whether punching should happen at all.
// The verdict is cached on the punch record so external systems are queried
// at most once per calendar day.
type DayQualifier struct {
	punches      punch.Repository
	holidays     holiday.Repository
	oracle       LeaveOracle
	weekend      map[time.Weekday]bool
	storeTimeout time.Duration
	logger       *logrus.Logger
}

func NewDayQualifier(
	punches punch.Repository,
	holidays holiday.Repository,
	oracle LeaveOracle,
	weekend []time.Weekday,
	storeTimeout time.Duration,
	logger *logrus.Logger,
) *DayQualifier {
	days := make(map[time.Weekday]bool, len(weekend))
	for _, d := range weekend {
		days[d] = true
	}
	return &DayQualifier{
		punches:      punches,
		holidays:     holidays,
		oracle:       oracle,
		weekend:      days,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// IsWorkDay returns the verdict for rec, computing and persisting it on first
// use. An error means the leave oracle could not answer; nothing is cached
// in that case so the next call asks again.
func (q *DayQualifier) IsWorkDay(ctx context.Context, rec *punch.Record) (bool, error) {
	if rec.IsWorkDay.Valid {
		return rec.IsWorkDay.Bool, nil
	}

	isWorkDay, err := q.qualify(ctx, rec.Day)
	if err != nil {
		return false, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, q.storeTimeout)
	defer cancel()
	err = q.punches.SetWorkDay(storeCtx, rec.ID, isWorkDay)
	switch {
	case errors.Is(err, punch.ErrWorkDayAlreadySet):
		// Someone qualified the day first; the stored verdict wins.
		stored, ok := q.storedVerdict(storeCtx, rec.ID)
		if !ok {
			return isWorkDay, nil
		}
		isWorkDay = stored
	case err != nil:
		// The verdict still stands for this tick; it is recomputed next tick.
		q.logger.WithField("day", rec.Day.String()).Errorf("Failed to persist work day flag: %v", err)
		return isWorkDay, nil
	}
	rec.IsWorkDay.Bool, rec.IsWorkDay.Valid = isWorkDay, true
	return isWorkDay, nil
}

// storedVerdict rereads the work day flag of record id from the store.
func (q *DayQualifier) storedVerdict(ctx context.Context, id int64) (bool, bool) {
	latest, err := q.punches.MostRecent(ctx)
	if err != nil {
		q.logger.Errorf("Failed to reload work day flag: %v", err)
		return false, false
	}
	if latest.ID != id || !latest.IsWorkDay.Valid {
		return false, false
	}
	return latest.IsWorkDay.Bool, true
}

// qualify runs the checks cheapest first and stops at the first that rules
// the day out. The leave oracle requires a full portal login, so it is last.
func (q *DayQualifier) qualify(ctx context.Context, day civil.Date) (bool, error) {
	log := q.logger.WithField("day", day.String())

	if q.weekend[day.Weekday()] {
		log.Infof("It is a weekend (%s), skipping!", day.Weekday())
		return false, nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, q.storeTimeout)
	isHoliday, err := q.holidays.IsHoliday(storeCtx, day)
	cancel()
	if err != nil {
		// Fail toward not punching.
		log.Warnf("Holiday lookup failed, assuming a holiday: %v", err)
		return false, nil
	}
	if isHoliday {
		log.Info("It is a holiday, skipping!")
		return false, nil
	}

	onLeave, err := q.oracle.IsLeaveApproved(ctx, day)
	if err != nil {
		return false, fmt.Errorf("leave lookup for %s: %w", day, err)
	}
	if onLeave {
		log.Info("It is an approved leave day, skipping!")
		return false, nil
	}

	log.Info("It is not a weekend, holiday, or leave day.")
	return true, nil
}
