package app

import (
	"context"
	"fmt"

	"punchclock/internal/domain/holiday"

	"cloud.google.com/go/civil"
)

// HolidayService is the administrative side of the holiday calendar. The
// scheduler only ever reads holidays; this is how they get there.
type HolidayService struct {
	holidays holiday.Repository
}

func NewHolidayService(hr holiday.Repository) *HolidayService {
	return &HolidayService{holidays: hr}
}

// AddHoliday marks day as a non-work day.
func (s *HolidayService) AddHoliday(ctx context.Context, day civil.Date) (*holiday.Holiday, error) {
	if !day.IsValid() {
		return nil, fmt.Errorf("invalid date %s", day)
	}
	h := holiday.FromDate(day)
	if err := s.holidays.Add(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to add holiday %s: %w", day, err)
	}
	return h, nil
}

// RemoveHoliday makes day an ordinary day again.
func (s *HolidayService) RemoveHoliday(ctx context.Context, day civil.Date) error {
	if err := s.holidays.Remove(ctx, day); err != nil {
		return fmt.Errorf("failed to remove holiday %s: %w", day, err)
	}
	return nil
}

func (s *HolidayService) ListHolidays(ctx context.Context, year int) ([]*holiday.Holiday, error) {
	holidays, err := s.holidays.List(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidays, nil
}
