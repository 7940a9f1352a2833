// internal/domain/holiday/repository.go
package holiday

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"
)

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("holiday already exists")
)

type Repository interface {
	IsHoliday(ctx context.Context, day civil.Date) (bool, error)
	Add(ctx context.Context, h *Holiday) error
	Remove(ctx context.Context, day civil.Date) error
	// List returns holidays ordered by date. A zero year lists every year.
	List(ctx context.Context, year int) ([]*Holiday, error)
}
