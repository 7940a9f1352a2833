// internal/domain/punch/repository.go
package punch

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
)

var (
	ErrRecordNotFound    = errors.New("punch record not found")
	ErrDayExists         = errors.New("punch record for this day already exists")
	ErrPunchRejected     = errors.New("punch rejected: already recorded, out of order, or unknown record")
	ErrWorkDayAlreadySet = errors.New("work day flag already set")
)

// Repository defines durable storage for daily punch records.
// Every write is committed before the call returns.
type Repository interface {
	// MostRecent returns the record with the greatest day, or ErrRecordNotFound.
	MostRecent(ctx context.Context) (*Record, error)
	// InsertDay creates an empty record for day. It never overwrites: an
	// existing day yields ErrDayExists.
	InsertDay(ctx context.Context, day civil.Date) (int64, error)
	// RecordPunch sets the slot for action once. A populated slot, a missing
	// predecessor, or an unknown id yields ErrPunchRejected.
	RecordPunch(ctx context.Context, id int64, action Action, at time.Time) error
	// SetWorkDay fixes the work day flag. A flag already set yields ErrWorkDayAlreadySet.
	SetWorkDay(ctx context.Context, id int64, value bool) error
}
