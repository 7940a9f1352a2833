// internal/infra/database/punch_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"punchclock/internal/domain/punch"

	"cloud.google.com/go/civil"
)

type SQLPunchRepository struct {
	db *DB
}

func NewSQLPunchRepository(db *DB) *SQLPunchRepository {
	return &SQLPunchRepository{db: db}
}

func (r *SQLPunchRepository) MostRecent(ctx context.Context) (*punch.Record, error) {
	query := `SELECT id, punch_day, clock_in, lunch_start, lunch_end, clock_out, is_work_day
               FROM punches ORDER BY punch_day DESC LIMIT 1`
	rec := &punch.Record{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&rec.ID, &rec.Day, &rec.ClockIn, &rec.LunchStart, &rec.LunchEnd, &rec.ClockOut, &rec.IsWorkDay,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, punch.ErrRecordNotFound
		}
		return nil, fmt.Errorf("error getting most recent punch record: %w", err)
	}
	return rec, nil
}

func (r *SQLPunchRepository) InsertDay(ctx context.Context, day civil.Date) (int64, error) {
	query := r.db.rebind(`INSERT INTO punches (punch_day) VALUES (?) RETURNING id`)
	var id int64
	if err := r.db.QueryRowContext(ctx, query, day).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, punch.ErrDayExists
		}
		return 0, fmt.Errorf("error inserting punch record for %s: %w", day, err)
	}
	return id, nil
}

func (r *SQLPunchRepository) RecordPunch(ctx context.Context, id int64, action punch.Action, at time.Time) error {
	column, err := punchColumn(action)
	if err != nil {
		return err
	}
	// The slot is write-once and only fillable after its predecessor.
	query := fmt.Sprintf(`UPDATE punches SET %s = ? WHERE id = ? AND %s IS NULL`, column, column)
	if prev, ok := action.Previous(); ok {
		prevColumn, _ := punchColumn(prev)
		query += fmt.Sprintf(` AND %s IS NOT NULL`, prevColumn)
	}

	res, err := r.db.ExecContext(ctx, r.db.rebind(query), at, id)
	if err != nil {
		return fmt.Errorf("error recording %s for punch record %d: %w", action, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result of %s for punch record %d: %w", action, id, err)
	}
	if n == 0 {
		return punch.ErrPunchRejected
	}
	return nil
}

func (r *SQLPunchRepository) SetWorkDay(ctx context.Context, id int64, value bool) error {
	query := r.db.rebind(`UPDATE punches SET is_work_day = ? WHERE id = ? AND is_work_day IS NULL`)
	res, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("error setting work day flag for punch record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result of work day update for punch record %d: %w", id, err)
	}
	if n == 0 {
		return punch.ErrWorkDayAlreadySet
	}
	return nil
}

func punchColumn(action punch.Action) (string, error) {
	switch action {
	case punch.ActionClockIn:
		return "clock_in", nil
	case punch.ActionStartLunch:
		return "lunch_start", nil
	case punch.ActionEndLunch:
		return "lunch_end", nil
	case punch.ActionClockOut:
		return "clock_out", nil
	}
	return "", fmt.Errorf("unknown punch action %d", int(action))
}
