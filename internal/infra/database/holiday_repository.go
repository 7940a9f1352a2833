// internal/infra/database/holiday_repository.go
package database

import (
	"context"
	"fmt"
	"sort"
	"time"

	"punchclock/internal/domain/holiday"

	"cloud.google.com/go/civil"
)

type SQLHolidayRepository struct {
	db *DB
}

func NewSQLHolidayRepository(db *DB) *SQLHolidayRepository {
	return &SQLHolidayRepository{db: db}
}

func (r *SQLHolidayRepository) IsHoliday(ctx context.Context, day civil.Date) (bool, error) {
	query := r.db.rebind(`SELECT COUNT(*) FROM holidays WHERE month = ? AND day = ? AND year = ?`)
	var count int
	if err := r.db.QueryRowContext(ctx, query, day.Month.String(), day.Day, day.Year).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking holiday for %s: %w", day, err)
	}
	return count > 0, nil
}

func (r *SQLHolidayRepository) Add(ctx context.Context, h *holiday.Holiday) error {
	query := r.db.rebind(`INSERT INTO holidays (month, day, year) VALUES (?, ?, ?) RETURNING id`)
	err := r.db.QueryRowContext(ctx, query, h.Month.String(), h.Day, h.Year).Scan(&h.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.ErrHolidayExists
		}
		return fmt.Errorf("error adding holiday %s: %w", h.Date(), err)
	}
	return nil
}

func (r *SQLHolidayRepository) Remove(ctx context.Context, day civil.Date) error {
	query := r.db.rebind(`DELETE FROM holidays WHERE month = ? AND day = ? AND year = ?`)
	res, err := r.db.ExecContext(ctx, query, day.Month.String(), day.Day, day.Year)
	if err != nil {
		return fmt.Errorf("error removing holiday %s: %w", day, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result of holiday removal: %w", err)
	}
	if n == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

func (r *SQLHolidayRepository) List(ctx context.Context, year int) ([]*holiday.Holiday, error) {
	query := `SELECT id, month, day, year FROM holidays`
	var args []any
	if year != 0 {
		query += ` WHERE year = ?`
		args = append(args, year)
	}

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("error listing holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]*holiday.Holiday, 0)
	for rows.Next() {
		h := &holiday.Holiday{}
		var month string
		if err := rows.Scan(&h.ID, &month, &h.Day, &h.Year); err != nil {
			return nil, fmt.Errorf("error scanning holiday row: %w", err)
		}
		if h.Month, err = parseMonth(month); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holiday rows: %w", err)
	}

	// Month is stored by name, so order in Go rather than SQL.
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date().Before(holidays[j].Date())
	})
	return holidays, nil
}

func parseMonth(name string) (time.Month, error) {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month %q in holidays table", name)
}
