package database

import (
	"context"
	"testing"
	"time"

	"punchclock/internal/domain/holiday"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepository_IsHoliday(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLHolidayRepository(openTestDB(t))
	christmas := civil.Date{Year: 2026, Month: time.December, Day: 25}

	isHoliday, err := repo.IsHoliday(ctx, christmas)
	require.NoError(t, err)
	assert.False(t, isHoliday)

	require.NoError(t, repo.Add(ctx, holiday.FromDate(christmas)))

	isHoliday, err = repo.IsHoliday(ctx, christmas)
	require.NoError(t, err)
	assert.True(t, isHoliday)

	// Same month and day, different year.
	isHoliday, err = repo.IsHoliday(ctx, christmas.AddYears(1))
	require.NoError(t, err)
	assert.False(t, isHoliday)
}

func TestHolidayRepository_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLHolidayRepository(openTestDB(t))
	day := civil.Date{Year: 2026, Month: time.July, Day: 3}

	h := holiday.FromDate(day)
	require.NoError(t, repo.Add(ctx, h))
	assert.NotZero(t, h.ID)

	assert.ErrorIs(t, repo.Add(ctx, holiday.FromDate(day)), holiday.ErrHolidayExists)
}

func TestHolidayRepository_Remove(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLHolidayRepository(openTestDB(t))
	day := civil.Date{Year: 2026, Month: time.November, Day: 26}

	assert.ErrorIs(t, repo.Remove(ctx, day), holiday.ErrHolidayNotFound)

	require.NoError(t, repo.Add(ctx, holiday.FromDate(day)))
	require.NoError(t, repo.Remove(ctx, day))

	isHoliday, err := repo.IsHoliday(ctx, day)
	require.NoError(t, err)
	assert.False(t, isHoliday)
}

func TestHolidayRepository_ListOrdersByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLHolidayRepository(openTestDB(t))

	days := []civil.Date{
		{Year: 2026, Month: time.December, Day: 25},
		{Year: 2027, Month: time.January, Day: 1},
		{Year: 2026, Month: time.May, Day: 25},
		{Year: 2026, Month: time.September, Day: 7},
	}
	for _, d := range days {
		require.NoError(t, repo.Add(ctx, holiday.FromDate(d)))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, days[2], all[0].Date())
	assert.Equal(t, days[3], all[1].Date())
	assert.Equal(t, days[0], all[2].Date())
	assert.Equal(t, days[1], all[3].Date())

	only2027, err := repo.List(ctx, 2027)
	require.NoError(t, err)
	require.Len(t, only2027, 1)
	assert.Equal(t, days[1], only2027[0].Date())
}
