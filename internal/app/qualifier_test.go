package app

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"punchclock/internal/domain/punch"
	"punchclock/internal/infra/logger"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday   = civil.Date{Year: 2024, Month: time.March, Day: 4}
	saturday = civil.Date{Year: 2024, Month: time.March, Day: 9}
)

func newQualifier(punches *memPunches, holidays *memHolidays, oracle *fakeOracle) *DayQualifier {
	return NewDayQualifier(punches, holidays, oracle,
		[]time.Weekday{time.Saturday, time.Sunday}, time.Second, logger.Discard())
}

func TestDayQualifier_OrdinaryWorkDay(t *testing.T) {
	punches := &memPunches{}
	rec := punches.add(&punch.Record{Day: monday})
	oracle := &fakeOracle{}
	q := newQualifier(punches, &memHolidays{}, oracle)

	ok, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, rec.IsWorkDay.Valid)

	stored := punches.byID(rec.ID)
	assert.True(t, stored.IsWorkDay.Valid)
	assert.True(t, stored.IsWorkDay.Bool)
}

func TestDayQualifier_CachedVerdictSkipsLookups(t *testing.T) {
	punches := &memPunches{}
	rec := punches.add(&punch.Record{Day: monday})
	holidays := &memHolidays{}
	oracle := &fakeOracle{}
	q := newQualifier(punches, holidays, oracle)

	_, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)
	_, err = q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)

	// A freshly loaded record carries the persisted verdict as well.
	reloaded, err := punches.MostRecent(context.Background())
	require.NoError(t, err)
	_, err = q.IsWorkDay(context.Background(), reloaded)
	require.NoError(t, err)

	assert.Equal(t, 1, oracle.calls)
	assert.Equal(t, 1, holidays.calls)
}

func TestDayQualifier_Weekend(t *testing.T) {
	punches := &memPunches{}
	rec := punches.add(&punch.Record{Day: saturday})
	holidays := &memHolidays{}
	oracle := &fakeOracle{}
	q := newQualifier(punches, holidays, oracle)

	ok, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, holidays.calls)
	assert.Zero(t, oracle.calls)
	assert.True(t, punches.byID(rec.ID).IsWorkDay.Valid)
}

func TestDayQualifier_Holiday(t *testing.T) {
	punches := &memPunches{}
	rec := punches.add(&punch.Record{Day: monday})
	oracle := &fakeOracle{}
	q := newQualifier(punches, &memHolidays{days: map[civil.Date]bool{monday: true}}, oracle)

	ok, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, oracle.calls)
}

func TestDayQualifier_HolidayLookupFailureCountsAsHoliday(t *testing.T) {
	punches := &memPunches{}
	rec := punches.add(&punch.Record{Day: monday})
	oracle := &fakeOracle{}
	q := newQualifier(punches, &memHolidays{err: errors.New("disk on fire")}, oracle)

	ok, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, oracle.calls)

	stored := punches.byID(rec.ID)
	assert.True(t, stored.IsWorkDay.Valid)
	assert.False(t, stored.IsWorkDay.Bool)
}

func TestDayQualifier_ApprovedLeave(t *testing.T) {
	punches := &memPunches{}
	rec := punches.add(&punch.Record{Day: monday})
	q := newQualifier(punches, &memHolidays{}, &fakeOracle{onLeave: true})

	ok, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, punches.byID(rec.ID).IsWorkDay.Bool)
}

func TestDayQualifier_OracleFailureIsNotCached(t *testing.T) {
	punches := &memPunches{}
	rec := punches.add(&punch.Record{Day: monday})
	oracle := &fakeOracle{err: errors.New("portal down")}
	q := newQualifier(punches, &memHolidays{}, oracle)

	_, err := q.IsWorkDay(context.Background(), rec)
	require.Error(t, err)
	assert.False(t, rec.IsWorkDay.Valid)
	assert.False(t, punches.byID(rec.ID).IsWorkDay.Valid)

	oracle.err = nil
	ok, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, oracle.calls)
}

func TestDayQualifier_PersistFailureStillAnswers(t *testing.T) {
	punches := &memPunches{}
	rec := &punch.Record{ID: 99, Day: monday} // Not in the store
	q := newQualifier(punches, &memHolidays{}, &fakeOracle{})

	ok, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, rec.IsWorkDay.Valid)
}

func TestDayQualifier_StoreCallsAreBounded(t *testing.T) {
	punches := &memPunches{}
	rec := punches.add(&punch.Record{Day: monday})
	holidays := &memHolidays{}
	q := newQualifier(punches, holidays, &fakeOracle{})

	_, err := q.IsWorkDay(context.Background(), rec)
	require.NoError(t, err)

	assert.Equal(t, 1, holidays.calls)
	assert.Zero(t, holidays.unbounded)
	assert.Empty(t, punches.unbounded)
}

func TestDayQualifier_StoredVerdictWinsRace(t *testing.T) {
	punches := &memPunches{}
	stored := punches.add(&punch.Record{Day: monday, IsWorkDay: sql.NullBool{Bool: false, Valid: true}})
	// A copy loaded before the flag was written elsewhere.
	stale := &punch.Record{ID: stored.ID, Day: monday}
	q := newQualifier(punches, &memHolidays{}, &fakeOracle{})

	ok, err := q.IsWorkDay(context.Background(), stale)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, sql.NullBool{Bool: false, Valid: true}, stale.IsWorkDay)
	assert.Empty(t, punches.unbounded)
}
