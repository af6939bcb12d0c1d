package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singhankit6748/Water-Tracker/internal/core"
)

// clock is a settable "now" for date-window tests.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func openTestStore(t *testing.T, c *clock) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "water.db")
	s, err := Open(path, WithClock(c.Now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func amounts(recs []core.Record) []float64 {
	out := make([]float64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.AmountML)
	}
	return out
}

func TestInsertThenQueryAllTime(t *testing.T) {
	c := &clock{now: day(2024, 1, 1, 12)}
	s := openTestStore(t, c)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, "alice", 500, day(2024, 1, 1, 8)))
	require.NoError(t, s.Insert(ctx, "alice", 300, day(2024, 1, 1, 20)))

	recs, err := s.Query(ctx, "alice", core.FilterAllTime)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, "2024-01-01", r.Date)
		assert.Equal(t, "Monday", r.Weekday)
	}
	assert.ElementsMatch(t, []float64{500, 300}, amounts(recs))

	total, err := s.TodayTotal(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 800.0, total)
}

func TestInsertDefaultsToNow(t *testing.T) {
	c := &clock{now: day(2024, 2, 29, 23)}
	s := openTestStore(t, c)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, "bob", 250, time.Time{}))

	recs, err := s.Query(ctx, "bob", core.FilterToday)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "2024-02-29", recs[0].Date)
	assert.Equal(t, "Thursday", recs[0].Weekday)
}

func TestIDsIncrease(t *testing.T) {
	c := &clock{now: day(2024, 1, 1, 12)}
	s := openTestStore(t, c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Insert(ctx, "alice", 100, time.Time{}))
	}
	recs, err := s.Query(ctx, "alice", core.FilterAllTime)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Less(t, recs[0].ID, recs[1].ID)
	assert.Less(t, recs[1].ID, recs[2].ID)
}

func TestQueryIsPerUserAndCaseSensitive(t *testing.T) {
	c := &clock{now: day(2024, 1, 1, 12)}
	s := openTestStore(t, c)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, "alice", 100, time.Time{}))
	require.NoError(t, s.Insert(ctx, "Alice", 200, time.Time{}))

	recs, err := s.Query(ctx, "alice", core.FilterAllTime)
	require.NoError(t, err)
	assert.Equal(t, []float64{100}, amounts(recs))

	recs, err = s.Query(ctx, "nobody", core.FilterAllTime)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestQueryFilters(t *testing.T) {
	c := &clock{now: day(2024, 3, 31, 9)}
	s := openTestStore(t, c)
	ctx := context.Background()

	seed := map[time.Time]float64{
		day(2024, 3, 31, 8): 1,  // today
		day(2024, 3, 30, 8): 2,  // yesterday
		day(2024, 3, 24, 8): 7,  // today-7, inclusive edge
		day(2024, 3, 23, 8): 8,  // outside 7 days
		day(2024, 3, 1, 8):  30, // today-30, inclusive edge
		day(2024, 2, 29, 8): 31, // outside 30 days
		day(2023, 1, 1, 8):  99, // ancient
	}
	for at, amount := range seed {
		require.NoError(t, s.Insert(ctx, "alice", amount, at))
	}

	today, err := s.Query(ctx, "alice", core.FilterToday)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, amounts(today))

	week, err := s.Query(ctx, "alice", core.FilterLast7Days)
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{1, 2, 7}, amounts(week))

	month, err := s.Query(ctx, "alice", core.FilterLast30Days)
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{1, 2, 7, 8, 30}, amounts(month))

	all, err := s.Query(ctx, "alice", core.FilterAllTime)
	require.NoError(t, err)
	assert.Len(t, all, len(seed))

	// Windows widen monotonically: today ⊆ 7 days ⊆ 30 days ⊆ all time.
	assert.Subset(t, amounts(week), amounts(today))
	assert.Subset(t, amounts(month), amounts(week))
	assert.Subset(t, amounts(all), amounts(month))
}

func TestLastNDaysIncludesFutureDates(t *testing.T) {
	c := &clock{now: day(2024, 1, 10, 9)}
	s := openTestStore(t, c)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, "alice", 400, day(2024, 1, 12, 9)))

	week, err := s.Query(ctx, "alice", core.FilterLast7Days)
	require.NoError(t, err)
	assert.Len(t, week, 1)

	today, err := s.Query(ctx, "alice", core.FilterToday)
	require.NoError(t, err)
	assert.Empty(t, today)
}

func TestTodayTotal(t *testing.T) {
	c := &clock{now: day(2024, 1, 1, 12)}
	s := openTestStore(t, c)
	ctx := context.Background()

	total, err := s.TodayTotal(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, total)

	for _, ml := range []float64{200, 300, 500} {
		require.NoError(t, s.Insert(ctx, "alice", ml, time.Time{}))
	}
	require.NoError(t, s.Insert(ctx, "alice", 999, day(2023, 12, 31, 12)))
	require.NoError(t, s.Insert(ctx, "bob", 999, time.Time{}))

	total, err = s.TodayTotal(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, total)

	// Moving the clock moves "today".
	c.now = day(2023, 12, 31, 18)
	total, err = s.TodayTotal(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 999.0, total)
}

func TestMalformedDateIsKept(t *testing.T) {
	c := &clock{now: day(2024, 1, 1, 12)}
	s := openTestStore(t, c)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO water_intake(user_id, date, amount_ml) VALUES ('alice', '01/02/2024', 250);`)
	require.NoError(t, err)
	require.NoError(t, s.Insert(ctx, "alice", 100, time.Time{}))

	recs, err := s.Query(ctx, "alice", core.FilterAllTime)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	byDate := map[string]core.Record{}
	for _, r := range recs {
		byDate[r.Date] = r
	}
	assert.Equal(t, core.UnknownWeekday, byDate["01/02/2024"].Weekday)
	assert.Equal(t, 250.0, byDate["01/02/2024"].AmountML)
	assert.Equal(t, "Monday", byDate["2024-01-01"].Weekday)
}

func TestStorageErrorsPropagate(t *testing.T) {
	c := &clock{now: day(2024, 1, 1, 12)}
	s := openTestStore(t, c)
	require.NoError(t, s.Close())

	ctx := context.Background()
	assert.Error(t, s.Insert(ctx, "alice", 1, time.Time{}))
	_, err := s.Query(ctx, "alice", core.FilterAllTime)
	assert.Error(t, err)
	_, err = s.TodayTotal(ctx, "alice")
	assert.Error(t, err)
}
