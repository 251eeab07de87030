package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tharagrowth/allocation"
)

func recommend(t *testing.T, id string, budget float64) (allocation.Profile, *allocation.PortfolioResult) {
	t.Helper()
	p := allocation.Profile{
		Age:         allocation.Age26to35,
		Income:      allocation.IncomeUpperMiddle,
		Risk:        allocation.RiskMedium,
		Goals:       []allocation.Goal{allocation.GoalGrowth},
		Preferences: allocation.NewCategorySet(allocation.Stocks, allocation.Gold, allocation.Savings),
		Budget:      allocation.M(budget, "USD"),
		Market:      allocation.GlobalMarket,
	}
	e, err := allocation.NewEngine(allocation.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)
	res, err := e.Recommend(id, p, allocation.DefaultCatalog())
	require.NoError(t, err)
	require.True(t, res.Feasible())
	return p, res
}

func openTest(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_SaveGet(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	p, res := recommend(t, "first", 25000)

	require.NoError(t, s.Save(ctx, p, res))

	rec, err := s.Get(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "first", rec.ID)
	assert.Equal(t, p.Segment(), rec.Profile.Segment())
	assert.True(t, rec.Profile.Preferences.Has(allocation.Gold))
	assert.Equal(t, res.Strategy.Name, rec.Result.Strategy.Name)
	assert.Equal(t, res.Weights, rec.Result.Weights)
	require.Len(t, rec.Result.Items, len(res.Items))
	for i, it := range res.Items {
		got := rec.Result.Items[i]
		assert.Equal(t, it.Instrument.ID, got.Instrument.ID)
		assert.True(t, it.Amount.Equal(got.Amount), "item %d amount %v, want %v", i, got.Amount, it.Amount)
		assert.True(t, it.Units.Equal(got.Units), "item %d units %v, want %v", i, got.Units, it.Units)
	}
	assert.True(t, res.TotalAllocated.Equal(rec.Result.TotalAllocated))
	assert.True(t, res.Remaining.Equal(rec.Result.Remaining))
	assert.Equal(t, res.Risk, rec.Result.Risk)
}

func TestSQLite_NotFound(t *testing.T) {
	s := openTest(t)
	_, err := s.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	_, err = Noop{}.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestSQLite_List(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for _, tc := range []struct {
		id     string
		budget float64
	}{{"a", 10000}, {"b", 20000}, {"c", 30000}} {
		p, res := recommend(t, tc.id, tc.budget)
		require.NoError(t, s.Save(ctx, p, res))
		now = now.Add(time.Minute)
	}
	// saving again replaces and refreshes.
	p, res := recommend(t, "a", 40000)
	require.NoError(t, s.Save(ctx, p, res))

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.True(t, all[0].Budget.Equal(allocation.M(40000, "USD")), "got %v", all[0].Budget)
	assert.Equal(t, res.Strategy.Name, all[0].Strategy)
	assert.False(t, all[0].Allocated.IsZero())

	two, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestSQLite_Memory(t *testing.T) {
	s, err := OpenSQLite(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	p, res := recommend(t, "mem", 15000)
	require.NoError(t, s.Save(context.Background(), p, res))
	_, err = s.Get(context.Background(), "mem")
	require.NoError(t, err)
}
