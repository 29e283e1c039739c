package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/repository"
)

// runDay records a finished run for the fixture clock's current day
func (f *fixture) runDay(t *testing.T, userID int64, moves ...float64) *models.Run {
	t.Helper()
	ctx := context.Background()
	run, _, err := f.svc.EnsureOpenForToday(ctx, userID)
	require.NoError(t, err)
	lat := 0.0
	for i := 0; i <= len(moves); i++ {
		if i > 0 {
			lat += moves[i-1]
			f.clock.Advance(10 * time.Minute)
		}
		_, err := f.svc.AddLocation(ctx, userID, run.ID, models.LocationInput{Lat: ptr(lat), Lon: ptr(0.0)})
		require.NoError(t, err)
	}
	finished, err := f.svc.Finish(ctx, userID, run.ID)
	require.NoError(t, err)
	return finished
}

func TestRunStatistics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "ada", nil)
	svc := NewStatsService(repository.NewStatsRepository(f.db), time.UTC)
	svc.now = f.clock.Now

	// 10-16 and 10-17 finished, 10-18 left open
	f.clock.Advance(-48 * time.Hour)
	first := f.runDay(t, u.ID, 0.01)
	f.clock.Advance(24 * time.Hour)
	second := f.runDay(t, u.ID, 0.01, 0.01)
	f.clock.Advance(24 * time.Hour)
	_, _, err := f.svc.EnsureOpenForToday(ctx, u.ID)
	require.NoError(t, err)

	got, err := svc.GetRunStatistics(ctx, u.ID, models.StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Runs)
	assert.Equal(t, 2, got.FinishedRuns)
	assert.InDelta(t, first.Distance+second.Distance, got.TotalDistance, 1e-6)
	assert.Equal(t, first.Duration+second.Duration, got.TotalDuration)
	assert.Equal(t, second.Distance, got.LongestDistance)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 2, got.LongestStreak.Days)
	assert.Equal(t, "2026-10-16", got.LongestStreak.StartDate)

	ranged, err := svc.GetRunStatistics(ctx, u.ID, models.StatsFilter{From: "2026-10-17", To: "2026-10-17"})
	require.NoError(t, err)
	assert.Equal(t, 1, ranged.Runs)
	assert.Equal(t, second.Distance, ranged.TotalDistance)

	_, err = svc.GetRunStatistics(ctx, u.ID, models.StatsFilter{From: "2026-10-18", To: "2026-10-01"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRunStatisticsEmpty(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "ada", nil)
	svc := NewStatsService(repository.NewStatsRepository(f.db), time.UTC)

	got, err := svc.GetRunStatistics(context.Background(), u.ID, models.StatsFilter{})
	require.NoError(t, err)
	assert.Zero(t, got.Runs)
	assert.Zero(t, got.AverageDistance)
	assert.Zero(t, got.CurrentStreak)
}
