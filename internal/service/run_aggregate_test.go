package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runquest/runquest-backend/internal/models"
)

var start = time.Date(2026, time.October, 18, 6, 0, 0, 0, time.UTC)

func sample(lat, lon float64, at time.Duration) models.RunLocation {
	return models.RunLocation{Lat: lat, Lon: lon, Timestamp: start.Add(at)}
}

func TestSummarizeNeedsTwoLocations(t *testing.T) {
	_, err := Summarize(nil, 70)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Summarize([]models.RunLocation{sample(0, 0, 0)}, 70)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSummarizeStandingStill(t *testing.T) {
	got, err := Summarize([]models.RunLocation{
		sample(0, 0, 0),
		sample(0, 0, 60*time.Second),
	}, 0)
	require.NoError(t, err)

	assert.Zero(t, got.Distance)
	assert.Equal(t, int64(60), got.Duration)
	// 6.0 MET * 70 kg * 1/60 h
	assert.Equal(t, 7.0, got.Calories)
}

func TestSummarizeFastHalfHour(t *testing.T) {
	got, err := Summarize([]models.RunLocation{
		sample(40.7128, -74.0060, 0),
		sample(40.7628, -74.0060, 30*time.Minute),
	}, 70)
	require.NoError(t, err)

	assert.InDelta(t, 5559.75, got.Distance, 0.01)
	assert.Equal(t, int64(1800), got.Duration)
	assert.Equal(t, 437.5, got.Calories)
}

func TestSummarizeTruncatesDuration(t *testing.T) {
	got, err := Summarize([]models.RunLocation{
		sample(0, 0, 0),
		sample(0, 0, 59900*time.Millisecond),
	}, 70)
	require.NoError(t, err)
	assert.Equal(t, int64(59), got.Duration)
}

func TestSummarizeFollowsInsertionOrder(t *testing.T) {
	// out and back: the path length is twice the straight-line distance
	got, err := Summarize([]models.RunLocation{
		sample(0, 0, 0),
		sample(0.01, 0, time.Minute),
		sample(0, 0, 2*time.Minute),
	}, 70)
	require.NoError(t, err)
	assert.InDelta(t, 2*1111.95, got.Distance, 0.02)
}

func TestSummarizeUsesWeight(t *testing.T) {
	locations := []models.RunLocation{sample(0, 0, 0), sample(0, 0, time.Hour)}

	light, err := Summarize(locations, 50)
	require.NoError(t, err)
	heavy, err := Summarize(locations, 100)
	require.NoError(t, err)

	assert.Equal(t, 300.0, light.Calories)
	assert.Equal(t, 600.0, heavy.Calories)
}

func TestApplyCalorieGuard(t *testing.T) {
	run := &models.Run{Distance: 5000, Duration: 1800}
	ApplyCalorieGuard(run, 80)
	require.NotNil(t, run.Calories)
	// 10 km/h falls in the 10.0 MET band
	assert.Equal(t, 400.0, *run.Calories)

	run = &models.Run{Distance: 5000, Duration: 1800, Calories: ptr(0.0)}
	ApplyCalorieGuard(run, 0)
	assert.Equal(t, 350.0, *run.Calories)

	run = &models.Run{Distance: 5000, Duration: 1800, Calories: ptr(123.4)}
	ApplyCalorieGuard(run, 80)
	assert.Equal(t, 123.4, *run.Calories)

	run = &models.Run{}
	ApplyCalorieGuard(run, 80)
	assert.Equal(t, 0.0, *run.Calories)
}
