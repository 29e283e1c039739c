package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMETForSpeedBands(t *testing.T) {
	tests := []struct {
		kmh  float64
		want float64
	}{
		{0, 6.0},
		{6.99, 6.0},
		{7.0, 8.3},
		{8.99, 8.3},
		{9.0, 10.0},
		{10.99, 10.0},
		{11.0, 12.5},
		{25, 12.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, METForSpeed(tt.kmh), "speed %.2f km/h", tt.kmh)
	}
}

func TestCaloriesZeroDuration(t *testing.T) {
	assert.Zero(t, Calories(0, 0, 70))
	assert.Zero(t, Calories(5000, 0, 82))
	assert.Zero(t, Calories(5000, 0, 0))
}

func TestCaloriesDefaultWeight(t *testing.T) {
	// 60 seconds standing still: 6.0 MET * 70 kg * 1/60 h
	assert.InDelta(t, 7.0, Calories(0, 60, 0), 1e-9)
	assert.Equal(t, Calories(0, 60, DefaultWeightKg), Calories(0, 60, 0))
}

func TestCaloriesBandBoundaries(t *testing.T) {
	// one hour runs at exactly the boundary speeds pick the higher band
	assert.InDelta(t, 8.3*70, Calories(7000, 3600, 70), 1e-9)
	assert.InDelta(t, 10.0*70, Calories(9000, 3600, 70), 1e-9)
	assert.InDelta(t, 12.5*70, Calories(11000, 3600, 70), 1e-9)
}

func TestCaloriesFastHalfHour(t *testing.T) {
	// ~5.56 km in 30 minutes is ~11.1 km/h
	got := Calories(5559.75, 1800, 70)
	assert.InDelta(t, 437.5, got, 1e-9)
}

func TestCaloriesNonNegative(t *testing.T) {
	for _, d := range []float64{0, 1, 500, 42195} {
		for _, s := range []int64{1, 60, 3600, 14400} {
			for _, w := range []float64{1, 55, 70, 120} {
				assert.GreaterOrEqual(t, Calories(d, s, w), 0.0)
			}
		}
	}
}

func TestSpeedKmh(t *testing.T) {
	assert.Zero(t, SpeedKmh(1000, 0))
	assert.InDelta(t, 12.0, SpeedKmh(3000, 900), 1e-9)
}
