package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{40.7128, -74.0060, 40.7628, -74.0060},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 179.9, 0, -179.9},
	}

	for _, p := range pairs {
		ab := HaversineDistance(p[0], p[1], p[2], p[3])
		ba := HaversineDistance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
		assert.Greater(t, ab, 0.0)
	}
}

func TestHaversineDistanceIdenticalPoints(t *testing.T) {
	assert.Zero(t, HaversineDistance(0, 0, 0, 0))
	assert.Zero(t, HaversineDistance(41.3111, 69.2797, 41.3111, 69.2797))
}

func TestHaversineDistanceKnownValues(t *testing.T) {
	// 0.05 degrees of latitude on a 6371 km sphere
	assert.InDelta(t, 5559.75, HaversineDistance(40.7128, -74.0060, 40.7628, -74.0060), 0.01)

	// London to Paris
	assert.InDelta(t, 343556, HaversineDistance(51.5074, -0.1278, 48.8566, 2.3522), 500)

	// across the antimeridian the short way round
	assert.InDelta(t, 22239, HaversineDistance(0, 179.9, 0, -179.9), 1)
}

func TestPathLength(t *testing.T) {
	assert.Zero(t, PathLength(nil))
	assert.Zero(t, PathLength([]Point{{Lat: 1, Lon: 1}}))

	out := Point{Lat: 0, Lon: 0}
	back := Point{Lat: 0, Lon: 0.01}
	leg := HaversineDistance(out.Lat, out.Lon, back.Lat, back.Lon)

	// an out-and-back path counts both legs, unlike the straight-line distance
	assert.InDelta(t, 2*leg, PathLength([]Point{out, back, out}), 1e-6)
}

func TestCircleContains(t *testing.T) {
	center := Point{Lat: 41.3111, Lon: 69.2797}

	assert.True(t, CircleContains(center, 200, center))
	assert.True(t, CircleContains(center, 200, Point{Lat: 41.3120, Lon: 69.2797}))
	assert.False(t, CircleContains(center, 200, Point{Lat: 41.3200, Lon: 69.2797}))
}
