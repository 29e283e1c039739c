// Package energy estimates running energy expenditure from speed-banded
// metabolic equivalents (MET).
package energy

// DefaultWeightKg is substituted when a user has not recorded a weight
const DefaultWeightKg = 70.0

// metBand maps speeds from MinKmh (inclusive) up to the next band's MinKmh
// (exclusive) onto a MET value.
type metBand struct {
	MinKmh float64
	MET    float64
}

// bands must stay sorted by MinKmh
var bands = []metBand{
	{MinKmh: 0, MET: 6.0},
	{MinKmh: 7, MET: 8.3},
	{MinKmh: 9, MET: 10.0},
	{MinKmh: 11, MET: 12.5},
}

// SpeedKmh returns the average speed for a distance in meters covered in durationSeconds.
// A zero duration yields zero.
func SpeedKmh(distanceMeters float64, durationSeconds int64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return (distanceMeters / 1000) / (float64(durationSeconds) / 3600)
}

// METForSpeed selects the MET value of the band containing kmh
func METForSpeed(kmh float64) float64 {
	met := bands[0].MET
	for _, b := range bands {
		if kmh >= b.MinKmh {
			met = b.MET
		}
	}
	return met
}

// Calories returns the unrounded kcal burned over the run.
// weightKg <= 0 means unknown and DefaultWeightKg is used.
func Calories(distanceMeters float64, durationSeconds int64, weightKg float64) float64 {
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	if durationSeconds <= 0 {
		return 0
	}

	met := METForSpeed(SpeedKmh(distanceMeters, durationSeconds))
	hours := float64(durationSeconds) / 3600
	return met * weightKg * hours
}
