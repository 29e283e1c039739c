package service

import (
	"fmt"
	"math"

	"github.com/runquest/runquest-backend/internal/energy"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/spatial"
)

// MinFinishLocations is the number of samples needed to form a distance
const MinFinishLocations = 2

// RunSummary holds the derived fields of a finished run
type RunSummary struct {
	Distance float64 // meters, rounded to 2 decimals
	Duration int64   // whole seconds, truncated
	Calories float64 // kcal, rounded to 1 decimal
}

// Summarize integrates the path through locations in the order given and
// derives duration and calories. weightKg <= 0 selects the default weight.
func Summarize(locations []models.RunLocation, weightKg float64) (RunSummary, error) {
	if len(locations) < MinFinishLocations {
		return RunSummary{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(locations), MinFinishLocations)
	}

	path := make([]spatial.Point, len(locations))
	for i, loc := range locations {
		path[i] = spatial.Point{Lat: loc.Lat, Lon: loc.Lon}
	}

	distance := roundTo(spatial.PathLength(path), 2)

	elapsed := locations[len(locations)-1].Timestamp.Sub(locations[0].Timestamp)
	duration := int64(elapsed.Seconds())
	if duration < 0 {
		duration = 0
	}

	return RunSummary{
		Distance: distance,
		Duration: duration,
		Calories: roundTo(energy.Calories(distance, duration, weightKg), 1),
	}, nil
}

// ApplyCalorieGuard fills in calories when they are unset or zero.
// It runs on every run write so calories are never left uncomputed.
func ApplyCalorieGuard(run *models.Run, weightKg float64) {
	if run.Calories != nil && *run.Calories != 0 {
		return
	}
	c := roundTo(energy.Calories(run.Distance, run.Duration, weightKg), 1)
	run.Calories = &c
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
