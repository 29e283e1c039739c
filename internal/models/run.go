package models

import "time"

// RunState is derived from whether a run has been finished
type RunState string

const (
	RunStateOpen     RunState = "open"
	RunStateFinished RunState = "finished"
)

// DateLayout is the calendar date format of Run.Date
const DateLayout = "2006-01-02"

// Run is one calendar day's running activity for a user
type Run struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	Date        string     `json:"date"`
	Distance    float64    `json:"distance"` // meters
	Duration    int64      `json:"duration"` // seconds
	Calories    *float64   `json:"calories"` // kcal, nil until computed
	TerritoryID *int64     `json:"territory"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// State reports whether the run is still accepting a finish
func (r *Run) State() RunState {
	if r.FinishedAt != nil {
		return RunStateFinished
	}
	return RunStateOpen
}

// RunLocation is a single GPS sample. Timestamp is assigned by the server.
type RunLocation struct {
	ID        int64     `json:"id"`
	RunID     int64     `json:"run"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationInput is a GPS sample as submitted by a client
type LocationInput struct {
	Lat *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" binding:"required,min=-180,max=180"`
}

// NewLocationInput is the payload of POST /locations, which names the run in the body
type NewLocationInput struct {
	Run int64 `json:"run" binding:"required"`
	LocationInput
}
