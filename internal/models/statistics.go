package models

// StatsFilter narrows statistics to an inclusive calendar date range.
// Empty bounds are open.
type StatsFilter struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// RunTotals are the raw aggregates over a user's runs
type RunTotals struct {
	Runs          int     `json:"runs"`
	FinishedRuns  int     `json:"finished_runs"`
	TotalDistance float64 `json:"total_distance"` // meters
	TotalDuration int64   `json:"total_duration"` // seconds
	TotalCalories float64 `json:"total_calories"` // kcal
}

// FinishedRunPoint is one finished run as seen by statistics
type FinishedRunPoint struct {
	Date     string
	Distance float64
	Duration int64
}

// RunStatistics summarises a user's running history
type RunStatistics struct {
	RunTotals

	AverageDistance float64 `json:"average_distance"`
	MedianDistance  float64 `json:"median_distance"`
	P90Distance     float64 `json:"p90_distance"`
	LongestDistance float64 `json:"longest_distance"`
	AverageSpeedKmh float64 `json:"average_speed_kmh"`

	CurrentStreak int           `json:"current_streak"` // days
	LongestStreak StreakSummary `json:"longest_streak"`

	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

// StreakSummary is a run of consecutive days with a finished run
type StreakSummary struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Days      int    `json:"days"`
}
