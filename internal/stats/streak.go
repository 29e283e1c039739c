package stats

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Streak is a run of consecutive calendar days
type Streak struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

// Streaks groups dates (YYYY-MM-DD) into consecutive-day streaks, oldest first.
// Duplicates and unparsable dates are ignored.
func Streaks(dates []string) []Streak {
	days := make([]time.Time, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		seen[d] = true
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var streaks []Streak
	for i, day := range days {
		if i > 0 && day.Sub(days[i-1]) == 24*time.Hour {
			last := &streaks[len(streaks)-1]
			last.EndDate = day.Format(dateLayout)
			last.Days++
			continue
		}
		streaks = append(streaks, Streak{
			StartDate: day.Format(dateLayout),
			EndDate:   day.Format(dateLayout),
			Days:      1,
		})
	}
	return streaks
}

// Longest returns the longest streak; ties go to the most recent
func Longest(streaks []Streak) Streak {
	var best Streak
	for _, s := range streaks {
		if s.Days >= best.Days {
			best = s
		}
	}
	return best
}

// Current returns the length of the streak that ends today or yesterday.
// A streak ending yesterday is still alive until today is over.
func Current(streaks []Streak, today string) int {
	if len(streaks) == 0 {
		return 0
	}
	t, err := time.Parse(dateLayout, today)
	if err != nil {
		return 0
	}
	last := streaks[len(streaks)-1]
	if last.EndDate == today || last.EndDate == t.AddDate(0, 0, -1).Format(dateLayout) {
		return last.Days
	}
	return 0
}
