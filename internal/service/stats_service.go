package service

import (
	"context"
	"fmt"
	"time"

	"github.com/runquest/runquest-backend/internal/energy"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/repository"
	"github.com/runquest/runquest-backend/internal/stats"
)

// StatsService summarises a user's running history
type StatsService struct {
	statsRepo *repository.StatsRepository
	loc       *time.Location
	now       func() time.Time
}

// NewStatsService creates a new stats service. loc decides what "today" is for streaks.
func NewStatsService(statsRepo *repository.StatsRepository, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		statsRepo: statsRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// GetRunStatistics computes totals, distance distribution and streaks
func (s *StatsService) GetRunStatistics(ctx context.Context, userID int64, filter models.StatsFilter) (*models.RunStatistics, error) {
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return nil, fmt.Errorf("%w: from must not be after to", ErrValidation)
	}

	totals, err := s.statsRepo.GetRunTotals(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	finished, err := s.statsRepo.GetFinishedRuns(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	distances := make([]float64, 0, len(finished))
	dates := make([]string, 0, len(finished))
	var finishedDuration int64
	for _, run := range finished {
		distances = append(distances, run.Distance)
		dates = append(dates, run.Date)
		finishedDuration += run.Duration
	}

	now := s.now()
	streaks := stats.Streaks(dates)
	longest := stats.Longest(streaks)

	result := &models.RunStatistics{
		RunTotals:       *totals,
		AverageDistance: roundTo(stats.Mean(distances), 2),
		MedianDistance:  roundTo(stats.Median(distances), 2),
		P90Distance:     roundTo(stats.Percentile(distances, 90), 2),
		LongestDistance: stats.Max(distances),
		AverageSpeedKmh: roundTo(energy.SpeedKmh(stats.Sum(distances), finishedDuration), 2),
		CurrentStreak:   stats.Current(streaks, now.In(s.loc).Format(models.DateLayout)),
		LongestStreak: models.StreakSummary{
			StartDate: longest.StartDate,
			EndDate:   longest.EndDate,
			Days:      longest.Days,
		},
		From:        filter.From,
		To:          filter.To,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
	result.TotalCalories = roundTo(result.TotalCalories, 1)
	return result, nil
}
