package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/runquest/runquest-backend/internal/models"
)

// StatsRepository handles database operations for statistics
type StatsRepository struct {
	db DBTX
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

func statsWhere(userID int64, filter models.StatsFilter) (string, []interface{}) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.From != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.To)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// GetRunTotals aggregates the user's runs in the filter's date range
func (r *StatsRepository) GetRunTotals(ctx context.Context, userID int64, filter models.StatsFilter) (*models.RunTotals, error) {
	where, args := statsWhere(userID, filter)
	query := `SELECT COUNT(*), COUNT(finished_at),
		COALESCE(SUM(distance), 0), COALESCE(SUM(duration), 0), COALESCE(SUM(calories), 0)
		FROM runs` + where

	var totals models.RunTotals
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&totals.Runs, &totals.FinishedRuns,
		&totals.TotalDistance, &totals.TotalDuration, &totals.TotalCalories,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate runs: %w", err)
	}
	return &totals, nil
}

// GetFinishedRuns lists the user's finished runs in the filter's date range, oldest first
func (r *StatsRepository) GetFinishedRuns(ctx context.Context, userID int64, filter models.StatsFilter) ([]models.FinishedRunPoint, error) {
	where, args := statsWhere(userID, filter)
	query := `SELECT date, distance, duration FROM runs` + where + ` AND finished_at IS NOT NULL ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query finished runs: %w", err)
	}
	defer rows.Close()

	points := []models.FinishedRunPoint{}
	for rows.Next() {
		var p models.FinishedRunPoint
		if err := rows.Scan(&p.Date, &p.Distance, &p.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan finished run: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
