package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/runquest/runquest-backend/internal/database"
	"github.com/runquest/runquest-backend/internal/models"
)

const runColumns = `id, user_id, date, distance, duration, calories, territory_id, finished_at, created_at`

// RunRepository handles database operations for runs and their locations
type RunRepository struct {
	conn *sql.DB
	db   DBTX
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{conn: db, db: db}
}

// InTx runs fn against a repository bound to a single transaction.
// fn's error rolls the transaction back.
func (r *RunRepository) InTx(ctx context.Context, fn func(repo *RunRepository) error) error {
	return database.Transaction(ctx, r.conn, func(tx *sql.Tx) error {
		return fn(&RunRepository{conn: r.conn, db: tx})
	})
}

// InsertIfAbsent inserts run unless (user, date) already has one.
// The unique constraint decides; created is false when the row already existed.
func (r *RunRepository) InsertIfAbsent(ctx context.Context, run *models.Run) (bool, error) {
	query := `INSERT INTO runs (user_id, date, distance, duration, calories, territory_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		run.UserID, run.Date, run.Distance, run.Duration, run.Calories, run.TerritoryID, toNanos(run.CreatedAt))
	if err != nil {
		return false, fmt.Errorf("failed to insert run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// GetByID retrieves a run, or nil when absent
func (r *RunRepository) GetByID(ctx context.Context, id int64) (*models.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// GetByUserDate retrieves the run of a user for a calendar date, or nil when absent
func (r *RunRepository) GetByUserDate(ctx context.Context, userID int64, date string) (*models.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE user_id = ? AND date = ?`, userID, date)
	return scanRun(row)
}

// ListByUser retrieves a user's runs, newest date first
func (r *RunRepository) ListByUser(ctx context.Context, userID int64) ([]models.Run, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// UpdateMetrics writes the derived columns of a run
func (r *RunRepository) UpdateMetrics(ctx context.Context, run *models.Run) error {
	query := `UPDATE runs SET distance = ?, duration = ?, calories = ?, finished_at = ? WHERE id = ?`

	var finishedAt sql.NullInt64
	if run.FinishedAt != nil {
		finishedAt = sql.NullInt64{Int64: toNanos(*run.FinishedAt), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, run.Distance, run.Duration, run.Calories, finishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run %d: %w", run.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %d: %w", run.ID, sql.ErrNoRows)
	}
	return nil
}

// DeleteRun removes a run and the locations it owns in one transaction
func (r *RunRepository) DeleteRun(ctx context.Context, id int64) error {
	return r.InTx(ctx, func(repo *RunRepository) error {
		if _, err := repo.db.ExecContext(ctx, `DELETE FROM run_locations WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete locations of run %d: %w", id, err)
		}
		if _, err := repo.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete run %d: %w", id, err)
		}
		return nil
	})
}

// AppendLocation stores a sample stamped with now, raised if necessary to the run's
// latest timestamp so that timestamps never decrease in insertion order.
func (r *RunRepository) AppendLocation(ctx context.Context, runID int64, lat, lon float64, now time.Time) (*models.RunLocation, error) {
	query := `INSERT INTO run_locations (run_id, lat, lon, recorded_at)
		VALUES (?, ?, ?, MAX(?, COALESCE((SELECT MAX(recorded_at) FROM run_locations WHERE run_id = ?), 0)))
		RETURNING id, recorded_at`

	loc := models.RunLocation{RunID: runID, Lat: lat, Lon: lon}
	var recordedAt int64
	err := r.db.QueryRowContext(ctx, query, runID, lat, lon, toNanos(now), runID).Scan(&loc.ID, &recordedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	loc.Timestamp = fromNanos(recordedAt)
	return &loc, nil
}

// ListLocations retrieves a run's samples in timestamp order
func (r *RunRepository) ListLocations(ctx context.Context, runID int64) ([]models.RunLocation, error) {
	query := `SELECT id, run_id, lat, lon, recorded_at FROM run_locations
		WHERE run_id = ? ORDER BY recorded_at ASC, id ASC`

	return r.queryLocations(ctx, query, runID)
}

// ListLocationsByUser retrieves samples of every run the user owns
func (r *RunRepository) ListLocationsByUser(ctx context.Context, userID int64) ([]models.RunLocation, error) {
	query := `SELECT l.id, l.run_id, l.lat, l.lon, l.recorded_at FROM run_locations l
		JOIN runs r ON r.id = l.run_id
		WHERE r.user_id = ?
		ORDER BY l.run_id DESC, l.recorded_at ASC, l.id ASC`

	return r.queryLocations(ctx, query, userID)
}

// GetLocation retrieves a sample along with the ID of the user owning its run.
// It returns nil when the sample does not exist.
func (r *RunRepository) GetLocation(ctx context.Context, id int64) (*models.RunLocation, int64, error) {
	query := `SELECT l.id, l.run_id, l.lat, l.lon, l.recorded_at, r.user_id FROM run_locations l
		JOIN runs r ON r.id = l.run_id
		WHERE l.id = ?`

	var (
		loc        models.RunLocation
		recordedAt int64
		ownerID    int64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&loc.ID, &loc.RunID, &loc.Lat, &loc.Lon, &recordedAt, &ownerID)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get location: %w", err)
	}

	loc.Timestamp = fromNanos(recordedAt)
	return &loc, ownerID, nil
}

// CountLocations returns how many samples a run has
func (r *RunRepository) CountLocations(ctx context.Context, runID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM run_locations WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return n, nil
}

func (r *RunRepository) queryLocations(ctx context.Context, query string, args ...interface{}) ([]models.RunLocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := []models.RunLocation{}
	for rows.Next() {
		var (
			loc        models.RunLocation
			recordedAt int64
		)
		if err := rows.Scan(&loc.ID, &loc.RunID, &loc.Lat, &loc.Lon, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		loc.Timestamp = fromNanos(recordedAt)
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var (
		run        models.Run
		calories   sql.NullFloat64
		territory  sql.NullInt64
		finishedAt sql.NullInt64
		createdAt  int64
	)
	err := row.Scan(&run.ID, &run.UserID, &run.Date, &run.Distance, &run.Duration,
		&calories, &territory, &finishedAt, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	if calories.Valid {
		c := calories.Float64
		run.Calories = &c
	}
	if territory.Valid {
		id := territory.Int64
		run.TerritoryID = &id
	}
	run.FinishedAt = nullableTime(finishedAt)
	run.CreatedAt = fromNanos(createdAt)
	return &run, nil
}
