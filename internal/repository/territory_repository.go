package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runquest/runquest-backend/internal/models"
)

// TerritoryRepository handles database operations for territories
type TerritoryRepository struct {
	db *sql.DB
}

// NewTerritoryRepository creates a new territory repository
func NewTerritoryRepository(db *sql.DB) *TerritoryRepository {
	return &TerritoryRepository{db: db}
}

const territorySelect = `SELECT t.id, t.owner_id, u.username, t.center_lat, t.center_lon, t.radius, t.created_at
	FROM territories t JOIN users u ON u.id = t.owner_id`

// Create inserts a territory and sets its ID
func (r *TerritoryRepository) Create(ctx context.Context, t *models.Territory) error {
	if t.Radius <= 0 {
		t.Radius = models.DefaultTerritoryRadius
	}

	query := `INSERT INTO territories (owner_id, center_lat, center_lon, radius, created_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, t.OwnerID, t.CenterLat, t.CenterLon, t.Radius, toNanos(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create territory: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read territory id: %w", err)
	}
	return nil
}

// List retrieves all territories, oldest first
func (r *TerritoryRepository) List(ctx context.Context) ([]models.Territory, error) {
	rows, err := r.db.QueryContext(ctx, territorySelect+` ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query territories: %w", err)
	}
	defer rows.Close()

	territories := []models.Territory{}
	for rows.Next() {
		t, err := scanTerritory(rows)
		if err != nil {
			return nil, err
		}
		territories = append(territories, *t)
	}

	return territories, rows.Err()
}

// GetByID retrieves a territory, or nil when absent
func (r *TerritoryRepository) GetByID(ctx context.Context, id int64) (*models.Territory, error) {
	t, err := scanTerritory(r.db.QueryRowContext(ctx, territorySelect+` WHERE t.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func scanTerritory(row rowScanner) (*models.Territory, error) {
	var (
		t         models.Territory
		createdAt int64
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Owner, &t.CenterLat, &t.CenterLon, &t.Radius, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan territory: %w", err)
	}

	t.CreatedAt = fromNanos(createdAt)
	return &t, nil
}
