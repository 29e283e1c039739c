package service

import (
	"context"
	"fmt"

	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/repository"
	"github.com/runquest/runquest-backend/internal/spatial"
)

// TerritoryService serves the read-only territory listing
type TerritoryService struct {
	territoryRepo *repository.TerritoryRepository
}

// NewTerritoryService creates a new territory service
func NewTerritoryService(territoryRepo *repository.TerritoryRepository) *TerritoryService {
	return &TerritoryService{territoryRepo: territoryRepo}
}

// ListTerritories returns all territories, or only those containing the filter point
func (s *TerritoryService) ListTerritories(ctx context.Context, filter models.TerritoryFilter) ([]models.Territory, error) {
	if (filter.Lat == nil) != (filter.Lon == nil) {
		return nil, fmt.Errorf("%w: lat and lon must be given together", ErrValidation)
	}

	territories, err := s.territoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list territories: %w", err)
	}
	if filter.Lat == nil {
		return territories, nil
	}

	point := spatial.Point{Lat: *filter.Lat, Lon: *filter.Lon}
	matched := []models.Territory{}
	for _, t := range territories {
		if spatial.CircleContains(spatial.Point{Lat: t.CenterLat, Lon: t.CenterLon}, t.Radius, point) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// GetTerritory returns a single territory
func (s *TerritoryService) GetTerritory(ctx context.Context, id int64) (*models.Territory, error) {
	t, err := s.territoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get territory: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("territory %d: %w", id, ErrNotFound)
	}
	return t, nil
}
