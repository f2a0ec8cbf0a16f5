package repository

import (
	"context"

	"movigo/internal/domain"
)

// StationStats is the derived aggregate view over all stations.
type StationStats struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	AtCapacity      int     `json:"atCapacity"`
	DockedTransports int    `json:"dockedTransports"`
	AvgOccupancyPct float64 `json:"avgOccupancyPct"`
}

// StationRepository defines the persistence operations for stations.
type StationRepository interface {
	// List retrieves all stations; empty slice if none stored.
	List(ctx context.Context) ([]*domain.Station, error)

	// GetByID retrieves a station by ID.
	GetByID(ctx context.Context, id string) (*domain.Station, error)

	// Create validates the station, enforces name uniqueness and
	// persists it.
	Create(ctx context.Context, station *domain.Station) error

	// Update re-validates and persists an existing station.
	Update(ctx context.Context, station *domain.Station) error

	// Delete removes a station. Fails with a StateError while
	// transports are still assigned.
	Delete(ctx context.Context, id string) error

	// Stats returns aggregate station statistics.
	Stats(ctx context.Context) (*StationStats, error)
}
