package repository

import (
	"context"

	"movigo/internal/domain"
)

// TransportStats is the derived aggregate view over all transports.
type TransportStats struct {
	Total     int                            `json:"total"`
	Available int                            `json:"available"`
	Rented    int                            `json:"rented"`
	ByType    map[domain.VehicleType]int     `json:"byType"`
	ByStatus  map[domain.TransportStatus]int `json:"byStatus"`
}

// TransportRepository defines the persistence operations for transports.
type TransportRepository interface {
	// List retrieves all transports; empty slice if none stored.
	List(ctx context.Context) ([]*domain.Transport, error)

	// GetByID retrieves a transport by ID.
	GetByID(ctx context.Context, id string) (*domain.Transport, error)

	// GetByCode retrieves a transport by its fleet code.
	GetByCode(ctx context.Context, code string) (*domain.Transport, error)

	// Create validates the transport, enforces code uniqueness and, if
	// a station is assigned, docks the transport there (failing with a
	// CapacityError when the station is full).
	Create(ctx context.Context, transport *domain.Transport) error

	// Update re-validates and persists an existing transport.
	Update(ctx context.Context, transport *domain.Transport) error

	// Delete removes a transport. Fails with a StateError while the
	// transport is out on a rental.
	Delete(ctx context.Context, id string) error

	// Stats returns aggregate transport statistics.
	Stats(ctx context.Context) (*TransportStats, error)
}
