package kv

import (
	"context"
	"strings"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/store"
)

// StationRepository is a key-value implementation of
// repository.StationRepository.
type StationRepository struct {
	store store.Store
}

// NewStationRepository creates a new station repository.
func NewStationRepository(s store.Store) *StationRepository {
	return &StationRepository{store: s}
}

func (r *StationRepository) List(ctx context.Context) ([]*domain.Station, error) {
	return loadCollection[domain.Station](ctx, r.store, store.KeyStations)
}

func (r *StationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	stations, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range stations {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *StationRepository) Create(ctx context.Context, station *domain.Station) error {
	if violations := station.Validate(); len(violations) > 0 {
		return repository.NewValidationError("station", violations)
	}

	stations, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, existing := range stations {
		if strings.EqualFold(existing.Name, station.Name) {
			return &repository.ConflictError{Entity: "station", Field: "name", Value: station.Name}
		}
	}

	stations = append(stations, station)
	return replaceAll(ctx, r.store, store.KeyStations, stations)
}

func (r *StationRepository) Update(ctx context.Context, station *domain.Station) error {
	if violations := station.Validate(); len(violations) > 0 {
		return repository.NewValidationError("station", violations)
	}

	stations, err := r.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for i, existing := range stations {
		if existing.ID == station.ID {
			stations[i] = station
			found = true
			continue
		}
		if strings.EqualFold(existing.Name, station.Name) {
			return &repository.ConflictError{Entity: "station", Field: "name", Value: station.Name}
		}
	}
	if !found {
		return repository.ErrNotFound
	}

	return replaceAll(ctx, r.store, store.KeyStations, stations)
}

func (r *StationRepository) Delete(ctx context.Context, id string) error {
	stations, err := r.List(ctx)
	if err != nil {
		return err
	}

	for i, s := range stations {
		if s.ID != id {
			continue
		}
		if len(s.TransportIDs) > 0 {
			return &repository.StateError{
				Entity: "station",
				ID:     id,
				Reason: "cannot delete a station with assigned transports",
			}
		}
		stations = append(stations[:i], stations[i+1:]...)
		return replaceAll(ctx, r.store, store.KeyStations, stations)
	}

	return repository.ErrNotFound
}

func (r *StationRepository) Stats(ctx context.Context) (*repository.StationStats, error) {
	stations, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &repository.StationStats{Total: len(stations)}
	var occupancySum float64
	for _, s := range stations {
		if s.Active {
			stats.Active++
		}
		if !s.HasCapacity() {
			stats.AtCapacity++
		}
		stats.DockedTransports += len(s.TransportIDs)
		occupancySum += float64(s.Occupancy())
	}
	if len(stations) > 0 {
		stats.AvgOccupancyPct = occupancySum / float64(len(stations))
	}
	return stats, nil
}

var _ repository.StationRepository = (*StationRepository)(nil)
