package kv

import (
	"context"
	"strings"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/store"
)

// TransportRepository is a key-value implementation of
// repository.TransportRepository. It holds the station repository so a
// create with a station assignment can dock the transport and enforce
// the station's capacity in the same call.
type TransportRepository struct {
	store    store.Store
	stations repository.StationRepository
}

// NewTransportRepository creates a new transport repository.
func NewTransportRepository(s store.Store, stations repository.StationRepository) *TransportRepository {
	return &TransportRepository{store: s, stations: stations}
}

func (r *TransportRepository) List(ctx context.Context) ([]*domain.Transport, error) {
	return loadCollection[domain.Transport](ctx, r.store, store.KeyTransports)
}

func (r *TransportRepository) GetByID(ctx context.Context, id string) (*domain.Transport, error) {
	transports, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range transports {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *TransportRepository) GetByCode(ctx context.Context, code string) (*domain.Transport, error) {
	transports, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range transports {
		if strings.EqualFold(t.Code, code) {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *TransportRepository) Create(ctx context.Context, transport *domain.Transport) error {
	// Docking happens after validation, so validate the post-docking
	// shape: a transport created onto a station starts available.
	if transport.StationID != nil {
		transport.Available = transport.Status == domain.TransportOperational
	}

	if violations := transport.Validate(); len(violations) > 0 {
		return repository.NewValidationError("transport", violations)
	}

	transports, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, existing := range transports {
		if strings.EqualFold(existing.Code, transport.Code) {
			return &repository.ConflictError{Entity: "transport", Field: "code", Value: transport.Code}
		}
	}

	// Dock at the assigned station before persisting the transport so a
	// full station rejects the create without leaving a stray record.
	if transport.StationID != nil {
		station, err := r.stations.GetByID(ctx, *transport.StationID)
		if err != nil {
			return err
		}
		if !station.HasCapacity() {
			return &repository.CapacityError{StationID: station.ID, Capacity: station.Capacity}
		}
		station.AddTransport(transport.ID)
		if err := r.stations.Update(ctx, station); err != nil {
			return err
		}
	}

	transports = append(transports, transport)
	return replaceAll(ctx, r.store, store.KeyTransports, transports)
}

func (r *TransportRepository) Update(ctx context.Context, transport *domain.Transport) error {
	if violations := transport.Validate(); len(violations) > 0 {
		return repository.NewValidationError("transport", violations)
	}

	transports, err := r.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for i, existing := range transports {
		if existing.ID == transport.ID {
			transports[i] = transport
			found = true
			continue
		}
		if strings.EqualFold(existing.Code, transport.Code) {
			return &repository.ConflictError{Entity: "transport", Field: "code", Value: transport.Code}
		}
	}
	if !found {
		return repository.ErrNotFound
	}

	return replaceAll(ctx, r.store, store.KeyTransports, transports)
}

func (r *TransportRepository) Delete(ctx context.Context, id string) error {
	transports, err := r.List(ctx)
	if err != nil {
		return err
	}

	for i, t := range transports {
		if t.ID != id {
			continue
		}
		if t.Rented() {
			return &repository.StateError{
				Entity: "transport",
				ID:     id,
				Reason: "cannot delete a transport that is out on a rental",
			}
		}
		if t.StationID != nil {
			station, err := r.stations.GetByID(ctx, *t.StationID)
			if err == nil {
				station.RemoveTransport(t.ID)
				if err := r.stations.Update(ctx, station); err != nil {
					return err
				}
			}
		}
		transports = append(transports[:i], transports[i+1:]...)
		return replaceAll(ctx, r.store, store.KeyTransports, transports)
	}

	return repository.ErrNotFound
}

func (r *TransportRepository) Stats(ctx context.Context) (*repository.TransportStats, error) {
	transports, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &repository.TransportStats{
		Total:    len(transports),
		ByType:   make(map[domain.VehicleType]int),
		ByStatus: make(map[domain.TransportStatus]int),
	}
	for _, t := range transports {
		if t.Available {
			stats.Available++
		}
		if t.Rented() {
			stats.Rented++
		}
		stats.ByType[t.Type]++
		stats.ByStatus[t.Status]++
	}
	return stats, nil
}

var _ repository.TransportRepository = (*TransportRepository)(nil)
