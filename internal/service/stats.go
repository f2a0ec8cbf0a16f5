package service

import (
	"context"

	"movigo/internal/repository"
)

// StatsSummary joins the per-entity aggregates plus the per-station
// occupancy breakdown.
type StatsSummary struct {
	Stations   *repository.StationStats   `json:"stations"`
	Transports *repository.TransportStats `json:"transports"`
	Users      *repository.UserStats      `json:"users"`
	Rentals    *repository.RentalStats    `json:"rentals"`
	Payments   *repository.PaymentStats   `json:"payments"`
	Occupancy  []StationOccupancy         `json:"occupancy"`
}

// StationOccupancy is one station's occupancy snapshot.
type StationOccupancy struct {
	StationID    string `json:"stationId"`
	Name         string `json:"name"`
	Docked       int    `json:"docked"`
	Capacity     int    `json:"capacity"`
	OccupancyPct int    `json:"occupancyPct"`
}

// StatsService recomputes aggregate statistics from full collection
// scans on every call. No caching: at this record volume a scan is
// cheaper than keeping derived state consistent.
type StatsService struct {
	stations   repository.StationRepository
	transports repository.TransportRepository
	users      repository.UserRepository
	rentals    repository.RentalRepository
	payments   repository.PaymentRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	stations repository.StationRepository,
	transports repository.TransportRepository,
	users repository.UserRepository,
	rentals repository.RentalRepository,
	payments repository.PaymentRepository,
) *StatsService {
	return &StatsService{
		stations:   stations,
		transports: transports,
		users:      users,
		rentals:    rentals,
		payments:   payments,
	}
}

// Summary computes the full statistics snapshot.
func (s *StatsService) Summary(ctx context.Context) (*StatsSummary, error) {
	stationStats, err := s.stations.Stats(ctx)
	if err != nil {
		return nil, err
	}
	transportStats, err := s.transports.Stats(ctx)
	if err != nil {
		return nil, err
	}
	userStats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, err
	}
	rentalStats, err := s.rentals.Stats(ctx)
	if err != nil {
		return nil, err
	}
	paymentStats, err := s.payments.Stats(ctx)
	if err != nil {
		return nil, err
	}

	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, err
	}
	occupancy := make([]StationOccupancy, 0, len(stations))
	for _, station := range stations {
		occupancy = append(occupancy, StationOccupancy{
			StationID:    station.ID,
			Name:         station.Name,
			Docked:       len(station.TransportIDs),
			Capacity:     station.Capacity,
			OccupancyPct: station.Occupancy(),
		})
	}

	return &StatsSummary{
		Stations:   stationStats,
		Transports: transportStats,
		Users:      userStats,
		Rentals:    rentalStats,
		Payments:   paymentStats,
		Occupancy:  occupancy,
	}, nil
}
