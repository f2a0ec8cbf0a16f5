package kv

import (
	"context"
	"errors"
	"testing"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/store"
)

func testRepos(t *testing.T) (*StationRepository, *TransportRepository) {
	t.Helper()
	mem := store.NewMemory()
	stations := NewStationRepository(mem)
	return stations, NewTransportRepository(mem, stations)
}

func TestTransportCreateDocksAtStation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stations, transports := testRepos(t)

	if err := stations.Create(ctx, testStation("s1", "Central", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transport := domain.NewTransport("t1", "BIC-1", domain.VehicleBicycle)
	stationID := "s1"
	transport.StationID = &stationID

	if err := transports.Create(ctx, transport); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !transport.Available {
		t.Error("a docked operational transport should be available")
	}

	station, _ := stations.GetByID(ctx, "s1")
	if !station.HasTransport("t1") {
		t.Errorf("station should list the new transport: %v", station.TransportIDs)
	}

	loaded, err := transports.GetByCode(ctx, "bic-1")
	if err != nil {
		t.Fatalf("code lookup should be case-insensitive: %v", err)
	}
	if loaded.ID != "t1" {
		t.Errorf("got transport %s", loaded.ID)
	}
	if loaded.Features["gears"] == nil {
		t.Error("bicycle feature bag missing gears")
	}
}

func TestTransportCreateRejectsFullStation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stations, transports := testRepos(t)

	if err := stations.Create(ctx, testStation("s1", "Central", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stationID := "s1"
	for i, code := range []string{"BIC-1", "BIC-2"} {
		tr := domain.NewTransport(string(rune('a'+i)), code, domain.VehicleBicycle)
		tr.StationID = &stationID
		if err := transports.Create(ctx, tr); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	third := domain.NewTransport("t3", "BIC-3", domain.VehicleBicycle)
	third.StationID = &stationID
	err := transports.Create(ctx, third)

	var capacityErr *repository.CapacityError
	if !errors.As(err, &capacityErr) {
		t.Fatalf("expected CapacityError creating a transport onto a full station, got %v", err)
	}

	// The rejected transport must not have been persisted.
	if _, err := transports.GetByID(ctx, "t3"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("rejected transport leaked into the store: %v", err)
	}

	// Capacity invariant holds.
	station, _ := stations.GetByID(ctx, "s1")
	if len(station.TransportIDs) > station.Capacity {
		t.Errorf("station over capacity: %d/%d", len(station.TransportIDs), station.Capacity)
	}
}

func TestTransportCodeUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, transports := testRepos(t)

	if err := transports.Create(ctx, domain.NewTransport("t1", "SCO-1", domain.VehicleScooter)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := transports.Create(ctx, domain.NewTransport("t2", "sco-1", domain.VehicleScooter))
	var conflictErr *repository.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError for duplicate code, got %v", err)
	}
}

func TestTransportValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, transports := testRepos(t)

	bad := &domain.Transport{ID: "t1", Code: "ab", Type: domain.VehicleType("plane"), OdometerKm: -1}
	err := transports.Create(ctx, bad)

	var validationErr *repository.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// code, type, status, odometer.
	if len(validationErr.Violations) != 4 {
		t.Errorf("expected 4 violations, got %d: %v", len(validationErr.Violations), validationErr.Violations)
	}
}

func TestTransportDeleteGuardAndUndock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stations, transports := testRepos(t)

	if err := stations.Create(ctx, testStation("s1", "Central", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stationID := "s1"
	tr := domain.NewTransport("t1", "BIC-1", domain.VehicleBicycle)
	tr.StationID = &stationID
	if err := transports.Create(ctx, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rented transport cannot be deleted.
	tr.MarkRented()
	if err := transports.Update(ctx, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var stateErr *repository.StateError
	if err := transports.Delete(ctx, "t1"); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError deleting a rented transport, got %v", err)
	}

	// Returned transport can be deleted, and the dock entry goes too.
	tr.MarkReturned("s1")
	if err := transports.Update(ctx, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := transports.Delete(ctx, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	station, _ := stations.GetByID(ctx, "s1")
	if station.HasTransport("t1") {
		t.Error("deleted transport still docked at station")
	}
}

func TestTransportStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stations, transports := testRepos(t)

	if err := stations.Create(ctx, testStation("s1", "Central", 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stationID := "s1"
	bike := domain.NewTransport("t1", "BIC-1", domain.VehicleBicycle)
	bike.StationID = &stationID
	scooter := domain.NewTransport("t2", "SCO-1", domain.VehicleScooter)
	scooter.StationID = &stationID
	broken := domain.NewTransport("t3", "SCO-2", domain.VehicleScooter)
	broken.Status = domain.TransportMaintenance

	for _, tr := range []*domain.Transport{bike, scooter, broken} {
		if err := transports.Create(ctx, tr); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	stats, err := transports.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 3 || stats.Available != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.ByType[domain.VehicleScooter] != 2 || stats.ByType[domain.VehicleBicycle] != 1 {
		t.Errorf("unexpected type breakdown: %v", stats.ByType)
	}
	if stats.ByStatus[domain.TransportMaintenance] != 1 {
		t.Errorf("unexpected status breakdown: %v", stats.ByStatus)
	}
}
