package tests

import (
	"context"
	"errors"
	"testing"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/service"
)

func TestRentalCreation_MovesBookkeepingTogether(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s1")
	env.seedUser(t, "u1", "ana@example.com")

	rental, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rental.Status != domain.RentalActive {
		t.Errorf("expected active rental, got %s", rental.Status)
	}
	if rental.OriginStationID != "s1" {
		t.Errorf("expected origin s1, got %s", rental.OriginStationID)
	}

	transport, _ := env.Transports.GetByID(ctx, "t1")
	if transport.Available || transport.StationID != nil {
		t.Errorf("rented transport should be undocked and unavailable: %+v", transport)
	}

	station, _ := env.Stations.GetByID(ctx, "s1")
	if station.HasTransport("t1") {
		t.Error("origin station should no longer list the rented transport")
	}

	user, _ := env.Users.GetByID(ctx, "u1")
	if !user.HasActiveRental(rental.ID) {
		t.Errorf("user should carry the rental as active: %v", user.ActiveRentalIDs)
	}

	if env.Locks.AcquireCallCount != 1 || env.Locks.ReleaseCallCount != 1 {
		t.Errorf("expected one acquire and one release, got %d/%d",
			env.Locks.AcquireCallCount, env.Locks.ReleaseCallCount)
	}
}

func TestRentalCreation_UnavailableTransport_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedUser(t, "u1", "ana@example.com")

	broken := env.seedTransport(t, "t1", "SCO-001", domain.VehicleScooter, "s1")
	broken.Status = domain.TransportMaintenance
	broken.Available = false
	if err := env.Transports.Update(ctx, broken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if !errors.Is(err, service.ErrTransportNotAvailable) {
		t.Fatalf("expected ErrTransportNotAvailable, got %v", err)
	}
}

func TestRentalCreation_TransportAtOtherStation_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedStation(t, "s2", "Terminal Norte", 3)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s2")
	env.seedUser(t, "u1", "ana@example.com")

	_, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if !errors.Is(err, service.ErrTransportNotAtStation) {
		t.Fatalf("expected ErrTransportNotAtStation, got %v", err)
	}
}

func TestRentalCreation_TransportLocked_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s1")
	env.seedUser(t, "u1", "ana@example.com")

	env.Locks.FailAcquire = true
	_, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if !errors.Is(err, service.ErrTransportLocked) {
		t.Fatalf("expected ErrTransportLocked, got %v", err)
	}

	// Nothing moved.
	station, _ := env.Stations.GetByID(ctx, "s1")
	if !station.HasTransport("t1") {
		t.Error("transport should remain docked when the lock is contended")
	}
}

func TestRentalFinalize_BicycleBilledPastFreeWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedStation(t, "s2", "Terminal Norte", 3)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s1")
	env.seedUser(t, "u1", "ana@example.com")

	rental, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.backdateRental(t, rental.ID, 45)

	closed, err := env.RentalService.FinalizeRental(ctx, service.FinalizeRentalRequest{
		RentalID:             rental.ID,
		DestinationStationID: "s2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if closed.Status != domain.RentalFinalized {
		t.Errorf("expected finalized rental, got %s", closed.Status)
	}
	if closed.DurationMinutes != 45 {
		t.Errorf("expected 45 billed minutes, got %d", closed.DurationMinutes)
	}
	// 2.00 flat for the first half hour, then 0.10 per minute.
	if closed.Fare != 3.50 {
		t.Errorf("expected fare 3.50, got %.2f", closed.Fare)
	}
	if closed.DestinationStationID == nil || *closed.DestinationStationID != "s2" {
		t.Errorf("expected destination s2, got %v", closed.DestinationStationID)
	}

	transport, _ := env.Transports.GetByID(ctx, "t1")
	if transport.StationID == nil || *transport.StationID != "s2" || !transport.Available {
		t.Errorf("transport should be docked and available at s2: %+v", transport)
	}

	destination, _ := env.Stations.GetByID(ctx, "s2")
	if !destination.HasTransport("t1") {
		t.Error("destination station should list the returned transport")
	}

	user, _ := env.Users.GetByID(ctx, "u1")
	if user.HasActiveRental(rental.ID) {
		t.Error("finalized rental should be cleared from the user's active list")
	}
}

func TestRentalFinalize_FullDestination_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedStation(t, "s2", "Terminal Norte", 1)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s1")
	env.seedTransport(t, "t2", "BIC-002", domain.VehicleBicycle, "s2")
	env.seedUser(t, "u1", "ana@example.com")

	rental, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = env.RentalService.FinalizeRental(ctx, service.FinalizeRentalRequest{
		RentalID:             rental.ID,
		DestinationStationID: "s2",
	})
	var capacityErr *repository.CapacityError
	if !errors.As(err, &capacityErr) {
		t.Fatalf("expected CapacityError returning to a full station, got %v", err)
	}

	// The rejection happened before any write: the rental is still
	// active and the transport still out.
	loaded, _ := env.Rentals.GetByID(ctx, rental.ID)
	if loaded.Status != domain.RentalActive {
		t.Errorf("rental should stay active after a rejected return, got %s", loaded.Status)
	}
	transport, _ := env.Transports.GetByID(ctx, "t1")
	if !transport.Rented() {
		t.Errorf("transport should still be out on the rental: %+v", transport)
	}
}

func TestRentalFinalize_NotActive_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedStation(t, "s2", "Terminal Norte", 3)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s1")
	env.seedUser(t, "u1", "ana@example.com")

	rental, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.RentalService.FinalizeRental(ctx, service.FinalizeRentalRequest{
		RentalID:             rental.ID,
		DestinationStationID: "s2",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = env.RentalService.FinalizeRental(ctx, service.FinalizeRentalRequest{
		RentalID:             rental.ID,
		DestinationStationID: "s2",
	})
	var stateErr *repository.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError finalizing twice, got %v", err)
	}
}

func TestRentalCancel_ReleasesTransportAndUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s1")
	env.seedUser(t, "u1", "ana@example.com")

	rental, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, err := env.RentalService.CancelRental(ctx, service.CancelRentalRequest{
		RentalID: rental.ID,
		Reason:   "flat tire",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cancelled.Status != domain.RentalCancelled {
		t.Errorf("expected cancelled rental, got %s", cancelled.Status)
	}
	if cancelled.Fare != 0 {
		t.Errorf("cancelled rental should carry no fare, got %.2f", cancelled.Fare)
	}
	if cancelled.CancelReason != "flat tire" {
		t.Errorf("expected recorded reason, got %q", cancelled.CancelReason)
	}

	// The transport is back at its origin and the user is free to rent
	// again.
	transport, _ := env.Transports.GetByID(ctx, "t1")
	if transport.StationID == nil || *transport.StationID != "s1" || !transport.Available {
		t.Errorf("transport should be back at s1: %+v", transport)
	}
	user, _ := env.Users.GetByID(ctx, "u1")
	if user.HasActiveRental(rental.ID) {
		t.Error("cancelled rental should be cleared from the user's active list")
	}
}

func TestRentalCancel_FullOrigin_LeavesTransportUndocked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 1)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s1")
	env.seedUser(t, "u1", "ana@example.com")

	rental, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Someone else takes the freed slot while the rental is out.
	env.seedTransport(t, "t2", "BIC-002", domain.VehicleBicycle, "s1")

	if _, err := env.RentalService.CancelRental(ctx, service.CancelRentalRequest{
		RentalID: rental.ID,
		Reason:   "wrong vehicle",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transport, _ := env.Transports.GetByID(ctx, "t1")
	if transport.StationID != nil || transport.Available {
		t.Errorf("transport should stay undocked when the origin is full: %+v", transport)
	}
	station, _ := env.Stations.GetByID(ctx, "s1")
	if len(station.TransportIDs) > station.Capacity {
		t.Errorf("cancel overflowed the origin station: %d/%d", len(station.TransportIDs), station.Capacity)
	}
}

func TestUserDeletion_BlockedWhileRenting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	env.seedStation(t, "s1", "Parque Central", 3)
	env.seedStation(t, "s2", "Terminal Norte", 3)
	env.seedTransport(t, "t1", "BIC-001", domain.VehicleBicycle, "s1")
	env.seedUser(t, "u1", "ana@example.com")

	rental, err := env.RentalService.CreateRental(ctx, service.CreateRentalRequest{
		UserID:          "u1",
		TransportID:     "t1",
		OriginStationID: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stateErr *repository.StateError
	if err := env.Users.Delete(ctx, "u1"); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError deleting a renting user, got %v", err)
	}

	if _, err := env.RentalService.FinalizeRental(ctx, service.FinalizeRentalRequest{
		RentalID:             rental.ID,
		DestinationStationID: "s2",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.Users.Delete(ctx, "u1"); err != nil {
		t.Fatalf("deletion should succeed once the rental is closed: %v", err)
	}
}
