package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"movigo/internal/domain"
	"movigo/internal/fare"
	"movigo/internal/repository/kv"
	"movigo/internal/service"
	"movigo/internal/store"
)

// MockLockStore is an in-process transport lock with call counters.
type MockLockStore struct {
	mu               sync.Mutex
	held             map[string]bool
	AcquireCallCount int
	ReleaseCallCount int
	FailAcquire      bool
}

func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) AcquireTransportLock(ctx context.Context, transportID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AcquireCallCount++
	if m.FailAcquire || m.held[transportID] {
		return false, nil
	}
	m.held[transportID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseTransportLock(ctx context.Context, transportID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReleaseCallCount++
	delete(m.held, transportID)
	return nil
}

// DecliningGateway rejects every charge without erroring.
type DecliningGateway struct {
	ChargeCallCount int
}

func (g *DecliningGateway) Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (bool, error) {
	g.ChargeCallCount++
	return false, nil
}

// FailingGateway returns a transport-level error on every charge.
type FailingGateway struct{}

func (g *FailingGateway) Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (bool, error) {
	return false, errors.New("gateway unreachable")
}

// testEnv wires the full service stack over an in-memory store.
type testEnv struct {
	Stations   *kv.StationRepository
	Transports *kv.TransportRepository
	Users      *kv.UserRepository
	Rentals    *kv.RentalRepository
	Payments   *kv.PaymentRepository
	Locks      *MockLockStore

	RentalService  *service.RentalService
	PaymentService *service.PaymentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemory()
	stations := kv.NewStationRepository(mem)
	transports := kv.NewTransportRepository(mem, stations)
	users := kv.NewUserRepository(mem)
	rentals := kv.NewRentalRepository(mem)
	payments := kv.NewPaymentRepository(mem)
	locks := NewMockLockStore()

	return &testEnv{
		Stations:   stations,
		Transports: transports,
		Users:      users,
		Rentals:    rentals,
		Payments:   payments,
		Locks:      locks,
		RentalService: service.NewRentalService(
			rentals, transports, stations, users, fare.NewCalculator(), locks, nil,
		),
		PaymentService: service.NewPaymentService(
			payments, rentals, service.NewMockGateway(), nil,
		),
	}
}

func (e *testEnv) seedStation(t *testing.T, id, name string, capacity int) *domain.Station {
	t.Helper()
	station := &domain.Station{
		ID:           id,
		Name:         name,
		Address:      "Carrera 7 #45-10",
		Lat:          4.64,
		Lng:          -74.07,
		Capacity:     capacity,
		TransportIDs: []string{},
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := e.Stations.Create(context.Background(), station); err != nil {
		t.Fatalf("seeding station %s: %v", id, err)
	}
	return station
}

func (e *testEnv) seedTransport(t *testing.T, id, code string, vtype domain.VehicleType, stationID string) *domain.Transport {
	t.Helper()
	transport := domain.NewTransport(id, code, vtype)
	if stationID != "" {
		transport.StationID = &stationID
	}
	if err := e.Transports.Create(context.Background(), transport); err != nil {
		t.Fatalf("seeding transport %s: %v", id, err)
	}
	return transport
}

func (e *testEnv) seedUser(t *testing.T, id, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:              id,
		FirstName:       "Ana",
		LastName1:       "Gomez",
		Email:           email,
		DocumentType:    domain.DocumentNationalID,
		DocumentNumber:  "doc-" + id,
		Phone:           "3001234567",
		RegisteredAt:    time.Now(),
		ActiveRentalIDs: []string{},
		Active:          true,
	}
	if err := e.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
	return user
}

// backdateRental moves a rental's start into the past so a finalize
// bills the expected number of minutes. The offset lands half a minute
// short of the target so the ceiling rounds to exactly wantMinutes.
func (e *testEnv) backdateRental(t *testing.T, rentalID string, wantMinutes int) {
	t.Helper()
	ctx := context.Background()
	rental, err := e.Rentals.GetByID(ctx, rentalID)
	if err != nil {
		t.Fatalf("loading rental %s: %v", rentalID, err)
	}
	rental.Start = time.Now().Add(-time.Duration(wantMinutes)*time.Minute + 30*time.Second)
	if err := e.Rentals.Update(ctx, rental); err != nil {
		t.Fatalf("backdating rental %s: %v", rentalID, err)
	}
}
