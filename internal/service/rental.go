package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"movigo/internal/domain"
	"movigo/internal/fare"
	"movigo/internal/redis"
	"movigo/internal/repository"
)

const transportLockTTL = 10 * time.Second

// RentalService coordinates the rental lifecycle across the station,
// transport, user and rental repositories. It holds no state of its
// own: every call reads the collections it needs and writes them back.
//
// There is no cross-repository transaction over the key-value store, so
// the coordinator orders its steps defensively: every load and check
// happens before the first write, and the rental record is written
// last so a failed persist cannot leave an orphan rental.
type RentalService struct {
	rentals    repository.RentalRepository
	transports repository.TransportRepository
	stations   repository.StationRepository
	users      repository.UserRepository
	calculator *fare.Calculator
	locks      redis.LockStoreInterface
	logger     *zap.Logger
}

// NewRentalService creates a new RentalService. locks may be nil when
// running against a single in-process store.
func NewRentalService(
	rentals repository.RentalRepository,
	transports repository.TransportRepository,
	stations repository.StationRepository,
	users repository.UserRepository,
	calculator *fare.Calculator,
	locks redis.LockStoreInterface,
	logger *zap.Logger,
) *RentalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RentalService{
		rentals:    rentals,
		transports: transports,
		stations:   stations,
		users:      users,
		calculator: calculator,
		locks:      locks,
		logger:     logger,
	}
}

// CreateRentalRequest contains the parameters for opening a rental.
type CreateRentalRequest struct {
	UserID          string
	TransportID     string
	OriginStationID string
}

// CreateRental opens a rental: the transport leaves its station, the
// user gains an active rental, and a new active rental record is
// persisted.
func (s *RentalService) CreateRental(ctx context.Context, req CreateRentalRequest) (*domain.Rental, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.TransportID == "" {
		return nil, ErrInvalidTransportID
	}
	if req.OriginStationID == "" {
		return nil, ErrInvalidStationID
	}

	// Guard the read-check-write window against a second instance
	// renting the same transport.
	if s.locks != nil {
		acquired, err := s.locks.AcquireTransportLock(ctx, req.TransportID, transportLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ErrTransportLocked
		}
		defer func() {
			_ = s.locks.ReleaseTransportLock(ctx, req.TransportID)
		}()
	}

	// All loads and checks before any write.
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	transport, err := s.transports.GetByID(ctx, req.TransportID)
	if err != nil {
		return nil, err
	}
	if !transport.Available {
		return nil, ErrTransportNotAvailable
	}

	station, err := s.stations.GetByID(ctx, req.OriginStationID)
	if err != nil {
		return nil, err
	}
	if transport.StationID == nil || *transport.StationID != station.ID {
		return nil, ErrTransportNotAtStation
	}

	rental := domain.NewRental(uuid.New().String(), user.ID, transport.ID, station.ID)

	// Mutations, rental record last.
	station.RemoveTransport(transport.ID)
	if err := s.stations.Update(ctx, station); err != nil {
		return nil, err
	}

	transport.MarkRented()
	if err := s.transports.Update(ctx, transport); err != nil {
		return nil, err
	}

	user.AddActiveRental(rental.ID)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.rentals.Create(ctx, rental); err != nil {
		return nil, err
	}

	s.logger.Info("rental opened",
		zap.String("rental_id", rental.ID),
		zap.String("user_id", user.ID),
		zap.String("transport_code", transport.Code),
		zap.String("origin_station", station.ID),
	)

	return rental, nil
}

// FinalizeRentalRequest contains the parameters for closing a rental.
type FinalizeRentalRequest struct {
	RentalID             string
	DestinationStationID string
}

// FinalizeRental closes an active rental at the destination station:
// the elapsed minutes are billed through the fare calculator, the
// transport docks at the destination (which must have capacity), and
// the user's active list is cleared of the rental.
func (s *RentalService) FinalizeRental(ctx context.Context, req FinalizeRentalRequest) (*domain.Rental, error) {
	if req.RentalID == "" {
		return nil, ErrInvalidRentalID
	}
	if req.DestinationStationID == "" {
		return nil, ErrInvalidStationID
	}

	rental, err := s.rentals.GetByID(ctx, req.RentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalActive {
		return nil, &repository.StateError{
			Entity: "rental",
			ID:     rental.ID,
			Reason: "only an active rental can be finalized",
		}
	}

	transport, err := s.transports.GetByID(ctx, rental.TransportID)
	if err != nil {
		return nil, err
	}

	station, err := s.stations.GetByID(ctx, req.DestinationStationID)
	if err != nil {
		return nil, err
	}
	// A full destination rejects the return instead of silently
	// overflowing the dock.
	if !station.HasCapacity() {
		return nil, &repository.CapacityError{StationID: station.ID, Capacity: station.Capacity}
	}

	user, err := s.users.GetByID(ctx, rental.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	minutes := rental.ElapsedMinutes(now)
	amount, err := s.calculator.Compute(string(transport.Type), minutes)
	if err != nil {
		return nil, err
	}

	station.AddTransport(transport.ID)
	if err := s.stations.Update(ctx, station); err != nil {
		return nil, err
	}

	transport.MarkReturned(station.ID)
	if err := s.transports.Update(ctx, transport); err != nil {
		return nil, err
	}

	user.RemoveActiveRental(rental.ID)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	rental.Finalize(station.ID, now, minutes, amount)
	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}

	s.logger.Info("rental finalized",
		zap.String("rental_id", rental.ID),
		zap.Int("duration_minutes", minutes),
		zap.Float64("fare", amount),
		zap.String("destination_station", station.ID),
	)

	return rental, nil
}

// CancelRentalRequest contains the parameters for cancelling a rental.
type CancelRentalRequest struct {
	RentalID string
	Reason   string
}

// CancelRental cancels an active rental without a fare. The transport
// is released back to its origin station (or left undocked when the
// station has meanwhile filled up) and the user's active list is
// cleared, so a cancelled rental never leaves phantom bookkeeping.
func (s *RentalService) CancelRental(ctx context.Context, req CancelRentalRequest) (*domain.Rental, error) {
	if req.RentalID == "" {
		return nil, ErrInvalidRentalID
	}

	rental, err := s.rentals.GetByID(ctx, req.RentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalActive {
		return nil, &repository.StateError{
			Entity: "rental",
			ID:     rental.ID,
			Reason: "only an active rental can be cancelled",
		}
	}

	transport, err := s.transports.GetByID(ctx, rental.TransportID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, rental.UserID)
	if err != nil {
		return nil, err
	}

	station, err := s.stations.GetByID(ctx, rental.OriginStationID)
	if err == nil && station.HasCapacity() {
		station.AddTransport(transport.ID)
		if err := s.stations.Update(ctx, station); err != nil {
			return nil, err
		}
		transport.MarkReturned(station.ID)
	} else {
		// Origin gone or full: the transport stays undocked and
		// unavailable until an operator reassigns it.
		transport.MarkRented()
		s.logger.Warn("cancelled rental could not return transport to origin station",
			zap.String("rental_id", rental.ID),
			zap.String("transport_id", transport.ID),
			zap.String("origin_station", rental.OriginStationID),
		)
	}
	if err := s.transports.Update(ctx, transport); err != nil {
		return nil, err
	}

	user.RemoveActiveRental(rental.ID)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	rental.Cancel(req.Reason, time.Now())
	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}

	s.logger.Info("rental cancelled",
		zap.String("rental_id", rental.ID),
		zap.String("reason", req.Reason),
	)

	return rental, nil
}

// GetRental retrieves a rental by ID.
func (s *RentalService) GetRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if rentalID == "" {
		return nil, ErrInvalidRentalID
	}
	return s.rentals.GetByID(ctx, rentalID)
}

// ListRentals retrieves all rentals.
func (s *RentalService) ListRentals(ctx context.Context) ([]*domain.Rental, error) {
	return s.rentals.List(ctx)
}
