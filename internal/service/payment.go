package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"movigo/internal/domain"
	"movigo/internal/repository"
)

// Gateway is the interface to an external payment provider.
type Gateway interface {
	Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (bool, error)
}

// MockGateway is a Gateway that always approves. Real processing is
// out of scope for this service.
type MockGateway struct{}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Charge approves every charge.
func (g *MockGateway) Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (bool, error) {
	return true, nil
}

// PaymentService settles finalized rentals. At most one payment exists
// per rental, and only a pending payment can be processed.
type PaymentService struct {
	payments repository.PaymentRepository
	rentals  repository.RentalRepository
	gateway  Gateway
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	payments repository.PaymentRepository,
	rentals repository.RentalRepository,
	gateway Gateway,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		payments: payments,
		rentals:  rentals,
		gateway:  gateway,
		logger:   logger,
	}
}

// RecordPaymentRequest contains the parameters for recording a payment.
type RecordPaymentRequest struct {
	RentalID string
	Amount   float64 // 0 means "use the rental's computed fare"
	Method   string
}

// RecordPayment creates a pending payment against a finalized rental.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*domain.Payment, error) {
	if req.RentalID == "" {
		return nil, ErrInvalidRentalID
	}

	method, err := parsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	rental, err := s.rentals.GetByID(ctx, req.RentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalFinalized {
		return nil, &repository.StateError{
			Entity: "rental",
			ID:     rental.ID,
			Reason: "only a finalized rental can be paid",
		}
	}

	existing, err := s.payments.GetByRentalID(ctx, rental.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &repository.ConflictError{Entity: "payment", Field: "rental", Value: rental.ID}
	}

	amount := req.Amount
	if amount == 0 {
		amount = rental.Fare
	}
	if amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}

	payment := &domain.Payment{
		ID:        uuid.New().String(),
		RentalID:  rental.ID,
		Amount:    amount,
		Method:    method,
		PaidAt:    time.Now(),
		Status:    domain.PaymentPending,
		Reference: newReference(),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("rental_id", rental.ID),
		zap.Float64("amount", amount),
		zap.String("reference", payment.Reference),
	)

	return payment, nil
}

// ProcessPayment settles a pending payment through the gateway. On
// approval the payment completes and the rental is marked paid; on
// decline the payment fails and can not be retried.
func (s *PaymentService) ProcessPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentPending {
		return nil, &repository.StateError{
			Entity: "payment",
			ID:     payment.ID,
			Reason: "only a pending payment can be processed",
		}
	}

	approved, err := s.gateway.Charge(ctx, payment.Amount, payment.Method)
	if err != nil || !approved {
		if updateErr := s.payments.UpdateStatus(ctx, payment.ID, domain.PaymentFailed); updateErr != nil {
			return nil, updateErr
		}
		payment.Status = domain.PaymentFailed
		s.logger.Warn("payment declined",
			zap.String("payment_id", payment.ID),
			zap.Error(err),
		)
		return payment, nil
	}

	if err := s.payments.UpdateStatus(ctx, payment.ID, domain.PaymentCompleted); err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentCompleted

	rental, err := s.rentals.GetByID(ctx, payment.RentalID)
	if err != nil {
		return nil, err
	}
	rental.Paid = true
	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}

	s.logger.Info("payment completed",
		zap.String("payment_id", payment.ID),
		zap.String("rental_id", rental.ID),
	)

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	return s.payments.GetByID(ctx, paymentID)
}

// ListPayments retrieves all payments.
func (s *PaymentService) ListPayments(ctx context.Context) ([]*domain.Payment, error) {
	return s.payments.List(ctx)
}

func parsePaymentMethod(s string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case domain.PaymentCash:
		return domain.PaymentCash, nil
	case domain.PaymentCard:
		return domain.PaymentCard, nil
	case domain.PaymentWallet:
		return domain.PaymentWallet, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// newReference generates a short human-quotable payment reference.
func newReference() string {
	return "PAY-" + strings.ToUpper(uuid.New().String()[:8])
}
