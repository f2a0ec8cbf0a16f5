package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/service"
)

// finalizeRide opens and closes a 45 minute bicycle rental, returning
// the finalized rental. Fare is 3.50.
func finalizeRide(t *testing.T, env *testEnv) *domain.Rental {
	t.Helper()
	ctx := context.Background()

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
		t.Fatalf("opening rental: %v", err)
	}
	env.backdateRental(t, rental.ID, 45)

	closed, err := env.RentalService.FinalizeRental(ctx, service.FinalizeRentalRequest{
		RentalID:             rental.ID,
		DestinationStationID: "s2",
	})
	if err != nil {
		t.Fatalf("finalizing rental: %v", err)
	}
	return closed
}

func TestPayment_DefaultsToRentalFare(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	rental := finalizeRide(t, env)

	payment, err := env.PaymentService.RecordPayment(ctx, service.RecordPaymentRequest{
		RentalID: rental.ID,
		Method:   "card",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Amount != rental.Fare {
		t.Errorf("expected amount %.2f from the rental fare, got %.2f", rental.Fare, payment.Amount)
	}
	if payment.Status != domain.PaymentPending {
		t.Errorf("expected pending payment, got %s", payment.Status)
	}
	if !strings.HasPrefix(payment.Reference, "PAY-") {
		t.Errorf("expected a PAY- reference, got %q", payment.Reference)
	}
}

func TestPayment_SecondPaymentForRental_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	rental := finalizeRide(t, env)

	if _, err := env.PaymentService.RecordPayment(ctx, service.RecordPaymentRequest{
		RentalID: rental.ID,
		Method:   "card",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := env.PaymentService.RecordPayment(ctx, service.RecordPaymentRequest{
		RentalID: rental.ID,
		Method:   "cash",
	})
	var conflictErr *repository.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError for a second payment, got %v", err)
	}
}

func TestPayment_ActiveRental_Rejected(t *testing.T) {
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

	_, err = env.PaymentService.RecordPayment(ctx, service.RecordPaymentRequest{
		RentalID: rental.ID,
		Method:   "card",
	})
	var stateErr *repository.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError paying an active rental, got %v", err)
	}
}

func TestPayment_InvalidMethod_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	rental := finalizeRide(t, env)

	_, err := env.PaymentService.RecordPayment(ctx, service.RecordPaymentRequest{
		RentalID: rental.ID,
		Method:   "check",
	})
	if !errors.Is(err, service.ErrInvalidPaymentMethod) {
		t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
	}
}

func TestPayment_ProcessCompletesAndMarksRentalPaid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	rental := finalizeRide(t, env)

	payment, err := env.PaymentService.RecordPayment(ctx, service.RecordPaymentRequest{
		RentalID: rental.ID,
		Method:   "wallet",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	processed, err := env.PaymentService.ProcessPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if processed.Status != domain.PaymentCompleted {
		t.Errorf("expected completed payment, got %s", processed.Status)
	}

	settled, _ := env.Rentals.GetByID(ctx, rental.ID)
	if !settled.Paid {
		t.Error("completed payment should flip the rental's paid flag")
	}

	// Only a pending payment can be processed.
	var stateErr *repository.StateError
	if _, err := env.PaymentService.ProcessPayment(ctx, payment.ID); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError processing twice, got %v", err)
	}
}

func TestPayment_DeclinedCharge_FailsWithoutError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	rental := finalizeRide(t, env)

	declining := &DecliningGateway{}
	paymentService := service.NewPaymentService(env.Payments, env.Rentals, declining, nil)

	payment, err := paymentService.RecordPayment(ctx, service.RecordPaymentRequest{
		RentalID: rental.ID,
		Method:   "card",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	processed, err := paymentService.ProcessPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("a decline is an outcome, not an error: %v", err)
	}
	if processed.Status != domain.PaymentFailed {
		t.Errorf("expected failed payment, got %s", processed.Status)
	}
	if declining.ChargeCallCount != 1 {
		t.Errorf("expected one charge attempt, got %d", declining.ChargeCallCount)
	}

	unpaid, _ := env.Rentals.GetByID(ctx, rental.ID)
	if unpaid.Paid {
		t.Error("declined payment must not mark the rental paid")
	}
}

func TestPayment_GatewayError_FailsPayment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	rental := finalizeRide(t, env)

	paymentService := service.NewPaymentService(env.Payments, env.Rentals, &FailingGateway{}, nil)

	payment, err := paymentService.RecordPayment(ctx, service.RecordPaymentRequest{
		RentalID: rental.ID,
		Method:   "card",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	processed, err := paymentService.ProcessPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if processed.Status != domain.PaymentFailed {
		t.Errorf("expected failed payment, got %s", processed.Status)
	}
}
