package service

import (
	"errors"
	"testing"

	"movigo/internal/fare"
)

func TestCartAddAndTotal(t *testing.T) {
	t.Parallel()

	cart := NewCartService(fare.NewPricingService(nil))

	bike, err := cart.AddItem("bicycle", 2, fare.UnitHourly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bike.Quote.Total != 7.00 {
		t.Errorf("expected 7.00 for two bicycle hours, got %.2f", bike.Quote.Total)
	}

	scooter, err := cart.AddItem("scooter", 3, fare.UnitDaily)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scooter.Quote.Total != 66.00 {
		t.Errorf("expected 66.00 for three scooter days, got %.2f", scooter.Quote.Total)
	}

	if got := cart.Total(); got != 73.00 {
		t.Errorf("expected cart total 73.00, got %.2f", got)
	}
	if len(cart.Items()) != 2 {
		t.Errorf("expected 2 items, got %d", len(cart.Items()))
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	t.Parallel()

	cart := NewCartService(fare.NewPricingService(nil))

	item, err := cart.AddItem("bicycle", 1, fare.UnitHourly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cart.RemoveItem(item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cart.RemoveItem(item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}

	if _, err := cart.AddItem("scooter", 1, fare.UnitHourly); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart.Clear()
	if len(cart.Items()) != 0 || cart.Total() != 0 {
		t.Error("cleared cart should be empty")
	}
}

func TestCartRejectsUnavailableType(t *testing.T) {
	t.Parallel()

	cart := NewCartService(fare.NewPricingService(nil))

	// Electric cars ship unavailable in the default rate table.
	var domainErr *fare.DomainError
	if _, err := cart.AddItem("electric-car", 1, fare.UnitHourly); !errors.As(err, &domainErr) {
		t.Fatalf("expected a fare domain error, got %v", err)
	}
	if _, err := cart.AddItem("hoverboard", 1, fare.UnitHourly); !errors.As(err, &domainErr) {
		t.Fatalf("expected a fare domain error for an unknown type, got %v", err)
	}
}
