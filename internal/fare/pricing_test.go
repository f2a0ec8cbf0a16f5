package fare

import (
	"errors"
	"testing"

	"movigo/internal/domain"
)

func testRates() PricingConfig {
	return PricingConfig{
		domain.VehicleBicycle: {
			HourlyRate:         3.50,
			DailyRate:          15.00,
			Currency:           "USD",
			Available:          true,
			OvertimeMultiplier: 1.5,
			WeeklyDiscount:     0.10,
			MonthlyDiscount:    0.25,
		},
		domain.VehicleElectricCar: {
			HourlyRate:         14.00,
			DailyRate:          60.00,
			Currency:           "USD",
			Available:          false,
			OvertimeMultiplier: 2.0,
		},
	}
}

func TestQuoteHourly(t *testing.T) {
	t.Parallel()

	p := NewPricingService(testRates())

	quote, err := p.Quote("bicycle", 4, UnitHourly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.BasePrice != 14.00 {
		t.Errorf("base price = %.2f, want 14.00", quote.BasePrice)
	}
	if quote.Discount != 0 {
		t.Errorf("hourly quote should carry no discount, got %.2f", quote.Discount)
	}
	if quote.Total != 14.00 {
		t.Errorf("total = %.2f, want 14.00", quote.Total)
	}
}

func TestQuoteDailyDiscounts(t *testing.T) {
	t.Parallel()

	p := NewPricingService(testRates())

	tests := []struct {
		name     string
		days     int
		wantTag  string
		wantDisc float64
	}{
		{"short rental no discount", 6, "", 0},
		{"weekly threshold", 7, "weekly", 10.50},   // 105.00 * 0.10
		{"under monthly", 29, "weekly", 43.50},     // 435.00 * 0.10
		{"monthly threshold", 30, "monthly", 112.50}, // 450.00 * 0.25
		{"beyond monthly", 40, "monthly", 150.00},  // 600.00 * 0.25
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := p.Quote("bicycle", tt.days, UnitDaily)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.DiscountTag != tt.wantTag {
				t.Errorf("discount tag = %q, want %q", quote.DiscountTag, tt.wantTag)
			}
			if quote.Discount != tt.wantDisc {
				t.Errorf("discount = %.2f, want %.2f", quote.Discount, tt.wantDisc)
			}
			if quote.Total != quote.BasePrice-quote.Discount {
				t.Errorf("total %.2f != base %.2f - discount %.2f", quote.Total, quote.BasePrice, quote.Discount)
			}
		})
	}
}

func TestQuoteUnavailableTypeFails(t *testing.T) {
	t.Parallel()

	p := NewPricingService(testRates())

	_, err := p.Quote("electric-car", 2, UnitHourly)
	if err == nil {
		t.Fatal("expected error for unavailable vehicle type")
	}

	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T", err)
	}

	// Every pricing call for the type fails, not just quotes.
	if _, err := p.Overtime("electric-car", 2); err == nil {
		t.Fatal("expected overtime estimate to fail for unavailable type")
	}
	if _, err := p.Currency("electric-car"); err == nil {
		t.Fatal("expected currency lookup to fail for unavailable type")
	}
}

func TestQuoteRejectsBadInput(t *testing.T) {
	t.Parallel()

	p := NewPricingService(testRates())

	if _, err := p.Quote("bicycle", 0, UnitHourly); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := p.Quote("bicycle", 3, RateUnit("weekly")); err == nil {
		t.Error("expected error for unknown unit")
	}
	if _, err := p.Quote("jetpack", 3, UnitHourly); err == nil {
		t.Error("expected error for unknown vehicle type")
	}
}

func TestOvertime(t *testing.T) {
	t.Parallel()

	p := NewPricingService(testRates())

	got, err := p.Overtime("bicycle", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 hours * 3.50 * 1.5
	if got != 15.75 {
		t.Errorf("overtime = %.2f, want 15.75", got)
	}

	if _, err := p.Overtime("bicycle", -1); err == nil {
		t.Error("expected error for negative overtime hours")
	}
}

func TestDefaultTableSuppressesElectricCar(t *testing.T) {
	t.Parallel()

	p := NewPricingService(nil)

	if _, err := p.Quote("bicycle", 2, UnitHourly); err != nil {
		t.Fatalf("bicycle should be quotable: %v", err)
	}
	if _, err := p.Quote("electric-car", 2, UnitHourly); err == nil {
		t.Fatal("electric car quotes should fail until the class is released")
	}
}
