package fare

import (
	"movigo/internal/domain"
)

// RateUnit is the billing unit for a price quote.
type RateUnit string

const (
	UnitHourly RateUnit = "hourly"
	UnitDaily  RateUnit = "daily"
)

// Rate is the quote-table entry for a vehicle type.
type Rate struct {
	HourlyRate         float64
	DailyRate          float64
	Currency           string
	Available          bool
	OvertimeMultiplier float64
	WeeklyDiscount     float64 // fraction off for daily rentals of 7+ days
	MonthlyDiscount    float64 // fraction off for daily rentals of 30+ days
}

// Discount thresholds for daily rentals, in days.
const (
	weeklyThresholdDays  = 7
	monthlyThresholdDays = 30
)

// PricingConfig is the quote rate table keyed by vehicle type.
type PricingConfig map[domain.VehicleType]Rate

// DefaultPricingConfig returns the stock rate table. The electric car
// ships unavailable: the class is announced but not yet released, and
// every quote for it must fail until it is switched on.
func DefaultPricingConfig() PricingConfig {
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
		domain.VehicleScooter: {
			HourlyRate:         5.00,
			DailyRate:          22.00,
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
			WeeklyDiscount:     0.15,
			MonthlyDiscount:    0.30,
		},
	}
}

// Quote is a pre-rental price estimate. It is not a bill: settle-time
// fares come from the strategy calculator.
type Quote struct {
	VehicleType domain.VehicleType `json:"vehicleType"`
	Unit        RateUnit           `json:"unit"`
	Duration    int                `json:"duration"`
	BasePrice   float64            `json:"basePrice"`
	Discount    float64            `json:"discount"`
	DiscountTag string             `json:"discountTag,omitempty"`
	Total       float64            `json:"total"`
	Currency    string             `json:"currency"`
}

// PricingService computes pre-rental quotes and overtime estimates from
// the rate table.
type PricingService struct {
	rates PricingConfig
}

// NewPricingService creates a pricing service over the given rate
// table; pass nil for the default table.
func NewPricingService(rates PricingConfig) *PricingService {
	if rates == nil {
		rates = DefaultPricingConfig()
	}
	return &PricingService{rates: rates}
}

// rateFor resolves the rate entry, failing on unknown or unavailable
// vehicle types.
func (p *PricingService) rateFor(vehicleType string) (domain.VehicleType, Rate, error) {
	t, err := domain.ParseVehicleType(vehicleType)
	if err != nil {
		return "", Rate{}, &DomainError{VehicleType: vehicleType, Reason: "unknown vehicle type"}
	}
	rate, ok := p.rates[t]
	if !ok {
		return "", Rate{}, &DomainError{VehicleType: vehicleType, Reason: "no rate configured"}
	}
	if !rate.Available {
		return "", Rate{}, &DomainError{VehicleType: vehicleType, Reason: "currently unavailable"}
	}
	return t, rate, nil
}

// Quote prices a rental of the given duration in the given unit.
// Daily rentals of 30+ days take the monthly discount, 7+ days the
// weekly discount; only the largest applicable threshold applies.
func (p *PricingService) Quote(vehicleType string, duration int, unit RateUnit) (*Quote, error) {
	t, rate, err := p.rateFor(vehicleType)
	if err != nil {
		return nil, err
	}
	if duration < 1 {
		return nil, &DomainError{VehicleType: vehicleType, Reason: "duration must be at least 1"}
	}

	var base float64
	switch unit {
	case UnitHourly:
		base = rate.HourlyRate * float64(duration)
	case UnitDaily:
		base = rate.DailyRate * float64(duration)
	default:
		return nil, &DomainError{VehicleType: vehicleType, Reason: "unit must be hourly or daily"}
	}

	quote := &Quote{
		VehicleType: t,
		Unit:        unit,
		Duration:    duration,
		BasePrice:   round2(base),
		Currency:    rate.Currency,
	}

	if unit == UnitDaily {
		switch {
		case duration >= monthlyThresholdDays:
			quote.Discount = round2(base * rate.MonthlyDiscount)
			quote.DiscountTag = "monthly"
		case duration >= weeklyThresholdDays:
			quote.Discount = round2(base * rate.WeeklyDiscount)
			quote.DiscountTag = "weekly"
		}
	}

	quote.Total = round2(quote.BasePrice - quote.Discount)
	return quote, nil
}

// Overtime estimates the surcharge for the given overtime hours:
// hours × hourly rate × overtime multiplier.
func (p *PricingService) Overtime(vehicleType string, overtimeHours int) (float64, error) {
	_, rate, err := p.rateFor(vehicleType)
	if err != nil {
		return 0, err
	}
	if overtimeHours < 0 {
		return 0, &DomainError{VehicleType: vehicleType, Reason: "overtime hours cannot be negative"}
	}
	return round2(float64(overtimeHours) * rate.HourlyRate * rate.OvertimeMultiplier), nil
}

// Currency returns the configured currency for a vehicle type.
func (p *PricingService) Currency(vehicleType string) (string, error) {
	_, rate, err := p.rateFor(vehicleType)
	if err != nil {
		return "", err
	}
	return rate.Currency, nil
}
