// Package fare prices rentals. The strategy calculator is the canonical
// engine for settle-time billing against actual elapsed minutes; the
// quote pricing service in pricing.go is an up-front estimate only.
package fare

import (
	"fmt"
	"math"

	"movigo/internal/domain"
)

// Strategy computes the fare for a rental of the given duration.
type Strategy interface {
	ComputeFare(durationMinutes int) float64
}

// Bicycle pricing: a flat base covers the first 30 minutes, every
// minute beyond that bills at the per-minute rate.
type bicycleStrategy struct{}

const (
	bicycleBaseFare    = 2.00
	bicycleFreeMinutes = 30
	bicycleMinuteRate  = 0.10
)

func (bicycleStrategy) ComputeFare(durationMinutes int) float64 {
	if durationMinutes <= bicycleFreeMinutes {
		return bicycleBaseFare
	}
	extra := float64(durationMinutes-bicycleFreeMinutes) * bicycleMinuteRate
	return round2(bicycleBaseFare + extra)
}

// Scooter pricing: a fixed activation fee plus every minute at the
// per-minute rate. No free tier.
type scooterStrategy struct{}

const (
	scooterActivationFee = 1.00
	scooterMinuteRate    = 0.15
)

func (scooterStrategy) ComputeFare(durationMinutes int) float64 {
	return round2(scooterActivationFee + float64(durationMinutes)*scooterMinuteRate)
}

// Electric car pricing: a base fee plus started hours at the hourly
// rate, with a one-hour minimum.
type electricCarStrategy struct{}

const (
	carBaseFare   = 3.00
	carHourlyRate = 8.00
)

func (electricCarStrategy) ComputeFare(durationMinutes int) float64 {
	hours := int(math.Ceil(float64(durationMinutes) / 60))
	if hours < 1 {
		hours = 1
	}
	return round2(carBaseFare + float64(hours)*carHourlyRate)
}

// Calculator resolves a vehicle type to its fare strategy. The type set
// is closed: supporting a new vehicle type means adding a strategy here.
type Calculator struct {
	strategies map[domain.VehicleType]Strategy
}

// NewCalculator creates a calculator with all known strategies.
func NewCalculator() *Calculator {
	return &Calculator{
		strategies: map[domain.VehicleType]Strategy{
			domain.VehicleBicycle:     bicycleStrategy{},
			domain.VehicleScooter:     scooterStrategy{},
			domain.VehicleElectricCar: electricCarStrategy{},
		},
	}
}

// ForType resolves a vehicle type string (case-insensitive) to its
// strategy.
func (c *Calculator) ForType(vehicleType string) (Strategy, error) {
	t, err := domain.ParseVehicleType(vehicleType)
	if err != nil {
		return nil, &DomainError{VehicleType: vehicleType, Reason: "unknown vehicle type"}
	}
	strategy, ok := c.strategies[t]
	if !ok {
		return nil, &DomainError{VehicleType: vehicleType, Reason: "no fare strategy registered"}
	}
	return strategy, nil
}

// Compute resolves the strategy for the vehicle type and prices the
// duration, rounded to 2 decimals.
func (c *Calculator) Compute(vehicleType string, durationMinutes int) (float64, error) {
	strategy, err := c.ForType(vehicleType)
	if err != nil {
		return 0, err
	}
	return strategy.ComputeFare(durationMinutes), nil
}

// Tariff is a human-readable tariff explanation, purely informational.
type Tariff struct {
	VehicleType   domain.VehicleType `json:"vehicleType"`
	Description   string             `json:"description"`
	MinimumCharge float64            `json:"minimumCharge"`
}

// Describe returns the tariff explanation for a vehicle type.
func (c *Calculator) Describe(vehicleType string) (*Tariff, error) {
	t, err := domain.ParseVehicleType(vehicleType)
	if err != nil {
		return nil, &DomainError{VehicleType: vehicleType, Reason: "unknown vehicle type"}
	}

	switch t {
	case domain.VehicleBicycle:
		return &Tariff{
			VehicleType:   t,
			Description:   fmt.Sprintf("%.2f flat for the first %d minutes, then %.2f per extra minute", bicycleBaseFare, bicycleFreeMinutes, bicycleMinuteRate),
			MinimumCharge: bicycleBaseFare,
		}, nil
	case domain.VehicleScooter:
		return &Tariff{
			VehicleType:   t,
			Description:   fmt.Sprintf("%.2f activation plus %.2f per minute", scooterActivationFee, scooterMinuteRate),
			MinimumCharge: round2(scooterActivationFee + scooterMinuteRate),
		}, nil
	case domain.VehicleElectricCar:
		return &Tariff{
			VehicleType:   t,
			Description:   fmt.Sprintf("%.2f base plus %.2f per started hour (one hour minimum)", carBaseFare, carHourlyRate),
			MinimumCharge: round2(carBaseFare + carHourlyRate),
		}, nil
	}
	return nil, &DomainError{VehicleType: vehicleType, Reason: "unknown vehicle type"}
}

// Tariffs returns the tariff explanations for every known type.
func (c *Calculator) Tariffs() []*Tariff {
	var tariffs []*Tariff
	for _, t := range domain.VehicleTypes() {
		tariff, err := c.Describe(string(t))
		if err == nil {
			tariffs = append(tariffs, tariff)
		}
	}
	return tariffs
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
