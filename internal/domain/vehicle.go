package domain

import (
	"fmt"
	"strings"
)

// VehicleType represents the kind of transport in the fleet.
// This is a closed set: adding a new type means adding a fare strategy,
// a rate-table entry and a feature bag alongside the constant.
type VehicleType string

const (
	VehicleBicycle     VehicleType = "bicycle"
	VehicleScooter     VehicleType = "scooter"
	VehicleElectricCar VehicleType = "electric-car"
)

// ParseVehicleType resolves a vehicle type string case-insensitively.
// It is the single place free-form type strings are interpreted.
func ParseVehicleType(s string) (VehicleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(VehicleBicycle), "bike", "bicicleta":
		return VehicleBicycle, nil
	case string(VehicleScooter), "patineta":
		return VehicleScooter, nil
	case string(VehicleElectricCar), "electric_car", "auto-electrico":
		return VehicleElectricCar, nil
	default:
		return "", fmt.Errorf("unknown vehicle type %q", s)
	}
}

// VehicleTypes returns all known vehicle types.
func VehicleTypes() []VehicleType {
	return []VehicleType{VehicleBicycle, VehicleScooter, VehicleElectricCar}
}

// DefaultFeatures returns the type-specific feature bag for a new
// transport of the given type.
func DefaultFeatures(t VehicleType) map[string]any {
	switch t {
	case VehicleBicycle:
		return map[string]any{
			"gears":      7,
			"basket":     true,
			"wheelSize":  26,
			"hasHelmet":  false,
			"frameStyle": "urban",
		}
	case VehicleScooter:
		return map[string]any{
			"rangeKm":     35,
			"maxSpeedKmh": 25,
			"foldable":    true,
			"batteryPct":  100,
		}
	case VehicleElectricCar:
		return map[string]any{
			"seats":      4,
			"rangeKm":    280,
			"doors":      4,
			"batteryPct": 100,
			"trunkL":     310,
		}
	default:
		return map[string]any{}
	}
}
