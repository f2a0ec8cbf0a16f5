package domain

import (
	"strings"
	"time"
)

// TransportStatus represents the operational status of a transport.
type TransportStatus string

const (
	TransportOperational  TransportStatus = "operational"
	TransportMaintenance  TransportStatus = "maintenance"
	TransportOutOfService TransportStatus = "out-of-service"
)

// Transport represents a vehicle instance trackable by code.
//
// While docked, StationID points at the station and Available may be
// true. While rented, StationID is nil and Available is false.
type Transport struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Type            VehicleType     `json:"type"`
	StationID       *string         `json:"stationId"`
	Available       bool            `json:"available"`
	Features        map[string]any  `json:"features"`
	CreatedAt       time.Time       `json:"createdAt"`
	Status          TransportStatus `json:"status"`
	LastMaintenance *time.Time      `json:"lastMaintenance"`
	OdometerKm      float64         `json:"odometer"`
}

// NewTransport builds a transport of the given type with its default
// feature bag, docked at no station.
func NewTransport(id, code string, t VehicleType) *Transport {
	return &Transport{
		ID:        id,
		Code:      code,
		Type:      t,
		Available: false,
		Features:  DefaultFeatures(t),
		CreatedAt: time.Now(),
		Status:    TransportOperational,
	}
}

// Validate returns every violated field rule.
func (t *Transport) Validate() []string {
	var violations []string

	if len(strings.TrimSpace(t.Code)) < 3 {
		violations = append(violations, "code must be at least 3 characters")
	}
	if _, err := ParseVehicleType(string(t.Type)); err != nil {
		violations = append(violations, "type must be one of bicycle, scooter, electric-car")
	}
	switch t.Status {
	case TransportOperational, TransportMaintenance, TransportOutOfService:
	default:
		violations = append(violations, "status must be one of operational, maintenance, out-of-service")
	}
	if t.OdometerKm < 0 {
		violations = append(violations, "odometer cannot be negative")
	}
	// Availability implies the transport is operational and docked.
	if t.Available && t.Status != TransportOperational {
		violations = append(violations, "an available transport must be operational")
	}
	if t.Available && t.StationID == nil {
		violations = append(violations, "an available transport must be assigned to a station")
	}

	return violations
}

// MarkRented flips the transport to the on-rental state.
func (t *Transport) MarkRented() {
	t.Available = false
	t.StationID = nil
}

// MarkReturned docks the transport at the given station and makes it
// available again.
func (t *Transport) MarkReturned(stationID string) {
	t.StationID = &stationID
	t.Available = t.Status == TransportOperational
}

// Rented reports whether the transport is currently out on a rental.
func (t *Transport) Rented() bool {
	return t.StationID == nil && !t.Available
}
