package domain

import (
	"fmt"
	"strings"
	"time"
)

// Station represents a physical dock with finite vehicle capacity.
type Station struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Capacity     int       `json:"capacity"`
	TransportIDs []string  `json:"transportIds"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns every violated field rule, or an empty slice if the
// station is valid.
func (s *Station) Validate() []string {
	var violations []string

	if strings.TrimSpace(s.Name) == "" {
		violations = append(violations, "name is required")
	}
	if strings.TrimSpace(s.Address) == "" {
		violations = append(violations, "address is required")
	}
	if s.Lat < -90 || s.Lat > 90 {
		violations = append(violations, "latitude must be between -90 and 90")
	}
	if s.Lng < -180 || s.Lng > 180 {
		violations = append(violations, "longitude must be between -180 and 180")
	}
	if s.Capacity < 1 {
		violations = append(violations, "capacity must be at least 1")
	}
	if len(s.TransportIDs) > s.Capacity {
		violations = append(violations, fmt.Sprintf("assigned transports (%d) exceed capacity (%d)", len(s.TransportIDs), s.Capacity))
	}

	return violations
}

// HasCapacity reports whether the station can take one more transport.
func (s *Station) HasCapacity() bool {
	return len(s.TransportIDs) < s.Capacity
}

// HasTransport reports whether the given transport is docked here.
func (s *Station) HasTransport(transportID string) bool {
	for _, id := range s.TransportIDs {
		if id == transportID {
			return true
		}
	}
	return false
}

// AddTransport docks a transport at the station.
func (s *Station) AddTransport(transportID string) {
	if !s.HasTransport(transportID) {
		s.TransportIDs = append(s.TransportIDs, transportID)
	}
}

// RemoveTransport undocks a transport from the station.
func (s *Station) RemoveTransport(transportID string) {
	for i, id := range s.TransportIDs {
		if id == transportID {
			s.TransportIDs = append(s.TransportIDs[:i], s.TransportIDs[i+1:]...)
			return
		}
	}
}

// Occupancy returns the station's occupancy as a 0-100 percentage,
// rounded to the nearest integer.
func (s *Station) Occupancy() int {
	if s.Capacity == 0 {
		return 0
	}
	return int(float64(len(s.TransportIDs))/float64(s.Capacity)*100 + 0.5)
}
