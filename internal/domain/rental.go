package domain

import (
	"strings"
	"time"
)

// RentalStatus represents the lifecycle state of a rental.
type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalFinalized RentalStatus = "finalized"
	RentalCancelled RentalStatus = "cancelled"
)

// Rental represents a single borrow-to-return agreement between a user
// and a transport. The only legal transitions are active→finalized and
// active→cancelled; terminal states never change again, except that a
// completed payment flips Paid on a finalized rental.
type Rental struct {
	ID                   string       `json:"id"`
	UserID               string       `json:"userId"`
	TransportID          string       `json:"transportId"`
	OriginStationID      string       `json:"originStationId"`
	DestinationStationID *string      `json:"destinationStationId"`
	Start                time.Time    `json:"start"`
	End                  *time.Time   `json:"end"`
	DurationMinutes      int          `json:"durationMinutes"`
	Status               RentalStatus `json:"status"`
	Fare                 float64      `json:"fare"`
	Paid                 bool         `json:"paid"`
	CancelReason         string       `json:"cancelReason,omitempty"`
}

// NewRental opens a rental in the active state starting now.
func NewRental(id, userID, transportID, originStationID string) *Rental {
	return &Rental{
		ID:              id,
		UserID:          userID,
		TransportID:     transportID,
		OriginStationID: originStationID,
		Start:           time.Now(),
		Status:          RentalActive,
	}
}

// Validate returns every violated field rule.
func (r *Rental) Validate() []string {
	var violations []string

	if strings.TrimSpace(r.UserID) == "" {
		violations = append(violations, "user id is required")
	}
	if strings.TrimSpace(r.TransportID) == "" {
		violations = append(violations, "transport id is required")
	}
	if strings.TrimSpace(r.OriginStationID) == "" {
		violations = append(violations, "origin station id is required")
	}
	switch r.Status {
	case RentalActive, RentalFinalized, RentalCancelled:
	default:
		violations = append(violations, "status must be one of active, finalized, cancelled")
	}
	// Exactly one of {end set, status active} holds.
	if r.Status == RentalActive && r.End != nil {
		violations = append(violations, "an active rental cannot have an end timestamp")
	}
	if r.Status != RentalActive && r.End == nil {
		violations = append(violations, "a closed rental must have an end timestamp")
	}
	if r.Fare < 0 {
		violations = append(violations, "fare cannot be negative")
	}
	if r.DurationMinutes < 0 {
		violations = append(violations, "duration cannot be negative")
	}

	return violations
}

// ElapsedMinutes returns the whole minutes elapsed since the rental
// started, rounded up. A rental returned inside its first minute is
// billed for one minute.
func (r *Rental) ElapsedMinutes(now time.Time) int {
	elapsed := now.Sub(r.Start)
	minutes := int(elapsed / time.Minute)
	if elapsed%time.Minute > 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Finalize closes the rental at the given destination with the computed
// fare. The caller is responsible for checking the rental is active.
func (r *Rental) Finalize(destinationStationID string, end time.Time, durationMinutes int, fare float64) {
	r.DestinationStationID = &destinationStationID
	r.End = &end
	r.DurationMinutes = durationMinutes
	r.Fare = fare
	r.Status = RentalFinalized
}

// Cancel closes the rental without a fare, recording the reason.
func (r *Rental) Cancel(reason string, end time.Time) {
	r.End = &end
	r.Status = RentalCancelled
	r.CancelReason = reason
}

// Closed reports whether the rental is in a terminal state.
func (r *Rental) Closed() bool {
	return r.Status == RentalFinalized || r.Status == RentalCancelled
}
