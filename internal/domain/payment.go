package domain

import (
	"strings"
	"time"
)

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentMethod represents how a rental is settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

// Payment represents a settlement record against a finalized rental.
// At most one payment exists per rental.
type Payment struct {
	ID        string        `json:"id"`
	RentalID  string        `json:"rentalId"`
	Amount    float64       `json:"amount"`
	Method    PaymentMethod `json:"method"`
	PaidAt    time.Time     `json:"paidAt"`
	Status    PaymentStatus `json:"status"`
	Reference string        `json:"reference"`
}

// Validate returns every violated field rule.
func (p *Payment) Validate() []string {
	var violations []string

	if strings.TrimSpace(p.RentalID) == "" {
		violations = append(violations, "rental id is required")
	}
	if p.Amount <= 0 {
		violations = append(violations, "amount must be greater than zero")
	}
	switch p.Method {
	case PaymentCash, PaymentCard, PaymentWallet:
	default:
		violations = append(violations, "method must be one of cash, card, wallet")
	}
	switch p.Status {
	case PaymentPending, PaymentCompleted, PaymentFailed:
	default:
		violations = append(violations, "status must be one of pending, completed, failed")
	}

	return violations
}
