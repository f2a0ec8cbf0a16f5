package service

import (
	"sync"

	"github.com/google/uuid"

	"movigo/internal/fare"
)

// CartItem is a staged pre-rental line with its price quote.
type CartItem struct {
	ID          string        `json:"id"`
	VehicleType string        `json:"vehicleType"`
	Unit        fare.RateUnit `json:"unit"`
	Duration    int           `json:"duration"`
	Quote       *fare.Quote   `json:"quote"`
}

// CartService stages pre-rental quotes. The cart is ephemeral process
// state, never persisted and never authoritative: prices are estimates
// from the quote table, and the settle-time fare comes from the
// strategy calculator when the rental actually closes.
type CartService struct {
	mu      sync.RWMutex
	items   map[string]*CartItem
	pricing *fare.PricingService
}

// NewCartService creates an empty cart over the given pricing service.
func NewCartService(pricing *fare.PricingService) *CartService {
	return &CartService{
		items:   make(map[string]*CartItem),
		pricing: pricing,
	}
}

// AddItem quotes and stages a rental line. Fails for unknown or
// unavailable vehicle types.
func (s *CartService) AddItem(vehicleType string, duration int, unit fare.RateUnit) (*CartItem, error) {
	quote, err := s.pricing.Quote(vehicleType, duration, unit)
	if err != nil {
		return nil, err
	}

	item := &CartItem{
		ID:          uuid.New().String(),
		VehicleType: string(quote.VehicleType),
		Unit:        unit,
		Duration:    duration,
		Quote:       quote,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return item, nil
}

// RemoveItem drops a staged line.
func (s *CartService) RemoveItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[itemID]; !ok {
		return ErrCartItemNotFound
	}
	delete(s.items, itemID)
	return nil
}

// Items returns all staged lines.
func (s *CartService) Items() []*CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]*CartItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items
}

// Total sums the quoted totals of all staged lines.
func (s *CartService) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, item := range s.items {
		total += item.Quote.Total
	}
	return total
}

// Clear empties the cart.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*CartItem)
}

// EstimateOvertime estimates the overtime surcharge for a vehicle type.
func (s *CartService) EstimateOvertime(vehicleType string, overtimeHours int) (float64, error) {
	return s.pricing.Overtime(vehicleType, overtimeHours)
}
