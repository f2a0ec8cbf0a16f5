package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movigo/internal/fare"
	"movigo/internal/service"
)

// PricingHandler handles HTTP requests for quotes, tariffs and the
// rental cart.
type PricingHandler struct {
	pricing    *fare.PricingService
	calculator *fare.Calculator
	cart       *service.CartService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricing *fare.PricingService, calculator *fare.Calculator, cart *service.CartService) *PricingHandler {
	return &PricingHandler{pricing: pricing, calculator: calculator, cart: cart}
}

// QuoteRequest is the HTTP request body for a price quote.
type QuoteRequest struct {
	VehicleType string `json:"vehicleType"`
	Duration    int    `json:"duration"`
	Unit        string `json:"unit"` // hourly | daily
}

// Quote handles POST /v1/quotes
func (h *PricingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.pricing.Quote(req.VehicleType, req.Duration, fare.RateUnit(req.Unit))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Tariffs handles GET /v1/tariffs
func (h *PricingHandler) Tariffs(c *gin.Context) {
	c.JSON(http.StatusOK, h.calculator.Tariffs())
}

// AddCartItemRequest is the HTTP request body for staging a cart line.
type AddCartItemRequest struct {
	VehicleType string `json:"vehicleType"`
	Duration    int    `json:"duration"`
	Unit        string `json:"unit"`
}

// AddCartItem handles POST /v1/cart/items
func (h *PricingHandler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.cart.AddItem(req.VehicleType, req.Duration, fare.RateUnit(req.Unit))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RemoveCartItem handles DELETE /v1/cart/items/:id
func (h *PricingHandler) RemoveCartItem(c *gin.Context) {
	if err := h.cart.RemoveItem(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCart handles GET /v1/cart
func (h *PricingHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
	})
}

// ClearCart handles DELETE /v1/cart
func (h *PricingHandler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	c.Status(http.StatusNoContent)
}

// OvertimeRequest is the HTTP request body for an overtime estimate.
type OvertimeRequest struct {
	VehicleType   string `json:"vehicleType"`
	OvertimeHours int    `json:"overtimeHours"`
}

// Overtime handles POST /v1/quotes/overtime
func (h *PricingHandler) Overtime(c *gin.Context) {
	var req OvertimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	amount, err := h.cart.EstimateOvertime(req.VehicleType, req.OvertimeHours)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicleType":   req.VehicleType,
		"overtimeHours": req.OvertimeHours,
		"surcharge":     amount,
	})
}
