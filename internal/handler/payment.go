package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movigo/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest is the HTTP request body for recording a payment.
type RecordPaymentRequest struct {
	RentalID string  `json:"rentalId"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method"`
}

// Record handles POST /v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), service.RecordPaymentRequest{
		RentalID: req.RentalID,
		Amount:   req.Amount,
		Method:   req.Method,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// Process handles POST /v1/payments/:id/process
func (h *PaymentHandler) Process(c *gin.Context) {
	payment, err := h.paymentService.ProcessPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Get handles GET /v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GetAll handles GET /v1/payments
func (h *PaymentHandler) GetAll(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
