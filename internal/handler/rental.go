package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"movigo/internal/domain"
	"movigo/internal/service"
)

// RentalHandler handles HTTP requests for rentals.
type RentalHandler struct {
	rentalService *service.RentalService
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rentalService *service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// CreateRentalRequest is the HTTP request body for opening a rental.
type CreateRentalRequest struct {
	UserID          string `json:"userId"`
	TransportID     string `json:"transportId"`
	OriginStationID string `json:"originStationId"`
}

// FinalizeRentalRequest is the HTTP request body for closing a rental.
type FinalizeRentalRequest struct {
	DestinationStationID string `json:"destinationStationId"`
}

// CancelRentalRequest is the HTTP request body for cancelling a rental.
type CancelRentalRequest struct {
	Reason string `json:"reason"`
}

// RentalResponse is the HTTP response for rental operations.
type RentalResponse struct {
	ID                   string  `json:"id"`
	UserID               string  `json:"userId"`
	TransportID          string  `json:"transportId"`
	OriginStationID      string  `json:"originStationId"`
	DestinationStationID *string `json:"destinationStationId"`
	Start                string  `json:"start"`
	End                  *string `json:"end"`
	DurationMinutes      int     `json:"durationMinutes"`
	Status               string  `json:"status"`
	Fare                 float64 `json:"fare"`
	Paid                 bool    `json:"paid"`
	CancelReason         string  `json:"cancelReason,omitempty"`
}

func toRentalResponse(r *domain.Rental) RentalResponse {
	resp := RentalResponse{
		ID:                   r.ID,
		UserID:               r.UserID,
		TransportID:          r.TransportID,
		OriginStationID:      r.OriginStationID,
		DestinationStationID: r.DestinationStationID,
		Start:                r.Start.Format(time.RFC3339),
		DurationMinutes:      r.DurationMinutes,
		Status:               string(r.Status),
		Fare:                 r.Fare,
		Paid:                 r.Paid,
		CancelReason:         r.CancelReason,
	}
	if r.End != nil {
		end := r.End.Format(time.RFC3339)
		resp.End = &end
	}
	return resp
}

// Create handles POST /v1/rentals
func (h *RentalHandler) Create(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rental, err := h.rentalService.CreateRental(c.Request.Context(), service.CreateRentalRequest{
		UserID:          req.UserID,
		TransportID:     req.TransportID,
		OriginStationID: req.OriginStationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRentalResponse(rental))
}

// Finalize handles POST /v1/rentals/:id/finalize
func (h *RentalHandler) Finalize(c *gin.Context) {
	var req FinalizeRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rental, err := h.rentalService.FinalizeRental(c.Request.Context(), service.FinalizeRentalRequest{
		RentalID:             c.Param("id"),
		DestinationStationID: req.DestinationStationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRentalResponse(rental))
}

// Cancel handles POST /v1/rentals/:id/cancel
func (h *RentalHandler) Cancel(c *gin.Context) {
	var req CancelRentalRequest
	// The body is optional; an empty body cancels without a reason.
	_ = c.ShouldBindJSON(&req)

	rental, err := h.rentalService.CancelRental(c.Request.Context(), service.CancelRentalRequest{
		RentalID: c.Param("id"),
		Reason:   req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRentalResponse(rental))
}

// Get handles GET /v1/rentals/:id
func (h *RentalHandler) Get(c *gin.Context) {
	rental, err := h.rentalService.GetRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRentalResponse(rental))
}

// GetAll handles GET /v1/rentals
func (h *RentalHandler) GetAll(c *gin.Context) {
	rentals, err := h.rentalService.ListRentals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		response = append(response, toRentalResponse(r))
	}
	c.JSON(http.StatusOK, response)
}
