package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movigo/internal/domain"
	"movigo/internal/repository"
)

// TransportHandler handles HTTP requests for transports.
type TransportHandler struct {
	transports repository.TransportRepository
}

// NewTransportHandler creates a new TransportHandler.
func NewTransportHandler(transports repository.TransportRepository) *TransportHandler {
	return &TransportHandler{transports: transports}
}

// CreateTransportRequest is the HTTP request body for transport creation.
type CreateTransportRequest struct {
	Code      string  `json:"code"`
	Type      string  `json:"type"`
	StationID *string `json:"stationId"`
}

// UpdateTransportRequest carries partial transport fields.
type UpdateTransportRequest struct {
	Code            *string  `json:"code"`
	Status          *string  `json:"status"`
	OdometerKm      *float64 `json:"odometer"`
	LastMaintenance *string  `json:"lastMaintenance"` // RFC3339
}

// Create handles POST /v1/transports
func (h *TransportHandler) Create(c *gin.Context) {
	var req CreateTransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicleType, err := domain.ParseVehicleType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	transport := domain.NewTransport(uuid.New().String(), req.Code, vehicleType)
	transport.StationID = req.StationID

	if err := h.transports.Create(c.Request.Context(), transport); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transport)
}

// Get handles GET /v1/transports/:id
func (h *TransportHandler) Get(c *gin.Context) {
	transport, err := h.transports.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transport)
}

// GetAll handles GET /v1/transports
func (h *TransportHandler) GetAll(c *gin.Context) {
	transports, err := h.transports.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transports)
}

// Update handles PATCH /v1/transports/:id
func (h *TransportHandler) Update(c *gin.Context) {
	var req UpdateTransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	transport, err := h.transports.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Code != nil {
		transport.Code = *req.Code
	}
	if req.Status != nil {
		transport.Status = domain.TransportStatus(*req.Status)
		if transport.Status != domain.TransportOperational {
			transport.Available = false
		}
	}
	if req.OdometerKm != nil {
		transport.OdometerKm = *req.OdometerKm
	}
	if req.LastMaintenance != nil {
		t, err := time.Parse(time.RFC3339, *req.LastMaintenance)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lastMaintenance must be RFC3339"})
			return
		}
		transport.LastMaintenance = &t
	}

	if err := h.transports.Update(ctx, transport); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transport)
}

// Delete handles DELETE /v1/transports/:id
func (h *TransportHandler) Delete(c *gin.Context) {
	if err := h.transports.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
