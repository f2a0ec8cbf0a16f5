package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movigo/internal/domain"
	"movigo/internal/repository"
)

// StationHandler handles HTTP requests for stations.
type StationHandler struct {
	stations repository.StationRepository
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(stations repository.StationRepository) *StationHandler {
	return &StationHandler{stations: stations}
}

// CreateStationRequest is the HTTP request body for station creation.
type CreateStationRequest struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Capacity int     `json:"capacity"`
}

// UpdateStationRequest carries partial station fields; absent fields
// keep their stored values.
type UpdateStationRequest struct {
	Name     *string  `json:"name"`
	Address  *string  `json:"address"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Capacity *int     `json:"capacity"`
	Active   *bool    `json:"active"`
}

// Create handles POST /v1/stations
func (h *StationHandler) Create(c *gin.Context) {
	var req CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	station := &domain.Station{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Capacity:     req.Capacity,
		TransportIDs: []string{},
		Active:       true,
		CreatedAt:    time.Now(),
	}

	if err := h.stations.Create(c.Request.Context(), station); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, station)
}

// Get handles GET /v1/stations/:id
func (h *StationHandler) Get(c *gin.Context) {
	station, err := h.stations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, station)
}

// GetAll handles GET /v1/stations
func (h *StationHandler) GetAll(c *gin.Context) {
	stations, err := h.stations.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stations)
}

// Update handles PATCH /v1/stations/:id
func (h *StationHandler) Update(c *gin.Context) {
	var req UpdateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	station, err := h.stations.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != nil {
		station.Name = *req.Name
	}
	if req.Address != nil {
		station.Address = *req.Address
	}
	if req.Lat != nil {
		station.Lat = *req.Lat
	}
	if req.Lng != nil {
		station.Lng = *req.Lng
	}
	if req.Capacity != nil {
		station.Capacity = *req.Capacity
	}
	if req.Active != nil {
		station.Active = *req.Active
	}

	if err := h.stations.Update(ctx, station); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, station)
}

// Delete handles DELETE /v1/stations/:id
func (h *StationHandler) Delete(c *gin.Context) {
	if err := h.stations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
