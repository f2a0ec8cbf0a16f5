package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movigo/internal/repository"
	"movigo/internal/service"
)

// StatsHandler serves the aggregate statistics queries.
type StatsHandler struct {
	stats      *service.StatsService
	stations   repository.StationRepository
	transports repository.TransportRepository
	users      repository.UserRepository
	rentals    repository.RentalRepository
	payments   repository.PaymentRepository
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(
	stats *service.StatsService,
	stations repository.StationRepository,
	transports repository.TransportRepository,
	users repository.UserRepository,
	rentals repository.RentalRepository,
	payments repository.PaymentRepository,
) *StatsHandler {
	return &StatsHandler{
		stats:      stats,
		stations:   stations,
		transports: transports,
		users:      users,
		rentals:    rentals,
		payments:   payments,
	}
}

// Summary handles GET /v1/stats
func (h *StatsHandler) Summary(c *gin.Context) {
	summary, err := h.stats.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Stations handles GET /v1/stats/stations
func (h *StatsHandler) Stations(c *gin.Context) {
	stats, err := h.stations.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Transports handles GET /v1/stats/transports
func (h *StatsHandler) Transports(c *gin.Context) {
	stats, err := h.transports.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Users handles GET /v1/stats/users
func (h *StatsHandler) Users(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Rentals handles GET /v1/stats/rentals
func (h *StatsHandler) Rentals(c *gin.Context) {
	stats, err := h.rentals.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Payments handles GET /v1/stats/payments
func (h *StatsHandler) Payments(c *gin.Context) {
	stats, err := h.payments.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
