package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"movigo/internal/fare"
	"movigo/internal/repository"
	"movigo/internal/service"
)

// ErrorResponse represents an error response. Validation failures carry
// the full list of violated rules.
type ErrorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var validationErr *repository.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:      validationErr.Error(),
			Violations: validationErr.Violations,
		})
		return
	}

	c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var (
		conflictErr *repository.ConflictError
		stateErr    *repository.StateError
		capacityErr *repository.CapacityError
		domainErr   *fare.DomainError
	)

	switch {
	// Not found
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Uniqueness and state conflicts
	case errors.As(err, &conflictErr),
		errors.As(err, &stateErr),
		errors.As(err, &capacityErr),
		errors.Is(err, service.ErrTransportLocked):
		return http.StatusConflict

	// Fare engine rejections (unknown type, unavailable class)
	case errors.As(err, &domainErr):
		return http.StatusUnprocessableEntity

	// Bad input
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidTransportID),
		errors.Is(err, service.ErrInvalidStationID),
		errors.Is(err, service.ErrInvalidRentalID),
		errors.Is(err, service.ErrInvalidPaymentID),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrTransportNotAvailable),
		errors.Is(err, service.ErrTransportNotAtStation),
		errors.Is(err, service.ErrCartItemNotFound):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
