package service

import "errors"

var (
	// ErrInvalidUserID is returned when the user id is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidTransportID is returned when the transport id is empty.
	ErrInvalidTransportID = errors.New("invalid transport id")

	// ErrInvalidStationID is returned when the station id is empty.
	ErrInvalidStationID = errors.New("invalid station id")

	// ErrInvalidRentalID is returned when the rental id is empty.
	ErrInvalidRentalID = errors.New("invalid rental id")

	// ErrInvalidPaymentID is returned when the payment id is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")

	// ErrInvalidPaymentAmount is returned when the payment amount is not positive.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrTransportNotAvailable is returned when the transport cannot be rented.
	ErrTransportNotAvailable = errors.New("transport not available")

	// ErrTransportNotAtStation is returned when the transport is not
	// docked at the claimed origin station.
	ErrTransportNotAtStation = errors.New("transport is not docked at the origin station")

	// ErrTransportLocked is returned when another request holds the
	// transport's rental lock.
	ErrTransportLocked = errors.New("transport is being rented by another request")

	// ErrCartItemNotFound is returned when a cart item id is unknown.
	ErrCartItemNotFound = errors.New("cart item not found")
)
