package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
)

// ValidationError reports every field rule violated by a create or
// update, never just the first.
type ValidationError struct {
	Entity     string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(e.Violations, "; "))
}

// NewValidationError builds a ValidationError from a violation list.
func NewValidationError(entity string, violations []string) *ValidationError {
	return &ValidationError{Entity: entity, Violations: violations}
}

// ConflictError reports a uniqueness violation or an "already exists"
// condition.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// StateError reports an operation that is illegal for the entity's
// current lifecycle state.
type StateError struct {
	Entity string
	ID     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
}

// CapacityError reports a station at capacity on transport assignment
// or return.
type CapacityError struct {
	StationID string
	Capacity  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("station %s is at capacity (%d)", e.StationID, e.Capacity)
}
