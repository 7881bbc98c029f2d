package models

import "errors"

// Error kinds shared across the provider and the projection engine.
// Callers match them with errors.Is after unwrapping.
var (
	// ErrInvalidInput marks malformed or missing input: absent columns,
	// series too short for an operation, mismatched lengths.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks persisted data that could neither be read nor
	// regenerated.
	ErrNotFound = errors.New("not found")
)
