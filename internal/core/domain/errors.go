package domain

import "errors"

// Common domain errors shared across adapters and services.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a record with the same key already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates a request carried invalid parameters.
	ErrInvalidInput = errors.New("invalid input")
)
