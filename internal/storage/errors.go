package storage

import "errors"

// Storage errors shared by all implementations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicatePosition is returned when opening a position for an
	// address that already has one open.
	ErrDuplicatePosition = errors.New("duplicate position: address already has an open position")

	// ErrNoOpenPosition is returned when closing a position for an
	// address that has none open.
	ErrNoOpenPosition = errors.New("no open position for address")
)
