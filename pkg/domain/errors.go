package domain

import "errors"

// Common domain errors
var (
	// ErrInvalidAmount is returned when a monetary amount is missing, zero, or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
)
