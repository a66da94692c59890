package domain

import "errors"

var (
	// ErrObjectNotFound is returned when a raw object is absent from the object store
	ErrObjectNotFound = errors.New("object not found in store")

	// ErrSourceUnavailable is returned when a mandatory raw source is missing or unreadable
	ErrSourceUnavailable = errors.New("raw source unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProfileNotFound is returned when the named user profile does not exist
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrWarehouseFailure is returned when a warehouse read or write fails
	ErrWarehouseFailure = errors.New("warehouse operation failed")
)
