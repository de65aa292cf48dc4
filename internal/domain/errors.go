package domain

import "errors"

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalogUnavailable is returned when every catalog source tier has
	// failed or come back empty
	ErrCatalogUnavailable = errors.New("no products available")

	// ErrStockExceeded is returned when a requested quantity exceeds the
	// product's available stock; the ledger is left unchanged
	ErrStockExceeded = errors.New("requested quantity exceeds available stock")

	// ErrSuperseded is returned when a debounced computation is cancelled
	// by a newer input before its quiet window elapses
	ErrSuperseded = errors.New("superseded by newer input")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)
