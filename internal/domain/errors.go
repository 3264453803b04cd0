package domain

import "errors"

var (
	// Entry errors
	ErrDuplicateEntry         = errors.New("entry already exists")
	ErrLimitExceeded          = errors.New("ledger entry limit exceeded")
	ErrInvalidEntry           = errors.New("invalid entry")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrMalformedEntry         = errors.New("malformed stored entry")
	ErrConcurrentModification = errors.New("entry modified concurrently")

	// Aggregate errors
	ErrMalformedAggregate = errors.New("malformed stored aggregate")
	ErrAmountOverflow     = errors.New("running total out of range")
	ErrInconsistentLedger = errors.New("ledger is inconsistent: aggregates do not match entries")

	// Pagination errors
	ErrInvalidCursor = errors.New("invalid cursor")

	// Store errors
	ErrStoreUnavailable = errors.New("store unavailable")
)
