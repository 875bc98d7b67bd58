// internal/services/errors.go
package services

import "errors"

// Sentinel errors shared across services. Handlers map them to HTTP statuses
// with errors.Is instead of matching message substrings.
var (
	// ErrNotFound covers any referenced row that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned when a conditional stock decrement
	// affects zero rows because the counter would go negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrVariantNotFound is returned when no variant of the product matches
	// the requested attribute map exactly.
	ErrVariantNotFound = errors.New("no variant matches the requested attributes")

	// ErrStateConflict guards invalid order status transitions, such as
	// moving an order out of the canceled state.
	ErrStateConflict = errors.New("invalid order state transition")

	// ErrPromoInvalid is returned for promo codes outside their validity
	// window or flagged inactive.
	ErrPromoInvalid = errors.New("promo code is not valid")

	// ErrDuplicate is returned when a uniqueness rule is violated, such as
	// two variants of one product sharing the same attribute set.
	ErrDuplicate = errors.New("duplicate record")
)
