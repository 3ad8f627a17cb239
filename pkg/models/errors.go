package models

import "errors"

// Stable error kinds surfaced to API clients. Handlers map these onto
// HTTP statuses and machine-readable codes; storage code wraps them so
// callers can match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrLineNotFound      = errors.New("item not in cart")
	ErrProductNotInStore = errors.New("product does not belong to store")
	ErrInvalidCartLine   = errors.New("cart line references an invalid product")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderNotPending   = errors.New("order already accepted or processed")
	ErrRiderBusy         = errors.New("rider already has an active order")
	ErrUpstream          = errors.New("upstream unavailable")
)
