package store

import "errors"

// Sentinel errors returned by store operations. Callers classify failures
// with errors.Is; wrapped variants carry detail in the message.
var (
	// ErrNotFound means no record exists with the given id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSKU means a non-deleted item already uses the SKU.
	ErrDuplicateSKU = errors.New("sku already in use")

	// ErrNoUpdates means a patch contained no updatable fields.
	ErrNoUpdates = errors.New("no updatable fields in patch")

	// ErrValidation means required fields are missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrConflict means a uniqueness rule other than SKU was violated.
	ErrConflict = errors.New("already exists")
)
