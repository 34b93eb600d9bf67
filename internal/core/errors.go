package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions callers are expected to branch on.
// Services wrap these with %w and context; the web adapter maps them to
// HTTP status codes with errors.Is.
var (
	// ErrItemNotFound means the referenced item id does not resolve.
	// Not retryable: the item is gone until someone re-creates it.
	ErrItemNotFound = errors.New("item not found")

	// ErrInsufficientStock means a reservation asked for more than the
	// item's current quantity. The caller must re-read state before retrying.
	ErrInsufficientStock = errors.New("insufficient quantity available")

	// ErrUnavailable means the per-item lock could not be acquired within
	// the bounded wait. Safe to retry with backoff.
	ErrUnavailable = errors.New("item is busy, try again")
)

// ValidationError reports a malformed or missing request field. It is
// raised before any storage access.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func validationErr(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
