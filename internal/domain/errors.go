package domain

import (
	"errors"
	"fmt"
)

// KeyPrefix namespaces every key the storefront writes.
const KeyPrefix = "merch:"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound signals a missing or hidden product.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound signals a missing order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyExists signals an identifier collision on create.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCart signals checkout of a cart with no resolvable entries.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnauthenticated signals a missing or expired session.
	ErrUnauthenticated = errors.New("no authenticated member session found")
	// ErrUnverified signals a session whose email is not verified yet.
	ErrUnverified = errors.New("email not verified")
	// ErrForbidden signals a member outside the admin allow-list.
	ErrForbidden = errors.New("admin access required")
	// ErrNotAlumni signals an email that is not in the alumni records.
	ErrNotAlumni = errors.New("email is not in alumni records")
	// ErrInvalidCode signals a wrong or expired one-time code.
	ErrInvalidCode = errors.New("invalid or expired code")
)

// ValidationError wraps ErrInvalidInput with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a field validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
