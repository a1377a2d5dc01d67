package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested state transition is not allowed
// from the resource's current state.
var ErrConflict = errors.New("conflicting state")

// ErrInvalidQuantity indicates a negative or otherwise unusable line quantity.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrProductNotFound indicates that a referenced product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrUnknownCurrency indicates that a currency code is not registered or has
// no exchange rate on record.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrInvalidRate indicates a zero or negative exchange rate.
var ErrInvalidRate = errors.New("invalid exchange rate")

// ErrOrphanTransaction indicates a wallet transaction without a customer
// reference; such writes are rejected outright.
var ErrOrphanTransaction = errors.New("wallet transaction has no customer")

// ErrStockLockTimeout indicates the row lock on a stock row could not be
// acquired in time. The whole operation is safe to retry.
var ErrStockLockTimeout = errors.New("timed out waiting for stock row lock")

// ErrConcurrentModification indicates the order changed between the read and
// the write of a line-item diff.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// AppError carries an HTTP-ish status code alongside a message and an
// optional underlying cause. Used by the repository layer for failures that
// have no dedicated sentinel.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
