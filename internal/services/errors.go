package services

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is. The structured variants below
// unwrap to these so callers can branch without losing the details.
var (
	// ErrNotFound is returned by reads for keys with no balance or history.
	ErrNotFound = errors.New("point record not found")

	// ErrUnknownUser is returned when a mutation targets a key with no
	// existing balance row. Mutations never create accounts.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrLimitExceeded is returned when a charge would push the balance
	// over the configured maximum.
	ErrLimitExceeded = errors.New("charge exceeds maximum point balance")

	// ErrInsufficientBalance is returned when a use would drive the
	// balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrPersistenceFailure is returned when the balance store did not
	// commit the new amount. No history is appended in that case.
	ErrPersistenceFailure = errors.New("balance update was not persisted")
)

// LimitExceededError carries the numbers behind a rejected charge.
type LimitExceededError struct {
	UserID    int64
	Current   int64
	Requested int64
	Max       int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("charge exceeds max point: current %d + requested %d > max %d",
		e.Current, e.Requested, e.Max)
}

func (e *LimitExceededError) Unwrap() error { return ErrLimitExceeded }

// InsufficientBalanceError carries the numbers behind a rejected use.
type InsufficientBalanceError struct {
	UserID    int64
	Available int64
	Requested int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %d, requested %d",
		e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// IsClientError reports whether the error is the caller's fault rather
// than a backend failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrLimitExceeded) ||
		errors.Is(err, ErrInsufficientBalance)
}
