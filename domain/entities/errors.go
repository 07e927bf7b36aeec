package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError rejects malformed input before any state mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientFundsError rejects a debit that would drive a balance below
// zero. Required is the amount asked for, Available the balance at the time
// of the check.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %s, have %s", e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// Shortfall returns how much was missing.
func (e *InsufficientFundsError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Available)
}

// AlreadyMiningError rejects a mining start while a session is in flight.
type AlreadyMiningError struct {
	Remaining time.Duration
}

func (e *AlreadyMiningError) Error() string {
	return fmt.Sprintf("already mining: %s remaining", e.Remaining.Round(time.Second))
}

// OnCooldownError rejects an operation whose cooldown window has not elapsed.
type OnCooldownError struct {
	Remaining time.Duration
}

func (e *OnCooldownError) Error() string {
	return fmt.Sprintf("on cooldown: %s remaining", e.Remaining.Round(time.Second))
}
