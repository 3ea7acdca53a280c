package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// On the edit/reverse path it also covers a trade whose legs are incomplete.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInstrumentNotFound indicates a referenced instrument does not resolve in reference data.
var ErrInstrumentNotFound = errors.New("instrument not found")

// ErrAccountNotFound indicates a referenced account does not resolve in reference data.
var ErrAccountNotFound = errors.New("account not found")

// ErrCurrencyMismatch indicates the cash account currency differs from the traded instrument currency.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrMissingFXRate indicates no FX rate exists on or before the requested date.
var ErrMissingFXRate = errors.New("missing FX rate")

// ErrMissingCashInstrument indicates no synthetic cash instrument exists for the cash account's currency.
var ErrMissingCashInstrument = errors.New("missing cash instrument")

// ErrPersistence indicates the underlying store rejected a write; the whole operation was rolled back.
var ErrPersistence = errors.New("persistence failure")

// AppError wraps a lower-level failure with a code and a message suitable for display.
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
	if e.Err != nil {
		return e.Err
	}
	// Map codes back onto sentinels so errors.Is keeps working through the wrapper.
	switch e.Code {
	case 404:
		return ErrNotFound
	case 400:
		return ErrValidation
	default:
		return ErrPersistence
	}
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message}
}

// NewValidationError creates an AppError that unwraps to ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message}
}
