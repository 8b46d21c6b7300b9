package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors surfaced by the capacity ledger and promo evaluator
var (
	ErrSlotNotFound      = errors.New("slot not found")
	ErrCapacityExceeded  = errors.New("not enough capacity for this booking")
	ErrUsageLimitReached = errors.New("promo code usage limit exceeded")
	ErrPromoNotFound     = errors.New("promo code not found")
	ErrPromoInactive     = errors.New("promo code is no longer active")
)

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InternalError creates a 500 Internal Server error
func InternalError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}
