package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the addressed product, category or photo does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCategoryExists is the soft conflict raised when a category name is already taken.
	ErrCategoryExists = errors.New("category already exists")
	// ErrCategoryInUse is returned when deleting a category that products still reference.
	ErrCategoryInUse = errors.New("cannot delete category with associated products")
)

// ValidationError reports the first input constraint that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// GatewayError wraps a failure reported by the payment gateway.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
