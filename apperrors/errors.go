// Package apperrors defines the typed error kinds the services return for
// expected negative outcomes. Handlers translate them to HTTP statuses with
// HTTPStatus; nothing in this package is retried automatically.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError reports a referenced resource that does not exist.
type NotFoundError struct {
	Resource string
	Field    string
	Value    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

func NotFound(resource, field string, value any) error {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// InsufficientStockError reports a requested quantity exceeding live stock.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// DuplicateError reports a resource that already exists.
type DuplicateError struct {
	Resource string
	Name     string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Name)
}

// ValidationError reports malformed caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthKind distinguishes token validation failures for logging. All kinds
// collapse to the same unauthenticated response at the boundary.
type AuthKind string

const (
	AuthMalformed        AuthKind = "malformed"
	AuthExpired          AuthKind = "expired"
	AuthUnsupported      AuthKind = "unsupported"
	AuthSignatureInvalid AuthKind = "signature_invalid"
)

type AuthError struct {
	Kind  AuthKind
	Cause error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth: %s token: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("auth: %s token", e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// HTTPStatus maps an error to the status the handlers respond with.
func HTTPStatus(err error) int {
	var (
		notFound   *NotFoundError
		stock      *InsufficientStockError
		duplicate  *DuplicateError
		validation *ValidationError
		auth       *AuthError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &stock):
		return http.StatusBadRequest
	case errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
