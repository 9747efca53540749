// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Folio.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.
  - Decomposition: Dedicated constructors for the content pipeline failures
    (invalid identity input, ordinal clashes, failed cascades).

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNotFound              = "NOT_FOUND"
	CodeConflict              = "CONFLICT"
	CodeOrdinalConflict       = "ORDINAL_CONFLICT"
	CodeValidation            = "VALIDATION_ERROR"
	CodeInvalidInputFormat    = "INVALID_INPUT_FORMAT"
	CodePartialCascadeFailure = "PARTIAL_CASCADE_FAILURE"
	CodeRateLimited           = "RATE_LIMITED"
	CodeInternal              = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the Folio API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Chapter") // Returns "Chapter not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// OrdinalConflict creates a 409 [AppError] for an explicit ordinal that is
// already taken by a sibling. It is never renumbered silently.
func OrdinalConflict(resource string, cause error) *AppError {
	return &AppError{
		Code:       CodeOrdinalConflict,
		Message:    fmt.Sprintf("%s number is already taken", resource),
		HTTPStatus: http.StatusConflict,
		Cause:      cause,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidInputFormat creates a 400 [AppError] for a malformed hostname, URL
// or OID passed to namespace-based identity generation.
func InvalidInputFormat(value, namespace string, cause error) *AppError {
	return &AppError{
		Code:       CodeInvalidInputFormat,
		Message:    fmt.Sprintf("%q is not a valid %s value", value, namespace),
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
		Details:    []FieldError{{Field: namespace, Message: value}},
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// PartialCascadeFailure creates a 500 [AppError] for a storage failure in the
// middle of a content rebuild.
//
// created is the number of children written before the failure. When the
// rollback succeeded none of them survive and the prior children are intact.
func PartialCascadeFailure(created int, rolledBack bool, cause error) *AppError {
	message := fmt.Sprintf("Content rebuild failed after %d children; previous content kept", created)
	if !rolledBack {
		message = fmt.Sprintf("Content rebuild failed after %d children; content may be inconsistent", created)
	}
	return &AppError{
		Code:       CodePartialCascadeFailure,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
