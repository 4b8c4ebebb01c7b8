// Package errors provides the structured error taxonomy of the oracle with
// HTTP status mapping for the serving layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorises an error for metrics and response formatting.
type ErrorType string

const (
	// TypeSourceFetch indicates an adapter-level ingestion failure
	// (network, timeout, parse). Isolated per source, never fatal.
	TypeSourceFetch ErrorType = "source_fetch"
	// TypeConfiguration indicates invalid or unknown configuration.
	TypeConfiguration ErrorType = "configuration"
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeInternal indicates a server-side error (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error is a structured error with type, message, and optional context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeSourceFetch:
		return http.StatusBadGateway
	case TypeConfiguration, TypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ToResponse returns the JSON body for this error.
func (e *Error) ToResponse() map[string]any {
	return map[string]any{
		"error": map[string]any{
			"type":    e.Type,
			"message": e.Message,
		},
	}
}

// SourceFetch wraps an adapter failure with its source name attached.
func SourceFetch(source string, cause error) *Error {
	return &Error{
		Type:    TypeSourceFetch,
		Message: fmt.Sprintf("fetch failed for source %q", source),
		Cause:   cause,
		Context: map[string]any{"source": source},
	}
}

// Configuration reports a configuration problem.
func Configuration(message string) *Error {
	return &Error{Type: TypeConfiguration, Message: message}
}

// Internal wraps an unexpected server-side failure.
func Internal(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// AsStructured converts any error to a structured *Error, wrapping unknown
// errors as TypeInternal.
func AsStructured(err error) *Error {
	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}
	return &Error{Type: TypeInternal, Message: "internal error", Cause: err}
}
