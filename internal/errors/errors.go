// Package errors provides custom error types for the opportunity risk API.
// All service-layer errors should use AppError so handlers can render a
// consistent body; internal details stay in Internal and are only logged.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code so wrapped copies compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Passthrough wraps internal and exposes its text in the message. Used for
// upstream failures where the client is expected to see the cause.
func Passthrough(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message + ": " + internal.Error(),
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Upstream CRM errors.
var (
	ErrUpstreamUnavailable = &AppError{Code: "UPSTREAM_UNAVAILABLE", Message: "Failed to connect to SAP CRM", StatusCode: http.StatusBadGateway}
	ErrUpstreamEmpty       = &AppError{Code: "UPSTREAM_EMPTY", Message: "SAP CRM returned no usable opportunities", StatusCode: http.StatusBadGateway}
)

// Opportunity errors.
var (
	ErrOpportunityNotFound = &AppError{Code: "OPPORTUNITY_NOT_FOUND", Message: "Opportunity not found in SAP CRM", StatusCode: http.StatusNotFound}
)

// Risk errors.
var (
	ErrRiskNotFound   = &AppError{Code: "RISK_NOT_FOUND", Message: "Risk not found", StatusCode: http.StatusNotFound}
	ErrImmutableField = &AppError{Code: "IMMUTABLE_FIELD", Message: "The opportunity reference of a risk cannot be changed", StatusCode: http.StatusBadRequest}
	ErrInvalidLevel   = &AppError{Code: "INVALID_LEVEL", Message: "Level must be High, Medium or Low", StatusCode: http.StatusBadRequest}
	ErrInvalidStatus  = &AppError{Code: "INVALID_STATUS", Message: "Status must be Open, Mitigated or Closed", StatusCode: http.StatusBadRequest}
)
