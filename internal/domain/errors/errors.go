package errors

import (
	"net/http"

	"clinicmap/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Search-related errors
	ErrSearchTermRequired = NewBaseError(
		http.StatusBadRequest,
		"SEARCH_TERM_REQUIRED",
		"A disease or specialty name is required",
		"",
	)

	ErrInvalidCoordinate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATE",
		"Latitude must be within [-90, 90] and longitude within [-180, 180]",
		"",
	)

	// Share-related errors
	ErrShareLinkUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"SHARE_LINK_UNAVAILABLE",
		"Share links are not configured",
		"",
	)

	ErrQRCodeGenerationFailed = NewBaseError(
		http.StatusInternalServerError,
		"QR_CODE_GENERATION_FAILED",
		"Failed to generate QR code",
		"",
	)

	// General errors
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Invalid input",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)
)

// RenderError represents a failure to render the map page, implementing the AppError interface
type RenderError struct {
	err     error
	details string
}

// NewRenderError creates a template rendering error
func NewRenderError(err error, details string) AppError {
	return &RenderError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *RenderError) Error() string {
	return errors.Wrap(e.err, "page rendering failed").Error()
}

// Unwrap exposes the underlying template error
func (e *RenderError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *RenderError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *RenderError) ErrorCode() string {
	return "RENDER_FAILED"
}

// Message returns the user-friendly error message
func (e *RenderError) Message() string {
	return "Failed to render page"
}

// Details returns detailed error information
func (e *RenderError) Details() string {
	return e.details
}
