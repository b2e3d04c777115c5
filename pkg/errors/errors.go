package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for consistent HTTP mapping

type ErrorType int

// Request errors - the caller supplied something the proxy cannot serve
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Upstream errors - the weather provider failed or answered with an error
	ErrorTypeUpstream
	ErrorTypeUpstreamUnreachable
	ErrorTypeCache

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeUpstream:
		return "UPSTREAM_ERROR"
	case ErrorTypeUpstreamUnreachable:
		return "UPSTREAM_UNREACHABLE_ERROR"
	case ErrorTypeCache:
		return "CACHE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used across the codebase
const (
	ValidationError          = ErrorTypeValidation
	NotFoundError            = ErrorTypeNotFound
	UpstreamError            = ErrorTypeUpstream
	UpstreamUnreachableError = ErrorTypeUpstreamUnreachable
	CacheError               = ErrorTypeCache
	ConfigurationError       = ErrorTypeConfiguration
)

// AppError is the single error type crossing layer boundaries.
// Detail is surfaced to API callers; StatusCode is only set for UpstreamError.
type AppError struct {
	Type       ErrorType
	Message    string
	Detail     string
	StatusCode int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Request Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Upstream Error Constructors

// NewUpstreamError reports a non-success answer from the provider. The provider's
// status code and body are passed through to the caller.
func NewUpstreamError(message string, statusCode int, body string) *AppError {
	return &AppError{
		Type:       UpstreamError,
		Message:    message,
		Detail:     body,
		StatusCode: statusCode,
	}
}

// NewUpstreamUnreachableError reports a provider that could not be reached or
// whose answer could not be used. detail must not contain the credential.
func NewUpstreamUnreachableError(message, detail string, cause error) *AppError {
	return &AppError{
		Type:    UpstreamUnreachableError,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

func NewCacheError(message string, cause error) *AppError {
	return Wrap(CacheError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// Helper functions for error type checking

// TypeOf returns the type of the first AppError in err's chain.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

func IsUpstreamError(err error) bool {
	return TypeOf(err) == UpstreamError
}

func IsUpstreamUnreachableError(err error) bool {
	return TypeOf(err) == UpstreamUnreachableError
}

func IsCacheError(err error) bool {
	return TypeOf(err) == CacheError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}
