package svcerrors

import (
	"errors"
	"fmt"
)

const (
	categoryInvalidArgument  = "invalid_argument"
	categoryResourceConflict = "resource_conflict"
	categoryNotFound         = "not_found"
	categoryInternal         = "internal"
	categoryConfiguration    = "configuration"
	categoryTransportFailure = "transport_failure"
	categoryLogicalEmpty     = "logical_empty"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

// NewInvalidArgumentError creates a new ServiceError with category invalid_argument.
func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInvalidArgument,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 400,
	}
}

// NewInternalError creates a new ServiceError with category internal.
func NewInternalError(code string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInternal,
		Code:           code,
		Message:        "internal server error",
		Cause:          cause,
		HttpStatusCode: 500,
	}
}

// NewInternalErrorUndefined creates a new ServiceError with category internal and code SYS_9001.
func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

// NewResourceConflictError creates a new ServiceError with category resource_conflict.
func NewResourceConflictError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryResourceConflict,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 409,
	}
}

// NewNotFoundError creates a new ServiceError with category not_found.
func NewNotFoundError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryNotFound,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 404,
	}
}

// NewConfigurationError creates a new ServiceError with category configuration.
// Configuration errors are fatal and raised before any network activity.
func NewConfigurationError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryConfiguration,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 500,
	}
}

// NewTransportFailureError creates a new ServiceError with category transport_failure
// (network error, timeout or non-2xx upstream status).
func NewTransportFailureError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryTransportFailure,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 502,
	}
}

// NewLogicalEmptyError creates a new ServiceError with category logical_empty
// (well-formed upstream response without usable data).
func NewLogicalEmptyError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryLogicalEmpty,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 502,
	}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ServiceError represents a service-level error with category, code, message, and cause.
// It implements the error interface and supports error wrapping.
type ServiceError struct {
	Category       string // see category* constants
	Code           string // service-owned stable code (e.g. SRC_9000)
	Message        string // client-safe, human-readable
	Cause          error  // wrapped underlying error
	HttpStatusCode int    // HTTP status code
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error to support errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// As extracts a ServiceError from the error chain.
// It returns (*ServiceError, true) if err wraps a ServiceError, otherwise (nil, false).
func As(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}

func (e *ServiceError) IsConfigurationError() bool {
	return e.Category == categoryConfiguration
}

// IsDegradable reports whether the error may be absorbed by zeroing the affected
// fields instead of aborting the run.
func (e *ServiceError) IsDegradable() bool {
	return e.Category == categoryTransportFailure || e.Category == categoryLogicalEmpty
}

// IsRetryable reports whether the failed call may be attempted again.
// Only transport failures are retryable; logical empty results are final.
func (e *ServiceError) IsRetryable() bool {
	return e.Category == categoryTransportFailure
}

// CodeOf returns the ServiceError code in err's chain, or SYS_9001 when err
// does not wrap a ServiceError. Returns "" for a nil error.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if svcErr, ok := As(err); ok {
		return svcErr.Code
	}
	return errorCodeInternalUndefined
}
