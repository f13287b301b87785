package errors

import (
	"net/http"

	"pawsync/internal/errors"
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
	// Record-related errors
	ErrRecordNotFound = NewBaseError(
		http.StatusNotFound,
		"RECORD_NOT_FOUND",
		"Record not found",
		"",
	)

	ErrDuplicateRequest = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_REQUEST",
		"A matching request already exists",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"Status is not allowed for this record",
		"",
	)

	ErrInvalidRecord = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RECORD",
		"Record is missing its owner or subject",
		"",
	)

	// Walk-related errors
	ErrWalkNotInProgress = NewBaseError(
		http.StatusConflict,
		"WALK_NOT_IN_PROGRESS",
		"Walk is already finished",
		"",
	)

	// Sync-related errors
	ErrOffline = NewBaseError(
		http.StatusServiceUnavailable,
		"OFFLINE",
		"Remote store is unreachable, the change is saved locally",
		"",
	)

	ErrRemoteSyncFailed = NewBaseError(
		http.StatusBadGateway,
		"REMOTE_SYNC_FAILED",
		"Remote store rejected the change, the change is saved locally",
		"",
	)

	// Task-related errors
	ErrTaskNotFound = NewBaseError(
		http.StatusNotFound,
		"TASK_NOT_FOUND",
		"Task not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Missing or invalid access token",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Local storage failure"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the underlying storage error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// RemoteSyncError reports a remote write that did not land. It matches its catalogue
// entry through errors.Is and unwraps to the remote store error.
type RemoteSyncError struct {
	base *BaseError
	err  error
}

// NewRemoteSyncError creates a sync error for base caused by err
func NewRemoteSyncError(base *BaseError, err error) AppError {
	return &RemoteSyncError{
		base: base,
		err:  err,
	}
}

// Error implements the error interface
func (e *RemoteSyncError) Error() string {
	if e.err == nil {
		return e.base.Error()
	}

	return e.base.Error() + ": " + e.err.Error()
}

// HTTPCode returns the HTTP status code
func (e *RemoteSyncError) HTTPCode() int {
	return e.base.HTTPCode()
}

// ErrorCode returns the business error code
func (e *RemoteSyncError) ErrorCode() string {
	return e.base.ErrorCode()
}

// Message returns the user-friendly error message
func (e *RemoteSyncError) Message() string {
	return e.base.Message()
}

// Details returns the remote store error
func (e *RemoteSyncError) Details() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

// Is matches the catalogue entry the error was built from.
func (e *RemoteSyncError) Is(target error) bool {
	return target == e.base
}

// Unwrap exposes the remote store error.
func (e *RemoteSyncError) Unwrap() error {
	return e.err
}
