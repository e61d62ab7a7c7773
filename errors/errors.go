// Package errors provides unified error handling for the sqlstream library.
// It implements structured error types with machine-readable codes and
// retryable detection so callers can distinguish execution failures from
// cursor-lifecycle misuse.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified library error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// ConnectionFailed creates a new AppError for a failed database connection.
func ConnectionFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: "Unable to connect to the database.",
		Retryable: true, Cause: cause,
	}
}

// Timeout creates a new AppError for an operation that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The operation took too long.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// QueryFailed creates a new AppError for a query the database rejected or aborted.
func QueryFailed(query string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeQueryFailed, Message: "Query execution failed.",
		Retryable: false, Cause: cause,
		Details: map[string]any{"query": query},
	}
}

// ReleaseFailed creates a new AppError for a failed resource release.
func ReleaseFailed(resource string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeReleaseFailed, Message: fmt.Sprintf("Failed to release %s.", resource),
		Retryable: false, Cause: cause,
		Details: map[string]any{"resource": resource},
	}
}

// RewindUnsupported creates a new AppError raised when a stream backed by a
// forward-only cursor is realized a second time.
func RewindUnsupported() *AppError {
	return &AppError{
		Code:      ErrCodeRewindUnsupported,
		Message:   "Cursor is forward-only and cannot be rewound; the stream may be realized at most once.",
		Retryable: false,
	}
}

// CursorClosed creates a new AppError raised when a stream is used after its
// backing cursor's resources were released.
func CursorClosed() *AppError {
	return &AppError{
		Code:      ErrCodeCursorClosed,
		Message:   "Cursor is closed; streams must be realized before the query scope ends.",
		Retryable: false,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}

// --- Inspection helpers ---

// IsAppError reports whether err is (or wraps) an *AppError.
func IsAppError(err error) bool {
	var ae *AppError
	return stderrors.As(err, &ae)
}

// AsAppError extracts an *AppError from err if present.
func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// GetCode returns the error code of err, or ErrCodeInternal for foreign errors.
func GetCode(err error) ErrorCode {
	if ae, ok := AsAppError(err); ok {
		return ae.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsRetryable reports whether err is marked retryable.
func IsRetryable(err error) bool {
	if ae, ok := AsAppError(err); ok {
		return ae.Retryable
	}
	return false
}
