package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Connection/Availability errors (retryable)
const (
	// ErrCodeConnectionFailed indicates a failed connection to the database.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Query execution errors
const (
	// ErrCodeQueryFailed indicates the database rejected or aborted a query.
	ErrCodeQueryFailed ErrorCode = "QUERY_FAILED"
	// ErrCodeReleaseFailed indicates cursor/statement/connection release failed.
	ErrCodeReleaseFailed ErrorCode = "RELEASE_FAILED"
)

// Cursor errors
const (
	// ErrCodeRewindUnsupported indicates a second realization was attempted
	// on a forward-only cursor.
	ErrCodeRewindUnsupported ErrorCode = "REWIND_UNSUPPORTED"
	// ErrCodeCursorClosed indicates a stream was used after its backing
	// cursor's resources were released.
	ErrCodeCursorClosed ErrorCode = "CURSOR_CLOSED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// retryableCodes is the set of codes considered safe to retry.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
}

// IsRetryableCode reports whether the given code is considered retryable.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
