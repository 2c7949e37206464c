package platform

import (
	"errors"
	"net"
	"strings"

	"github.com/aws/smithy-go"
)

// Error codes for logscout.
const (
	ErrInvalidParameter = "INVALID_PARAMETER"
	ErrRemoteAPI        = "REMOTE_API_ERROR"
	ErrQueryExecution   = "QUERY_EXECUTION_ERROR"
	ErrDocNotFound      = "DOC_NOT_FOUND"
)

// QueryError carries a logscout error code, message, and suggestion.
// The underlying cause (when any) is kept for errors.Is/As chains.
type QueryError struct {
	Code       string
	Message    string
	Suggestion string
	cause      error
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.cause
}

// NewQueryError creates a QueryError with the given code, message, and suggestion.
func NewQueryError(code, message, suggestion string) *QueryError {
	return &QueryError{Code: code, Message: message, Suggestion: suggestion}
}

// WrapQueryError creates a QueryError that wraps a remote failure.
func WrapQueryError(code, message, suggestion string, cause error) *QueryError {
	return &QueryError{Code: code, Message: message, Suggestion: suggestion, cause: cause}
}

// transientAPICodes are CloudWatch Logs error codes that a fixed-interval
// retry is allowed to absorb. Everything else aborts the caller immediately.
var transientAPICodes = map[string]bool{
	"ThrottlingException":           true,
	"ServiceUnavailableException":   true,
	"RequestTimeout":                true,
	"InternalServerError":           true,
	"ServiceQuotaExceededException": true,
}

// IsTransient reports whether err is a throttling or network-level failure
// that may succeed on a later attempt of the same call.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return transientAPICodes[apiErr.ErrorCode()]
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") ||
		strings.Contains(msg, "i/o timeout")
}

// IsQueryNotRunning reports whether err is the remote API telling us a
// StopQuery target is not in a cancellable state: already finished, already
// cancelled, or an identifier the service does not know.
func IsQueryNotRunning(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceNotFoundException":
			return true
		case "InvalidParameterException":
			return strings.Contains(strings.ToLower(apiErr.ErrorMessage()), "not running")
		}
	}
	return false
}
