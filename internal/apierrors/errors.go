// Package apierrors provides the shared error type for the ReshADX client.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error codes returned by the API or produced by the transport.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeAuthentication     = "AUTHENTICATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeServer             = "SERVER_ERROR"
	CodeTimeout            = "TIMEOUT_ERROR"
	CodeNetwork            = "NETWORK_ERROR"
	CodeUnknown            = "UNKNOWN_ERROR"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrValidation matches request validation failures (400-class).
	ErrValidation = errors.New("validation error")

	// ErrAuthentication matches authentication failures (401).
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound matches any 404 regardless of resource.
	ErrNotFound = errors.New("resource not found")

	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrWebhookNotFound is returned when a webhook is not found.
	ErrWebhookNotFound = errors.New("webhook not found")

	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer matches 5xx and unparsable error responses.
	ErrServer = errors.New("server error")

	// ErrTimeout matches requests that timed out.
	ErrTimeout = errors.New("request timed out")

	// ErrNetwork matches connection-level failures.
	ErrNetwork = errors.New("network error")
)

// ResourceType indicates which type of resource an error relates to.
type ResourceType string

const (
	// ResourceUnknown indicates the resource type is not specified.
	ResourceUnknown ResourceType = ""
	// ResourceAccount indicates the error relates to an account.
	ResourceAccount ResourceType = "account"
	// ResourceTransaction indicates the error relates to a transaction.
	ResourceTransaction ResourceType = "transaction"
	// ResourceWebhook indicates the error relates to a webhook.
	ResourceWebhook ResourceType = "webhook"
	// ResourceItem indicates the error relates to an item.
	ResourceItem ResourceType = "item"
)

// Error is the single error type surfaced by the transport. StatusCode is 0
// when no response was received.
type Error struct {
	Code         string
	Message      string
	StatusCode   int
	Details      map[string]any
	Field        string
	RequestID    string
	RetryAfter   time.Duration
	ResourceType ResourceType
	Err          error
}

func (e *Error) Error() string {
	msg := e.Code + ": " + e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("%s (request_id: %s)", msg, e.RequestID)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching. The error code is
// checked first; the status code is used when the server sent no known code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Code == CodeValidation || (e.codeUnknown() && e.StatusCode == http.StatusBadRequest)
	case ErrAuthentication:
		return IsAuthCode(e.Code) || (e.codeUnknown() && e.StatusCode == http.StatusUnauthorized)
	case ErrNotFound:
		return e.isNotFound()
	case ErrAccountNotFound:
		return e.isNotFound() && e.ResourceType == ResourceAccount
	case ErrTransactionNotFound:
		return e.isNotFound() && e.ResourceType == ResourceTransaction
	case ErrWebhookNotFound:
		return e.isNotFound() && e.ResourceType == ResourceWebhook
	case ErrItemNotFound:
		return e.isNotFound() && e.ResourceType == ResourceItem
	case ErrRateLimited:
		return e.Code == CodeRateLimitExceeded || (e.codeUnknown() && e.StatusCode == http.StatusTooManyRequests)
	case ErrServer:
		return e.Code == CodeServer || (e.codeUnknown() && e.StatusCode >= 500)
	case ErrTimeout:
		return e.Code == CodeTimeout
	case ErrNetwork:
		return e.Code == CodeNetwork
	}
	return false
}

func (e *Error) isNotFound() bool {
	return e.Code == CodeNotFound || (e.codeUnknown() && e.StatusCode == http.StatusNotFound)
}

func (e *Error) codeUnknown() bool {
	return e.Code == "" || e.Code == CodeUnknown
}

// IsAuthCode reports whether code is one of the authentication error codes.
func IsAuthCode(code string) bool {
	switch code {
	case CodeAuthentication, CodeInvalidCredentials, CodeInvalidToken, CodeTokenExpired:
		return true
	}
	return false
}

// WithResourceType returns a copy of the error with the resource type set.
// If the error is not an *Error, it is returned unchanged.
func WithResourceType(err error, rt ResourceType) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		cp := *apiErr
		cp.ResourceType = rt
		return &cp
	}
	return err
}

// NewValidationError creates a client-side validation error for field.
func NewValidationError(message, field string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewTimeoutError creates a TIMEOUT_ERROR wrapping cause.
func NewTimeoutError(cause error) *Error {
	return &Error{
		Code:    CodeTimeout,
		Message: "Request timed out",
		Err:     cause,
	}
}

// NewNetworkError creates a NETWORK_ERROR wrapping cause.
func NewNetworkError(message string, cause error) *Error {
	if message == "" {
		message = "Connection error"
	}
	return &Error{
		Code:    CodeNetwork,
		Message: message,
		Err:     cause,
	}
}

// NewServerError creates the fallback SERVER_ERROR for a response whose body
// carried no error envelope.
func NewServerError(statusCode int, body []byte) *Error {
	return &Error{
		Code:       CodeServer,
		Message:    fmt.Sprintf("HTTP %d: %s", statusCode, string(body)),
		StatusCode: statusCode,
	}
}

// As extracts *Error from err.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
