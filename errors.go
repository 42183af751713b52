package reshadx

import (
	"errors"

	"github.com/reshadx/reshadx-go/internal/apierrors"
)

// Error is the single error type returned by API calls. Use errors.As to
// inspect the code, status and request ID:
//
//	var apiErr *reshadx.Error
//	if errors.As(err, &apiErr) {
//	    log.Printf("%s (request %s)", apiErr.Code, apiErr.RequestID)
//	}
type Error = apierrors.Error

// ResourceType indicates which type of resource an error relates to.
type ResourceType = apierrors.ResourceType

// Resource types attached to not-found errors.
const (
	ResourceUnknown     = apierrors.ResourceUnknown
	ResourceAccount     = apierrors.ResourceAccount
	ResourceTransaction = apierrors.ResourceTransaction
	ResourceWebhook     = apierrors.ResourceWebhook
	ResourceItem        = apierrors.ResourceItem
)

// Error codes.
const (
	CodeValidation         = apierrors.CodeValidation
	CodeAuthentication     = apierrors.CodeAuthentication
	CodeInvalidCredentials = apierrors.CodeInvalidCredentials
	CodeInvalidToken       = apierrors.CodeInvalidToken
	CodeTokenExpired       = apierrors.CodeTokenExpired
	CodeNotFound           = apierrors.CodeNotFound
	CodeRateLimitExceeded  = apierrors.CodeRateLimitExceeded
	CodeServer             = apierrors.CodeServer
	CodeTimeout            = apierrors.CodeTimeout
	CodeNetwork            = apierrors.CodeNetwork
	CodeUnknown            = apierrors.CodeUnknown
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnknownEnvironment is returned for an environment other than
	// production or sandbox.
	ErrUnknownEnvironment = errors.New("unknown environment")

	// ErrSyncFailed is returned by ItemsService.WaitForSync when the sync job
	// ends in the failed state.
	ErrSyncFailed = errors.New("item sync failed")

	ErrValidation          = apierrors.ErrValidation
	ErrAuthentication      = apierrors.ErrAuthentication
	ErrNotFound            = apierrors.ErrNotFound
	ErrAccountNotFound     = apierrors.ErrAccountNotFound
	ErrTransactionNotFound = apierrors.ErrTransactionNotFound
	ErrWebhookNotFound     = apierrors.ErrWebhookNotFound
	ErrItemNotFound        = apierrors.ErrItemNotFound
	ErrRateLimited         = apierrors.ErrRateLimited
	ErrServer              = apierrors.ErrServer
	ErrTimeout             = apierrors.ErrTimeout
	ErrNetwork             = apierrors.ErrNetwork
)

// IsValidationError reports whether err is a request validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsRateLimitError reports whether err is a rate limit rejection.
func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNetworkError reports whether err is a connection failure or timeout.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout)
}
