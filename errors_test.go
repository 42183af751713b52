package reshadx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrMissingAPIKey,
		ErrUnknownEnvironment,
		ErrSyncFailed,
		ErrValidation,
		ErrAuthentication,
		ErrNotFound,
		ErrAccountNotFound,
		ErrTransactionNotFound,
		ErrWebhookNotFound,
		ErrItemNotFound,
		ErrRateLimited,
		ErrServer,
		ErrTimeout,
		ErrNetwork,
	}

	for _, err := range sentinels {
		if err == nil {
			t.Error("sentinel error should not be nil")
		}
		if err.Error() == "" {
			t.Errorf("sentinel error %v should have a message", err)
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		auth       bool
		rateLimit  bool
		network    bool
	}{
		{"validation", &Error{Code: CodeValidation, StatusCode: 400}, true, false, false, false},
		{"invalid credentials", &Error{Code: CodeInvalidCredentials, StatusCode: 401}, false, true, false, false},
		{"invalid token", &Error{Code: CodeInvalidToken, StatusCode: 401}, false, true, false, false},
		{"token expired", &Error{Code: CodeTokenExpired, StatusCode: 401}, false, true, false, false},
		{"rate limited", &Error{Code: CodeRateLimitExceeded, StatusCode: 429}, false, false, true, false},
		{"timeout", &Error{Code: CodeTimeout}, false, false, false, true},
		{"network", &Error{Code: CodeNetwork}, false, false, false, true},
		{"server", &Error{Code: CodeServer, StatusCode: 500}, false, false, false, false},
		{"wrapped auth", fmt.Errorf("login: %w", &Error{Code: CodeAuthentication, StatusCode: 401}), false, true, false, false},
		{"plain error", errors.New("boom"), false, false, false, false},
		{"nil", nil, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.validation {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.validation)
			}
			if got := IsAuthError(tt.err); got != tt.auth {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.auth)
			}
			if got := IsRateLimitError(tt.err); got != tt.rateLimit {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.rateLimit)
			}
			if got := IsNetworkError(tt.err); got != tt.network {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.network)
			}
		})
	}
}

func TestNotFound_ResourceDifferentiation(t *testing.T) {
	api := newFakeAPI(t, http.StatusNotFound, `{"success":false,"error":{"code":"NOT_FOUND","message":"Not found"}}`)
	c := api.client()
	ctx := context.Background()

	_, accountErr := c.Accounts.Get(ctx, "acc_1")
	_, txnErr := c.Transactions.Get(ctx, "txn_1")
	_, webhookErr := c.Webhooks.Get(ctx, "wh_1")
	_, itemErr := c.Items.Get(ctx, "item_1")
	_, creditErr := c.CreditScore.Get(ctx)

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"account", accountErr, ErrAccountNotFound},
		{"transaction", txnErr, ErrTransactionNotFound},
		{"webhook", webhookErr, ErrWebhookNotFound},
		{"item", itemErr, ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.target)
			}
			if !errors.Is(tt.err, ErrNotFound) {
				t.Errorf("errors.Is(%v, ErrNotFound) = false, want true", tt.err)
			}
			for _, other := range tests {
				if other.target != tt.target && errors.Is(tt.err, other.target) {
					t.Errorf("errors.Is(%v, %v) = true, want false", tt.err, other.target)
				}
			}
		})
	}

	if !errors.Is(creditErr, ErrNotFound) {
		t.Errorf("untagged 404 should match ErrNotFound, got %v", creditErr)
	}
	if errors.Is(creditErr, ErrAccountNotFound) {
		t.Error("untagged 404 should not match ErrAccountNotFound")
	}
}

func TestErrorResponse_Fields(t *testing.T) {
	api := newFakeAPI(t, http.StatusBadRequest, `{
		"success": false,
		"error": {"code": "VALIDATION_ERROR", "message": "amount must be positive", "field": "amount", "details": {"min": 1}},
		"requestId": "req-123"
	}`)

	_, err := api.client().Risk.Assess(context.Background(), RiskAssessmentParams{
		Amount:    100,
		AccountID: "acc_1",
		DeviceFingerprint: DeviceFingerprint{
			DeviceID:  "dev_1",
			IPAddress: "10.0.0.1",
			UserAgent: "test",
		},
	})

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Code != CodeValidation {
		t.Errorf("Code = %s, want %s", apiErr.Code, CodeValidation)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Field != "amount" {
		t.Errorf("Field = %q, want amount", apiErr.Field)
	}
	if apiErr.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want req-123", apiErr.RequestID)
	}
	if apiErr.Details["min"] != float64(1) {
		t.Errorf("Details = %v", apiErr.Details)
	}
	if api.count() != 1 {
		t.Errorf("requests = %d, want 1 (4xx is never retried)", api.count())
	}
}

func TestRateLimitError_RetryAfter(t *testing.T) {
	server := newFakeAPI(t, http.StatusTooManyRequests, `{"success":false,"error":{"code":"RATE_LIMIT_EXCEEDED","message":"slow down"}}`)
	c := server.client(WithRetries(-1))

	_, err := c.Items.List(context.Background())
	if !IsRateLimitError(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.RetryAfter != 0 {
		t.Errorf("RetryAfter = %v without a header, want 0", apiErr.RetryAfter)
	}
}
