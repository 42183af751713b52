package reshadx

import (
	"encoding/json"

	"github.com/reshadx/reshadx-go/internal/signature"
)

// WebhookEvent is the envelope of a webhook delivery.
type WebhookEvent struct {
	Event     string         `json:"event"`
	WebhookID string         `json:"webhookId"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// VerifyWebhookSignature reports whether signature is the lower-case hex
// HMAC-SHA256 of payload under secret. Pass the raw request body, not a
// re-encoded copy. The comparison is constant time.
func VerifyWebhookSignature(payload []byte, signature, secret string) bool {
	return signatureValid(payload, signature, secret)
}

// ParseWebhookPayload verifies rawBody and decodes it as JSON, yielding the
// same values as json.Unmarshal into an any. It returns nil when the signature
// does not match or the body is not valid JSON.
func ParseWebhookPayload(rawBody []byte, signature, secret string) any {
	if !signatureValid(rawBody, signature, secret) {
		return nil
	}
	var payload any
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil
	}
	return payload
}

// ParseWebhookEvent is ParseWebhookPayload decoding into a WebhookEvent.
func ParseWebhookEvent(rawBody []byte, signature, secret string) *WebhookEvent {
	if !signatureValid(rawBody, signature, secret) {
		return nil
	}
	var event WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil
	}
	return &event
}

func signatureValid(payload []byte, sig, secret string) bool {
	return signature.Verify(payload, []byte(sig), []byte(secret))
}
