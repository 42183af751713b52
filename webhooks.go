package reshadx

import (
	"context"

	"github.com/reshadx/reshadx-go/internal/api"
)

// Webhook is a registered webhook endpoint. Secret signs every delivery.
type Webhook struct {
	WebhookID       string   `json:"webhookId"`
	UserID          string   `json:"userId"`
	URL             string   `json:"url"`
	Events          []string `json:"events"`
	Secret          string   `json:"secret"`
	Status          string   `json:"status"`
	Description     string   `json:"description,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	LastTriggeredAt string   `json:"lastTriggeredAt,omitempty"`
}

// WebhookDelivery is one attempt to deliver an event to a webhook.
type WebhookDelivery struct {
	DeliveryID   string         `json:"deliveryId"`
	WebhookID    string         `json:"webhookId"`
	Event        string         `json:"event"`
	Payload      map[string]any `json:"payload"`
	Status       string         `json:"status"`
	Attempts     int            `json:"attempts"`
	SentAt       string         `json:"sentAt,omitempty"`
	ResponseCode int            `json:"responseCode,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// WebhookDeliveries is one page of deliveries.
type WebhookDeliveries struct {
	Deliveries []WebhookDelivery `json:"deliveries"`
	Pagination Pagination        `json:"pagination"`
}

// CreateWebhookParams are the inputs to WebhooksService.Create.
type CreateWebhookParams struct {
	URL         string   `json:"url" validate:"required,http_url"`
	Events      []string `json:"events" validate:"required,min=1,dive,required"`
	Description string   `json:"description,omitempty"`
}

// UpdateWebhookParams holds webhook changes. Zero fields are left unchanged.
type UpdateWebhookParams struct {
	URL         string   `json:"url,omitempty" validate:"omitempty,http_url"`
	Events      []string `json:"events,omitempty" validate:"omitempty,dive,required"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// DeliveryListParams filters WebhooksService.Deliveries. Page defaults to 1
// and Limit to 50.
type DeliveryListParams struct {
	Status string `json:"status"`
	Page   int    `json:"page" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=0"`
}

// WebhooksService manages webhook subscriptions and their deliveries.
type WebhooksService struct{ service }

// Create registers a webhook endpoint. The returned Secret is needed to
// verify deliveries.
func (s *WebhooksService) Create(ctx context.Context, params CreateWebhookParams) (*Webhook, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return s.webhook(ctx, &api.Request{Method: "POST", Path: "/webhooks", Body: params})
}

// List returns all webhooks of the current user.
func (s *WebhooksService) List(ctx context.Context) ([]Webhook, error) {
	var hooks []Webhook
	req := &api.Request{Method: "GET", Path: "/webhooks"}
	if err := s.member(ctx, req, "webhooks", &hooks, ResourceWebhook); err != nil {
		return nil, err
	}
	return hooks, nil
}

// Get returns a webhook by ID.
func (s *WebhooksService) Get(ctx context.Context, webhookID string) (*Webhook, error) {
	if err := requireID("webhookId", webhookID); err != nil {
		return nil, err
	}
	return s.webhook(ctx, &api.Request{Method: "GET", Path: resourcePath("/webhooks", webhookID)})
}

// Update changes a webhook.
func (s *WebhooksService) Update(ctx context.Context, webhookID string, params UpdateWebhookParams) (*Webhook, error) {
	if err := requireID("webhookId", webhookID); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return s.webhook(ctx, &api.Request{Method: "PATCH", Path: resourcePath("/webhooks", webhookID), Body: params})
}

// Delete removes a webhook.
func (s *WebhooksService) Delete(ctx context.Context, webhookID string) error {
	if err := requireID("webhookId", webhookID); err != nil {
		return err
	}
	req := &api.Request{Method: "DELETE", Path: resourcePath("/webhooks", webhookID)}
	return s.do(ctx, req, nil, ResourceWebhook)
}

// Test sends a test event to the webhook.
func (s *WebhooksService) Test(ctx context.Context, webhookID string) (map[string]any, error) {
	if err := requireID("webhookId", webhookID); err != nil {
		return nil, err
	}
	req := &api.Request{Method: "POST", Path: resourcePath("/webhooks", webhookID, "test")}
	return s.object(ctx, req, ResourceWebhook)
}

// RotateSecret replaces the webhook signing secret. Deliveries signed with the
// old secret stop verifying.
func (s *WebhooksService) RotateSecret(ctx context.Context, webhookID string) (map[string]any, error) {
	if err := requireID("webhookId", webhookID); err != nil {
		return nil, err
	}
	req := &api.Request{Method: "POST", Path: resourcePath("/webhooks", webhookID, "rotate-secret")}
	return s.object(ctx, req, ResourceWebhook)
}

// Deliveries returns the delivery log of a webhook.
func (s *WebhooksService) Deliveries(ctx context.Context, webhookID string, params DeliveryListParams) (*WebhookDeliveries, error) {
	if err := requireID("webhookId", webhookID); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	q := pageQuery(api.Query{}, params.Page, params.Limit, defaultLimit)
	setIf(q, "status", params.Status)

	var out WebhookDeliveries
	req := &api.Request{Method: "GET", Path: resourcePath("/webhooks", webhookID, "deliveries"), Query: q}
	if err := s.do(ctx, req, &out, ResourceWebhook); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetryDelivery redelivers a failed event.
func (s *WebhooksService) RetryDelivery(ctx context.Context, webhookID, deliveryID string) (map[string]any, error) {
	if err := requireID("webhookId", webhookID); err != nil {
		return nil, err
	}
	if err := requireID("deliveryId", deliveryID); err != nil {
		return nil, err
	}
	req := &api.Request{Method: "POST", Path: resourcePath("/webhooks", webhookID, "deliveries", deliveryID, "retry")}
	return s.object(ctx, req, ResourceWebhook)
}

// VerifySignature is VerifyWebhookSignature.
func (s *WebhooksService) VerifySignature(payload []byte, signature, secret string) bool {
	return VerifyWebhookSignature(payload, signature, secret)
}

// ParsePayload is ParseWebhookPayload.
func (s *WebhooksService) ParsePayload(rawBody []byte, signature, secret string) any {
	return ParseWebhookPayload(rawBody, signature, secret)
}

func (s *WebhooksService) webhook(ctx context.Context, req *api.Request) (*Webhook, error) {
	var hook Webhook
	if err := s.member(ctx, req, "webhook", &hook, ResourceWebhook); err != nil {
		return nil, err
	}
	return &hook, nil
}
