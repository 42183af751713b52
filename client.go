package reshadx

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reshadx/reshadx-go/internal/api"
	"github.com/reshadx/reshadx-go/internal/apierrors"
)

// Version is the SDK version.
const Version = api.Version

// TokenStore holds the bearer token sent with authenticated requests.
type TokenStore = api.TokenStore

// NewMemoryTokenStore returns an in-memory TokenStore safe for concurrent use.
func NewMemoryTokenStore() TokenStore {
	return api.NewMemoryTokenStore()
}

// Client is the ReshADX API client. Resource operations are grouped into
// services reachable from its fields. It is safe for concurrent use.
type Client struct {
	apiClient *api.Client

	Auth         *AuthService
	Link         *LinkService
	Accounts     *AccountsService
	Transactions *TransactionsService
	CreditScore  *CreditScoreService
	Risk         *RiskService
	Webhooks     *WebhooksService
	Items        *ItemsService
}

// New creates a new ReshADX client with the given API key. Without options it
// targets the production environment.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{environment: EnvironmentProduction}
	for _, opt := range opts {
		opt(cfg)
	}

	baseURL := cfg.baseURL
	if baseURL == "" {
		var err error
		baseURL, err = cfg.environment.BaseURL()
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, cfg.environment)
		}
	}

	apiOpts := append([]api.Option{api.WithBaseURL(baseURL)}, cfg.apiOpts...)
	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	return newClient(apiClient), nil
}

func newClient(apiClient *api.Client) *Client {
	s := service{api: apiClient}
	return &Client{
		apiClient:    apiClient,
		Auth:         &AuthService{s},
		Link:         &LinkService{s},
		Accounts:     &AccountsService{s},
		Transactions: &TransactionsService{s},
		CreditScore:  &CreditScoreService{s},
		Risk:         &RiskService{s},
		Webhooks:     &WebhooksService{s},
		Items:        &ItemsService{s},
	}
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// SetAccessToken sets the bearer token for authenticated requests, e.g. one
// restored from storage. Login and Register set it automatically.
func (c *Client) SetAccessToken(token string) {
	c.apiClient.SetAccessToken(token)
}

// ClearAccessToken removes the bearer token.
func (c *Client) ClearAccessToken() {
	c.apiClient.ClearAccessToken()
}

// AccessToken returns the current bearer token, or "" if none is set.
func (c *Client) AccessToken() string {
	return c.apiClient.Tokens().AccessToken()
}

// service is embedded by every resource service.
type service struct {
	api *api.Client
}

// do executes req and decodes the payload into out. Errors are tagged with rt
// so resource-specific not-found sentinels match.
func (s service) do(ctx context.Context, req *api.Request, out any, rt ResourceType) error {
	err := s.api.Do(ctx, req, out)
	if err != nil && rt != ResourceUnknown {
		return apierrors.WithResourceType(err, rt)
	}
	return err
}

// member decodes a single member of an object payload into out, for
// endpoints that wrap their result as {"webhook": {...}}.
func (s service) member(ctx context.Context, req *api.Request, key string, out any, rt ResourceType) error {
	var wrapper map[string]json.RawMessage
	if err := s.do(ctx, req, &wrapper, rt); err != nil {
		return err
	}
	raw, ok := wrapper[key]
	if !ok {
		return &Error{Code: CodeServer, Message: fmt.Sprintf("response has no %q member", key)}
	}
	return decodeInto(raw, out)
}

// object executes req and returns the payload as a generic JSON object, for
// endpoints without a fixed response schema.
func (s service) object(ctx context.Context, req *api.Request, rt ResourceType) (map[string]any, error) {
	var out map[string]any
	if err := s.do(ctx, req, &out, rt); err != nil {
		return nil, err
	}
	return out, nil
}

func (s service) post(ctx context.Context, path string, body any) (map[string]any, error) {
	return s.object(ctx, &api.Request{Method: "POST", Path: path, Body: body}, ResourceUnknown)
}
