package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/reshadx/reshadx-go/internal/apierrors"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// Base URLs per environment.
const (
	ProductionBaseURL = "https://api.reshadx.com/v1"
	SandboxBaseURL    = "https://sandbox-api.reshadx.com/v1"
)

// Defaults applied by NewClient.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
	DefaultUserAgent  = "reshadx-go/" + Version
)

// Request headers.
const (
	HeaderAPIKey        = "X-API-Key"
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)

// maxErrorBodyBytes caps how much of an error response is read.
const maxErrorBodyBytes = 1 << 20

const tracerName = "github.com/reshadx/reshadx-go"

// Config configures an API client.
type Config struct {
	// BaseURL is the API root, including the version path prefix. Required.
	BaseURL string
	// APIKey is sent in the X-API-Key header. Required.
	APIKey string
	// HTTPClient is used as-is when set; Timeout is then ignored.
	HTTPClient *http.Client
	// Timeout bounds each attempt. Zero selects DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt. Zero
	// selects DefaultMaxRetries; a negative value disables retries.
	MaxRetries int
	// RetryDelay is the backoff base. Zero selects DefaultRetryDelay.
	RetryDelay time.Duration
	// RetryOn overrides the retryable status codes.
	RetryOn []int
	// Retry replaces the whole retry policy; MaxRetries, RetryDelay and
	// RetryOn are ignored when it is set.
	Retry *RetryConfig
	// UserAgent overrides DefaultUserAgent.
	UserAgent string
	// Tokens holds the bearer token. A fresh MemoryTokenStore is used when nil.
	Tokens TokenStore
	// Logger receives debug and retry logs. Nil disables logging.
	Logger *zerolog.Logger
	// TracerProvider creates the per-request spans. Nil selects the global provider.
	TracerProvider trace.TracerProvider
	// RateLimiter, if set, is waited on before every attempt.
	RateLimiter *rate.Limiter
}

// Client is the HTTP API client. It is safe for concurrent use.
type Client struct {
	baseURL      *url.URL
	apiKey       string
	userAgent    string
	httpClient   *http.Client
	retry        *RetryConfig
	tokens       TokenStore
	logger       zerolog.Logger
	tracer       trace.Tracer
	limiter      *rate.Limiter
	newRequestID func() string
}

// Request describes one logical API operation.
type Request struct {
	Method string
	Path   string
	Query  Query
	Body   any
	// Hooks run after a successful response, in order.
	Hooks []SuccessHook
}

// NewClient creates a new API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	retry := cfg.Retry
	if retry == nil {
		retry = DefaultRetryConfig()
		switch {
		case cfg.MaxRetries < 0:
			retry.MaxRetries = 0
		case cfg.MaxRetries > 0:
			retry.MaxRetries = cfg.MaxRetries
		}
		if cfg.RetryDelay > 0 {
			retry.BaseDelay = cfg.RetryDelay
		}
		if len(cfg.RetryOn) > 0 {
			retry.StatusCodes = StatusSet(cfg.RetryOn...)
		}
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "reshadx").Logger()
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:      base,
		apiKey:       cfg.APIKey,
		userAgent:    userAgent,
		httpClient:   httpClient,
		retry:        retry,
		tokens:       tokens,
		logger:       logger,
		tracer:       tp.Tracer(tracerName, trace.WithInstrumentationVersion(Version)),
		limiter:      cfg.RateLimiter,
		newRequestID: uuid.NewString,
	}, nil
}

// New creates a new API client using functional options. The base URL
// defaults to ProductionBaseURL.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := Config{
		BaseURL: ProductionBaseURL,
		APIKey:  apiKey,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute", raw)
	}
	// The base path is a prefix: "/v1" + "accounts" must give "/v1/accounts".
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return strings.TrimSuffix(c.baseURL.String(), "/")
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// Tokens returns the client's token store.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// SetAccessToken sets the bearer token for future requests.
func (c *Client) SetAccessToken(token string) {
	c.tokens.SetAccessToken(token)
}

// ClearAccessToken removes the bearer token. Requests already dispatched keep
// the header they were built with.
func (c *Client) ClearAccessToken() {
	c.tokens.ClearAccessToken()
}

// Do executes req and decodes the unwrapped payload into out. A nil out
// discards the payload. The request's hooks run only once out has been
// decoded, so a response that fails to decode has no side effects.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	_, err := c.execute(ctx, req, out)
	return err
}

// Execute sends req, retrying transient failures, and returns the payload
// with the success envelope removed. Non-success outcomes are returned as
// *apierrors.Error.
func (c *Client) Execute(ctx context.Context, req *Request) (json.RawMessage, error) {
	return c.execute(ctx, req, nil)
}

func (c *Client) execute(ctx context.Context, req *Request, out any) (json.RawMessage, error) {
	if req == nil {
		return nil, apierrors.NewValidationError("request is nil", "")
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if !supportedMethod(method) {
		return nil, apierrors.NewValidationError(fmt.Sprintf("unsupported method %q", req.Method), "method")
	}

	target, err := c.resolveURL(req.Path, req.Query)
	if err != nil {
		return nil, &apierrors.Error{Code: apierrors.CodeValidation, Message: err.Error(), Field: "path", Err: err}
	}

	var body []byte
	if req.Body != nil && methodAllowsBody(method) {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, &apierrors.Error{
				Code:    apierrors.CodeValidation,
				Message: fmt.Sprintf("failed to marshal request body: %v", err),
				Field:   "body",
				Err:     err,
			}
		}
	}

	requestID := c.newRequestID()
	header := c.buildHeader(requestID)

	ctx, span := c.tracer.Start(ctx, "reshadx "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", target.Path),
			attribute.String("reshadx.request_id", requestID),
		),
	)
	defer span.End()

	res := c.send(ctx, method, target, header, body)
	span.SetAttributes(attribute.Int("reshadx.attempts", res.attempts))
	if res.status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", res.status))
	}
	if res.err != nil {
		span.RecordError(res.err)
		span.SetStatus(codes.Error, res.err.Error())
		return nil, res.err
	}

	if out != nil && len(res.payload) > 0 {
		if err := json.Unmarshal(res.payload, out); err != nil {
			decodeErr := &apierrors.Error{
				Code:       apierrors.CodeServer,
				Message:    fmt.Sprintf("failed to decode response: %v", err),
				StatusCode: res.status,
				Err:        err,
			}
			span.RecordError(decodeErr)
			span.SetStatus(codes.Error, decodeErr.Message)
			return nil, decodeErr
		}
	}

	for _, hook := range req.Hooks {
		if err := hook(ctx, res.payload); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	return res.payload, nil
}

type sendResult struct {
	payload  json.RawMessage
	status   int
	attempts int
	err      error
}

// send runs the attempt loop. Attempts are sequential; the same header
// snapshot and body bytes are reused for every attempt.
func (c *Client) send(ctx context.Context, method string, target *url.URL, header http.Header, body []byte) sendResult {
	log := c.logger.With().
		Str("method", method).
		Str("path", target.Path).
		Str("request_id", header.Get(HeaderRequestID)).
		Logger()

	for attempt := 0; ; attempt++ {
		res := sendResult{attempts: attempt + 1}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				res.err = contextError(ctx, err)
				return res
			}
		}

		start := time.Now()
		resp, err := c.roundTrip(ctx, method, target, header, body)
		elapsed := time.Since(start)

		if err != nil {
			if ctx.Err() != nil {
				res.err = contextError(ctx, ctx.Err())
				return res
			}
			if c.retry.ShouldRetryError(method, attempt, err) {
				delay := c.retry.Delay(attempt)
				log.Warn().Err(err).Int("attempt", attempt+1).Dur("delay", delay).Msg("request failed, retrying")
				if werr := c.retry.Wait(ctx, delay); werr != nil {
					res.err = contextError(ctx, werr)
					return res
				}
				continue
			}
			log.Debug().Err(err).Int("attempt", attempt+1).Dur("duration", elapsed).Msg("request failed")
			res.err = transportError(err)
			return res
		}

		res.status = resp.StatusCode
		log.Debug().
			Int("attempt", attempt+1).
			Int("status", resp.StatusCode).
			Dur("duration", elapsed).
			Msg("request completed")

		if resp.StatusCode < http.StatusBadRequest {
			data, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				res.err = transportError(err)
				return res
			}
			res.payload, res.err = unwrapEnvelope(resp.StatusCode, data)
			return res
		}

		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()

		if c.retry.ShouldRetryStatus(method, attempt, resp.StatusCode) {
			delay := c.retry.DelayFor(attempt, resp, time.Now())
			log.Warn().Int("attempt", attempt+1).Int("status", resp.StatusCode).Dur("delay", delay).Msg("retryable response, retrying")
			if werr := c.retry.Wait(ctx, delay); werr != nil {
				res.err = contextError(ctx, werr)
				return res
			}
			continue
		}

		res.err = parseErrorResponse(resp, data, time.Now())
		return res
	}
}

func (c *Client) roundTrip(ctx context.Context, method string, target *url.URL, header http.Header, body []byte) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header = header.Clone()
	return c.httpClient.Do(req)
}

func (c *Client) buildHeader(requestID string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", c.userAgent)
	h.Set(HeaderAPIKey, c.apiKey)
	h.Set(HeaderRequestID, requestID)
	if token := c.tokens.AccessToken(); token != "" {
		h.Set(HeaderAuthorization, "Bearer "+token)
	}
	return h
}

func (c *Client) resolveURL(path string, query Query) (*url.URL, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty request path")
	}
	ref, err := url.Parse(strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid request path: %w", err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return nil, fmt.Errorf("request path %q must be relative to the base URL", path)
	}

	u := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		values := u.Query()
		for key, vv := range query.Values() {
			for _, v := range vv {
				values.Add(key, v)
			}
		}
		u.RawQuery = values.Encode()
	}
	return u, nil
}

func supportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func methodAllowsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// unwrapEnvelope returns the "data" member of an object body, or the whole
// body when there is none.
func unwrapEnvelope(statusCode int, body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, &apierrors.Error{
			Code:       apierrors.CodeServer,
			Message:    "invalid JSON in response body",
			StatusCode: statusCode,
		}
	}
	if trimmed[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			if data, ok := obj["data"]; ok {
				return data, nil
			}
		}
	}
	return json.RawMessage(trimmed), nil
}

func parseErrorResponse(resp *http.Response, body []byte, now time.Time) error {
	var apiErr *apierrors.Error

	var env ErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		apiErr = &apierrors.Error{
			Code:       env.Error.Code,
			Message:    env.Error.Message,
			StatusCode: resp.StatusCode,
			Details:    env.Error.DetailsMap(),
			Field:      env.Error.Field,
			RequestID:  env.RequestID,
		}
		if apiErr.Code == "" {
			apiErr.Code = apierrors.CodeUnknown
		}
		if apiErr.Message == "" {
			apiErr.Message = "Unknown error"
		}
	} else {
		apiErr = apierrors.NewServerError(resp.StatusCode, body)
	}

	if apiErr.RequestID == "" {
		apiErr.RequestID = resp.Header.Get(HeaderRequestID)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		if d, ok := ParseRetryAfter(resp.Header.Get("Retry-After"), now); ok {
			apiErr.RetryAfter = d
		}
	}
	return apiErr
}

func transportError(err error) error {
	if isTimeout(err) {
		return apierrors.NewTimeoutError(err)
	}
	return apierrors.NewNetworkError("Connection error", err)
}

// contextError maps a cancelled or expired caller context.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apierrors.NewTimeoutError(err)
	case errors.Is(err, context.Canceled):
		return apierrors.NewNetworkError("Request cancelled", err)
	}
	// rate.Limiter refuses to wait past the context deadline.
	return apierrors.NewTimeoutError(err)
}
