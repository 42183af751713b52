package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Option configures the API client.
type Option func(*Config)

// WithBaseURL sets the base URL for the API client.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithRetries sets the maximum number of retries. Negative disables retries.
func WithRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithRetryDelay sets the backoff base delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		c.RetryDelay = d
	}
}

// WithRetryOn sets the status codes that trigger a retry.
func WithRetryOn(statusCodes ...int) Option {
	return func(c *Config) {
		c.RetryOn = statusCodes
	}
}

// WithRetryConfig replaces the retry policy.
func WithRetryConfig(rc *RetryConfig) Option {
	return func(c *Config) {
		c.Retry = rc
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = hc
	}
}

// WithTokenStore sets the bearer token store.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Config) {
		c.Tokens = ts
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = &l
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithRateLimiter sets a client-side rate limiter.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Config) {
		c.RateLimiter = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}
