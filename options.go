package reshadx

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/reshadx/reshadx-go/internal/api"
)

// Environment selects the API deployment.
type Environment string

const (
	// EnvironmentProduction targets the live API.
	EnvironmentProduction Environment = "production"
	// EnvironmentSandbox targets the sandbox API with test data.
	EnvironmentSandbox Environment = "sandbox"
)

// BaseURL returns the API root for the environment.
func (e Environment) BaseURL() (string, error) {
	switch e {
	case EnvironmentProduction, "":
		return api.ProductionBaseURL, nil
	case EnvironmentSandbox:
		return api.SandboxBaseURL, nil
	}
	return "", ErrUnknownEnvironment
}

// clientConfig holds configuration for the client.
type clientConfig struct {
	environment Environment
	baseURL     string
	apiOpts     []api.Option
}

func (c *clientConfig) add(opt api.Option) {
	c.apiOpts = append(c.apiOpts, opt)
}

// Option configures the client.
type Option func(*clientConfig)

// waitConfig holds configuration for waiting on item syncs.
type waitConfig struct {
	interval    time.Duration
	maxInterval time.Duration
	timeout     time.Duration
}

// WaitOption configures ItemsService.WaitForSync.
type WaitOption func(*waitConfig)

// WithEnvironment selects production or sandbox. Ignored when WithBaseURL is
// also given.
func WithEnvironment(env Environment) Option {
	return func(c *clientConfig) {
		c.environment = env
	}
}

// WithBaseURL overrides the API root, e.g. for a local mock server. The path
// is kept as a prefix for every request.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets the timeout for each HTTP attempt.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.add(api.WithTimeout(timeout))
	}
}

// WithRetries sets the number of retries after the first attempt. A negative
// count disables retries.
// Default: 3
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.add(api.WithRetries(count))
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [429, 500, 502, 503, 504]
func WithRetryOn(statusCodes ...int) Option {
	return func(c *clientConfig) {
		c.add(api.WithRetryOn(statusCodes...))
	}
}

// WithRetryDelay sets the base backoff delay. The delay doubles on each retry.
// Default: 1 second
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.add(api.WithRetryDelay(delay))
	}
}

// WithHTTPClient sets a custom HTTP client. Its own Timeout applies instead of
// WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.add(api.WithHTTPClient(client))
	}
}

// WithTokenStore sets where the bearer token is kept. Pass the same store to
// several clients to share a session between them.
func WithTokenStore(store TokenStore) Option {
	return func(c *clientConfig) {
		c.add(api.WithTokenStore(store))
	}
}

// WithLogger sets the logger for request and retry diagnostics. Secrets are
// never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.add(api.WithLogger(logger))
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider. Defaults to the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.add(api.WithTracerProvider(tp))
	}
}

// WithRateLimit throttles outgoing attempts to rps per second with the given
// burst. Retries count against the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *clientConfig) {
		if rps <= 0 {
			c.add(api.WithRateLimiter(nil))
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.add(api.WithRateLimiter(rate.NewLimiter(rate.Limit(rps), burst)))
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.add(api.WithUserAgent(userAgent))
	}
}

// Wait options

// WithPollInterval sets the first wait between status checks. Later waits
// grow by half each time.
// Default: 2 seconds
func WithPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.interval = interval
	}
}

// WithMaxPollInterval caps the wait between status checks.
// Default: 30 seconds
func WithMaxPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.maxInterval = interval
	}
}

// WithWaitTimeout bounds the whole wait.
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}
