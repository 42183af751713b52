package reshadx

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestEnvironment_BaseURL(t *testing.T) {
	tests := []struct {
		env     Environment
		want    string
		wantErr error
	}{
		{EnvironmentProduction, "https://api.reshadx.com/v1", nil},
		{"", "https://api.reshadx.com/v1", nil},
		{EnvironmentSandbox, "https://sandbox-api.reshadx.com/v1", nil},
		{"staging", "", ErrUnknownEnvironment},
	}

	for _, tt := range tests {
		t.Run(string(tt.env), func(t *testing.T) {
			got, err := tt.env.BaseURL()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BaseURL() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BaseURL() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWithEnvironment(t *testing.T) {
	cfg := &clientConfig{}
	WithEnvironment(EnvironmentSandbox)(cfg)
	if cfg.environment != EnvironmentSandbox {
		t.Errorf("environment = %s, want sandbox", cfg.environment)
	}
}

func TestWithBaseURL(t *testing.T) {
	cfg := &clientConfig{}
	WithBaseURL("http://localhost:3000/v1")(cfg)
	if cfg.baseURL != "http://localhost:3000/v1" {
		t.Errorf("baseURL = %s, want http://localhost:3000/v1", cfg.baseURL)
	}
	if len(cfg.apiOpts) != 0 {
		t.Errorf("apiOpts length = %d, want 0", len(cfg.apiOpts))
	}
}

func TestTransportOptions(t *testing.T) {
	opts := []Option{
		WithTimeout(10 * time.Second),
		WithRetries(5),
		WithRetryOn(502, 503),
		WithRetryDelay(500 * time.Millisecond),
		WithHTTPClient(nil),
		WithTokenStore(NewMemoryTokenStore()),
		WithLogger(zerolog.Nop()),
		WithTracerProvider(nil),
		WithRateLimit(5, 2),
		WithUserAgent("my-app/1.0"),
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.apiOpts) != len(opts) {
		t.Errorf("apiOpts length = %d, want %d", len(cfg.apiOpts), len(opts))
	}
}

func TestWithRateLimit_Disabled(t *testing.T) {
	cfg := &clientConfig{}
	WithRateLimit(0, 10)(cfg)
	if len(cfg.apiOpts) != 1 {
		t.Fatalf("apiOpts length = %d, want 1", len(cfg.apiOpts))
	}
	if _, err := New("test-key", WithRateLimit(0, 0)); err != nil {
		t.Errorf("New() error = %v", err)
	}
}

func TestWaitOptions(t *testing.T) {
	cfg := &waitConfig{}
	WithPollInterval(100 * time.Millisecond)(cfg)
	WithMaxPollInterval(time.Second)(cfg)
	WithWaitTimeout(5 * time.Minute)(cfg)

	if cfg.interval != 100*time.Millisecond {
		t.Errorf("interval = %v, want 100ms", cfg.interval)
	}
	if cfg.maxInterval != time.Second {
		t.Errorf("maxInterval = %v, want 1s", cfg.maxInterval)
	}
	if cfg.timeout != 5*time.Minute {
		t.Errorf("timeout = %v, want 5m", cfg.timeout)
	}
}
