package api

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// RetryConfig configures retry behavior for failed HTTP requests.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the first one.
	MaxRetries int
	// BaseDelay is the initial delay between retry attempts (the backoff factor).
	BaseDelay time.Duration
	// MaxDelay is the maximum computed delay between retry attempts.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay increases after each attempt.
	Multiplier float64
	// Jitter is the randomization factor (0.0 to 1.0) added to delays
	// to prevent thundering herd.
	Jitter float64
	// MaxRetryAfter caps a server-supplied Retry-After delay. Zero means no cap.
	MaxRetryAfter time.Duration
	// StatusCodes lists response status codes that trigger a retry.
	StatusCodes map[int]bool
	// Methods lists HTTP methods eligible for retries.
	//
	// The default set includes POST: the API treats its POST endpoints as safe to
	// repeat, so a POST whose response was lost may reach the server twice.
	Methods map[string]bool
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:  DefaultMaxRetries,
		BaseDelay:   DefaultRetryDelay,
		MaxDelay:    30 * time.Second,
		Multiplier:  2.0,
		Jitter:      0.2,
		StatusCodes: StatusSet(DefaultRetryStatusCodes...),
		Methods:     MethodSet(DefaultRetryMethods...),
	}
}

// DefaultRetryStatusCodes are the response codes retried by default.
var DefaultRetryStatusCodes = []int{
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// DefaultRetryMethods are the methods retried by default. PATCH is absent.
var DefaultRetryMethods = []string{
	http.MethodHead,
	http.MethodGet,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodTrace,
	http.MethodPost,
}

// StatusSet builds a status code set.
func StatusSet(codes ...int) map[int]bool {
	set := make(map[int]bool, len(codes))
	for _, code := range codes {
		set[code] = true
	}
	return set
}

// MethodSet builds an upper-cased method set.
func MethodSet(methods ...string) map[string]bool {
	set := make(map[string]bool, len(methods))
	for _, m := range methods {
		set[strings.ToUpper(m)] = true
	}
	return set
}

// CanRetryMethod reports whether requests with method may be retried at all.
func (r *RetryConfig) CanRetryMethod(method string) bool {
	return r.Methods[strings.ToUpper(method)]
}

// ShouldRetryStatus determines if a response with statusCode should be retried.
// attempt is zero-based: 0 is the initial request.
func (r *RetryConfig) ShouldRetryStatus(method string, attempt, statusCode int) bool {
	if attempt >= r.MaxRetries || !r.CanRetryMethod(method) {
		return false
	}
	return r.StatusCodes[statusCode]
}

// ShouldRetryError determines if a connection-level failure should be retried.
func (r *RetryConfig) ShouldRetryError(method string, attempt int, err error) bool {
	if attempt >= r.MaxRetries || !r.CanRetryMethod(method) {
		return false
	}
	return isRetryableNetErr(err)
}

// Delay calculates the delay before the next retry attempt with optional jitter.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt))
	if r.MaxDelay > 0 && delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	if r.Jitter > 0 {
		jitterAmount := delay * r.Jitter
		delay = delay - jitterAmount + (rand.Float64() * 2 * jitterAmount)
	}

	return time.Duration(delay)
}

// DelayFor returns the delay before retrying after resp. A Retry-After header
// on a 429 or 503 response takes precedence over the computed backoff.
func (r *RetryConfig) DelayFor(attempt int, resp *http.Response, now time.Time) time.Duration {
	if resp != nil && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) {
		if d, ok := ParseRetryAfter(resp.Header.Get("Retry-After"), now); ok {
			if r.MaxRetryAfter > 0 && d > r.MaxRetryAfter {
				d = r.MaxRetryAfter
			}
			return d
		}
	}
	return r.Delay(attempt)
}

// Wait blocks for delay or until ctx is done.
func (r *RetryConfig) Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ParseRetryAfter parses a Retry-After value given either as delta-seconds or
// as an HTTP-date.
func ParseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := t.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

func isRetryableNetErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
