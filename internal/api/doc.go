// Package api provides the HTTP transport for the ReshADX API. It handles
// authentication headers, request and response serialization, envelope
// unwrapping, error classification, and automatic retries with exponential
// backoff for transient failures.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// Both require an API key, sent via the X-API-Key header on every request.
// When an access token is present in the client's [TokenStore] it is sent as
// a Bearer token. The token is read once per call, so every retry of that
// call carries the same header.
//
// # Retry Behavior
//
// By default, requests are retried up to 3 times for these HTTP status codes:
//
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// Connection failures are retried as well. PATCH requests are never retried.
// The delay doubles with each attempt (1s, 2s, 4s, ...) with 20% jitter, and a
// Retry-After header on 429 or 503 responses replaces the computed delay.
//
// # Responses
//
// Successful responses of the form {"success": true, "data": ...} are
// unwrapped and only the data member is returned. Error responses are parsed
// into [apierrors.Error]; bodies without the error envelope become a
// SERVER_ERROR carrying the raw body.
package api
