package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// SuccessHook runs after a request succeeded, with the unwrapped payload.
// Hooks run in order; the first error is returned to the caller.
type SuccessHook func(ctx context.Context, payload json.RawMessage) error

// TokenExtractor pulls an access token out of a response payload. It returns
// "" when the payload carries no token.
type TokenExtractor func(payload json.RawMessage) (string, error)

// CaptureAccessToken returns a hook that stores the extracted token in the
// client's token store. Login, registration and token refresh use it to chain
// authentication state forward.
func (c *Client) CaptureAccessToken(extract TokenExtractor) SuccessHook {
	return func(_ context.Context, payload json.RawMessage) error {
		token, err := extract(payload)
		if err != nil {
			return err
		}
		if token != "" {
			c.tokens.SetAccessToken(token)
			c.logger.Debug().Msg("access token updated")
		}
		return nil
	}
}

// TokenAt returns an extractor reading a string at the given object path,
// e.g. TokenAt("tokens", "accessToken").
func TokenAt(path ...string) TokenExtractor {
	return func(payload json.RawMessage) (string, error) {
		cur := payload
		for _, key := range path {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(cur, &obj); err != nil || obj == nil {
				return "", nil
			}
			next, ok := obj[key]
			if !ok {
				return "", nil
			}
			cur = next
		}
		var token string
		if err := json.Unmarshal(cur, &token); err != nil {
			return "", fmt.Errorf("decode access token: %w", err)
		}
		return token, nil
	}
}
