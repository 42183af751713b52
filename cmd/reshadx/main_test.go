package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshadx/reshadx-go"
	"github.com/reshadx/reshadx-go/internal/signature"
)

// unsetConfigEnv keeps the developer's RESHADX_* variables out of the test.
func unsetConfigEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, reshadx.EnvPrefix) {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

type apiStub struct {
	server *httptest.Server
	mu     sync.Mutex
	last   *http.Request
}

func newAPIStub(t *testing.T, status int, body string) *apiStub {
	t.Helper()
	s := &apiStub{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.last = r.Clone(context.Background())
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *apiStub) request() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func run(t *testing.T, stdin string, getenv map[string]string, args ...string) (string, string, error) {
	t.Helper()
	unsetConfigEnv(t)

	var stdout, stderr bytes.Buffer
	e := &env{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(key string) string { return getenv[key] },
	}
	root := newRootCmd(e)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestAccountsList(t *testing.T) {
	stub := newAPIStub(t, http.StatusOK, `{"success":true,"data":{"accounts":[{"accountId":"acc_1","currency":"GHS"}]}}`)

	out, _, err := run(t, "", map[string]string{"RESHADX_ACCESS_TOKEN": "tok"},
		"accounts", "list", "--item", "item_1", "--api-key", "cli-key", "--base-url", stub.server.URL+"/v1")
	require.NoError(t, err)

	req := stub.request()
	assert.Equal(t, "/v1/accounts", req.URL.Path)
	assert.Equal(t, "item_1", req.URL.Query().Get("itemId"))
	assert.Equal(t, "cli-key", req.Header.Get("X-API-Key"))
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.Contains(t, out, `"accountId": "acc_1"`)
}

func TestAccountsBalance(t *testing.T) {
	stub := newAPIStub(t, http.StatusOK, `{"success":true,"data":{"accountId":"acc_1","balance":1200}}`)

	out, _, err := run(t, "", nil, "accounts", "balance", "acc_1", "--api-key", "k", "--base-url", stub.server.URL)
	require.NoError(t, err)

	assert.Equal(t, "/accounts/acc_1/balance", stub.request().URL.Path)
	assert.Contains(t, out, `"balance": 1200`)
}

func TestTransactionsList(t *testing.T) {
	stub := newAPIStub(t, http.StatusOK, `{"success":true,"data":{"transactions":[],"pagination":{"total":0,"page":2,"limit":5}}}`)

	_, _, err := run(t, "", nil, "transactions", "list",
		"--api-key", "k", "--base-url", stub.server.URL,
		"--account", "acc_1", "--start", "2024-01-01", "--category", "FOOD", "--category", "FUEL",
		"--page", "2", "--limit", "5")
	require.NoError(t, err)

	q := stub.request().URL.Query()
	assert.Equal(t, "acc_1", q.Get("accountId"))
	assert.Equal(t, "2024-01-01", q.Get("startDate"))
	assert.Equal(t, []string{"FOOD", "FUEL"}, q["categories"])
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "5", q.Get("limit"))
}

func TestCreditScoreGet_AuthError(t *testing.T) {
	stub := newAPIStub(t, http.StatusUnauthorized, `{"success":false,"error":{"code":"TOKEN_EXPIRED","message":"Token expired"}}`)

	_, _, err := run(t, "", nil, "credit-score", "get", "--api-key", "k", "--base-url", stub.server.URL)
	require.Error(t, err)
	assert.Equal(t, ExitAuth, exitCode(err))
}

func TestLogin(t *testing.T) {
	stub := newAPIStub(t, http.StatusOK, `{"success":true,"data":{"user":{"userId":"usr_1"},"tokens":{"accessToken":"a1","refreshToken":"r1"}}}`)

	out, _, err := run(t, "", nil, "login", "--email", "ama@example.com", "--password", "pw",
		"--api-key", "k", "--base-url", stub.server.URL)
	require.NoError(t, err)

	assert.Equal(t, "/auth/login", stub.request().URL.Path)
	assert.Contains(t, out, `"accessToken": "a1"`)
}

func TestMissingAPIKey(t *testing.T) {
	_, _, err := run(t, "", nil, "credit-score", "get")
	assert.ErrorIs(t, err, reshadx.ErrMissingAPIKey)
	assert.Equal(t, ExitUsage, exitCode(err))
}

func TestWebhooksVerify(t *testing.T) {
	body := `{"event":"TRANSACTIONS_SYNC","data":{"itemId":"item_1"}}`
	sig := signature.Sign([]byte(body), []byte("whsec_cli"))

	t.Run("valid from stdin", func(t *testing.T) {
		out, _, err := run(t, body, nil, "webhooks", "verify", "--secret", "whsec_cli", "--signature", sig)
		require.NoError(t, err)
		assert.Contains(t, out, `"event": "TRANSACTIONS_SYNC"`)
	})

	t.Run("secret from env", func(t *testing.T) {
		_, _, err := run(t, body, map[string]string{"RESHADX_WEBHOOK_SECRET": "whsec_cli"}, "webhooks", "verify", "--signature", sig)
		require.NoError(t, err)
	})

	t.Run("valid from file", func(t *testing.T) {
		path := t.TempDir() + "/body.json"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		_, _, err := run(t, "", nil, "webhooks", "verify", "--secret", "whsec_cli", "--signature", sig, "--file", path)
		require.NoError(t, err)
	})

	t.Run("tampered", func(t *testing.T) {
		out, _, err := run(t, body+" ", nil, "webhooks", "verify", "--secret", "whsec_cli", "--signature", sig)
		assert.ErrorIs(t, err, errInvalidSignature)
		assert.Equal(t, ExitValidation, exitCode(err))
		assert.Empty(t, out)
	})

	t.Run("no secret", func(t *testing.T) {
		_, _, err := run(t, body, nil, "webhooks", "verify", "--signature", sig)
		assert.Equal(t, ExitUsage, exitCode(err))
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{context.Canceled, ExitInterrupt},
		{fmt.Errorf("wrapped: %w", context.Canceled), ExitInterrupt},
		{usageErrorf("bad"), ExitUsage},
		{&reshadx.Error{Code: reshadx.CodeInvalidCredentials, StatusCode: 401}, ExitAuth},
		{&reshadx.Error{Code: reshadx.CodeValidation, StatusCode: 400}, ExitValidation},
		{&reshadx.Error{Code: reshadx.CodeServer, StatusCode: 500}, ExitGeneral},
		{errors.New("other"), ExitGeneral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), "exitCode(%v)", tt.err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	l := newLogger("debug", false, &buf)
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
	l.Debug().Str("method", "GET").Msg("request")
	assert.Contains(t, buf.String(), `"method":"GET"`)

	assert.Equal(t, zerolog.InfoLevel, newLogger("loud", false, &buf).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, newLogger("", false, &buf).GetLevel())
}
