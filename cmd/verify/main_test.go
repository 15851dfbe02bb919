package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikequentel/xengage/internal/cliutil"
	"github.com/mikequentel/xengage/internal/xapi"
)

// rewriteTransport points the fixed v1.1 host at a local test server.
type rewriteTransport struct {
	base   http.RoundTripper
	target string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = strings.TrimPrefix(rt.target, "http://")
	return rt.base.RoundTrip(req)
}

func clearXEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"X_CONSUMER_KEY", "X_CONSUMER_SECRET", "X_ACCESS_TOKEN", "X_ACCESS_TOKEN_SECRET",
		"X_USER_ID", "X_PROXY_URL", "X_API_BASE", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func writeEnv(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

const secrets = "X_CONSUMER_KEY=ck\nX_CONSUMER_SECRET=cs\nX_ACCESS_TOKEN=at\nX_ACCESS_TOKEN_SECRET=as\n"

func rewriteTo(t *testing.T, status int, body string) xapi.Option {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.1/account/verify_credentials.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return xapi.WithTransport(rewriteTransport{base: http.DefaultTransport, target: srv.URL})
}

const account = `{"id":42,"id_str":"42","screen_name":"gopher","name":"Gopher","followers_count":900}`

func TestRun_Verified(t *testing.T) {
	clearXEnv(t)
	env := writeEnv(t, secrets+"X_USER_ID=42\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"verify", "--env", env}, &stdout, &stderr, rewriteTo(t, http.StatusOK, account))
	require.Equal(t, cliutil.ExitOK, code, stderr.String())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &raw))
	assert.Equal(t, "42", raw["id"])
	assert.Equal(t, "gopher", raw["screen_name"])
	assert.Equal(t, float64(900), raw["followers_count"])
	assert.Equal(t, true, raw["user_id_match"])
}

func TestRun_UserIDMismatch(t *testing.T) {
	clearXEnv(t)
	env := writeEnv(t, secrets+"X_USER_ID=7\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"verify", "--env", env}, &stdout, &stderr, rewriteTo(t, http.StatusOK, account))
	require.Equal(t, cliutil.ExitOK, code, stderr.String())

	var out output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	require.NotNil(t, out.UserIDMatch)
	assert.False(t, *out.UserIDMatch)
	assert.Equal(t, "7", out.ConfiguredUserID)
	assert.Contains(t, stderr.String(), "level=warning")
}

func TestRun_UserIDOptional(t *testing.T) {
	clearXEnv(t)
	env := writeEnv(t, secrets)

	var stdout, stderr bytes.Buffer
	code := run([]string{"verify", "--env", env}, &stdout, &stderr, rewriteTo(t, http.StatusOK, account))
	require.Equal(t, cliutil.ExitOK, code, stderr.String())
	assert.NotContains(t, stdout.String(), "user_id_match")
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   int
	}{
		{"unauthorized", http.StatusUnauthorized, `{"errors":[{"code":89,"message":"Invalid or expired token."}]}`, cliutil.ExitAuth},
		{"rate limited", http.StatusTooManyRequests, ``, cliutil.ExitRateLimited},
		{"server error", http.StatusServiceUnavailable, `{"errors":[{"code":130,"message":"Over capacity"}]}`, cliutil.ExitAPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearXEnv(t)
			env := writeEnv(t, secrets)

			var stdout, stderr bytes.Buffer
			code := run([]string{"verify", "--env", env}, &stdout, &stderr, rewriteTo(t, tt.status, tt.body))
			assert.Equal(t, tt.want, code)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_MissingSecrets(t *testing.T) {
	clearXEnv(t)
	env := writeEnv(t, "X_CONSUMER_KEY=ck\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"verify", "--env", env}, &stdout, &stderr)
	assert.Equal(t, cliutil.ExitMissingEnv, code)
	assert.Contains(t, stderr.String(), "X_ACCESS_TOKEN_SECRET")
	assert.NotContains(t, stderr.String(), "X_USER_ID")
}
