package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/99designs/keyring"

	"github.com/easemob/easemob-cli/internal/config"
	"github.com/easemob/easemob-cli/internal/iocontext"
)

// Tests run against tenant o1/a1 with a supplied token, so every route is
// "/o1/a1/<path>" and no token request is made.
const testPrefix = "/o1/a1/"

type testEnv struct {
	server *httptest.Server
	ring   *keyring.ArrayKeyring
}

// setupTestEnv points the tenant environment at a test server and isolates
// the keyring.
func setupTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ring := keyring.NewArrayKeyring(nil)
	t.Cleanup(config.SetOpenKeyring(func(keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	}))

	t.Setenv(config.EnvDomain, server.URL)
	t.Setenv(config.EnvOrg, "o1")
	t.Setenv(config.EnvApp, "a1")
	t.Setenv(config.EnvAccessToken, "test-token")
	t.Setenv(config.EnvClientID, "")
	t.Setenv(config.EnvClientSecret, "")
	t.Setenv(config.EnvProfile, "")
	t.Setenv(envOutput, "text")
	t.Setenv(envEnvFile, "")

	return &testEnv{server: server, ring: ring}
}

// setupKeyringOnly isolates the keyring and clears tenant variables, for
// commands that manage profiles.
func setupKeyringOnly(t *testing.T) *keyring.ArrayKeyring {
	t.Helper()
	ring := keyring.NewArrayKeyring(nil)
	t.Cleanup(config.SetOpenKeyring(func(keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	}))
	for _, key := range []string{config.EnvDomain, config.EnvOrg, config.EnvApp, config.EnvAccessToken, config.EnvClientID, config.EnvClientSecret, config.EnvProfile, envEnvFile} {
		t.Setenv(key, "")
	}
	t.Setenv(envOutput, "text")
	return ring
}

// runCmd executes the CLI with buffered streams.
func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return runCmdWithInput(t, "", args...)
}

func runCmdWithInput(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ctx := iocontext.WithIO(context.Background(), &iocontext.IO{
		Out:    &out,
		ErrOut: &errOut,
		In:     strings.NewReader(stdin),
	})
	err = Execute(ctx, args)
	return out.String(), errOut.String(), err
}

// jsonResponse returns a handler writing body with the given status.
func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// routeHandler routes "METHOD path" to handlers and records every request.
// Paths are relative to the tenant base URL.
type routeHandler struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recordedRequest
}

func newRouteHandler() *routeHandler {
	return &routeHandler{routes: make(map[string]http.HandlerFunc)}
}

func (rh *routeHandler) On(method, path string, handler http.HandlerFunc) *routeHandler {
	rh.routes[method+" "+testPrefix+path] = handler
	return rh
}

func (rh *routeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rh.mu.Lock()
	rh.requests = append(rh.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	handler, ok := rh.routes[r.Method+" "+r.URL.EscapedPath()]
	rh.mu.Unlock()

	if !ok {
		jsonResponse(http.StatusNotFound, `{"error":"route_not_found","error_description":"`+r.Method+" "+r.URL.Path+`"}`)(w, r)
		return
	}
	handler(w, r)
}

func (rh *routeHandler) last(t *testing.T) recordedRequest {
	t.Helper()
	rh.mu.Lock()
	defer rh.mu.Unlock()
	if len(rh.requests) == 0 {
		t.Fatal("no request recorded")
	}
	return rh.requests[len(rh.requests)-1]
}

func (rh *routeHandler) count() int {
	rh.mu.Lock()
	defer rh.mu.Unlock()
	return len(rh.requests)
}

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("invalid JSON output %q: %v", s, err)
	}
	return m
}
