package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// opCase describes the single HTTP call an operation is expected to make.
type opCase struct {
	name   string
	call   func(ctx context.Context, c *Client) (*Response, error)
	method string
	path   string
	body   string // compared with JSONEq; empty means no body
	query  map[string]string
	noAuth bool
}

func runOpCases(t *testing.T, cases []opCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server, rec := newRecordingServer(t, jsonHandler(http.StatusOK, `{"action":"ok","entities":[]}`))
			client := newTestClient(server.URL, "test-token")

			resp, err := tc.call(context.Background(), client)
			require.NoError(t, err)
			require.True(t, resp.OK())

			reqs := rec.all()
			require.Len(t, reqs, 1)
			req := reqs[0]
			assert.Equal(t, tc.method, req.Method)
			assert.Equal(t, tc.path, req.Path)
			if tc.noAuth {
				assert.Empty(t, req.Header.Get("Authorization"))
			} else {
				assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
			}
			if tc.body == "" {
				assert.Empty(t, req.Body)
			} else {
				assert.JSONEq(t, tc.body, string(req.Body))
			}
			for k, v := range tc.query {
				assert.Equal(t, v, req.Query.Get(k), "query %s", k)
			}
		})
	}
}

// validationCase is an operation that must fail before any request.
type validationCase struct {
	name  string
	call  func(ctx context.Context, c *Client) (*Response, error)
	field string
}

func runValidationCases(t *testing.T, cases []validationCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server, rec := newRecordingServer(t, jsonHandler(http.StatusOK, `{}`))
			client := newTestClient(server.URL, "test-token")

			resp, err := tc.call(context.Background(), client)
			assert.Nil(t, resp)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Empty(t, rec.all())
		})
	}
}
