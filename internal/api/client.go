package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/easemob/easemob-cli/internal/debug"
)

const (
	DefaultTimeout  = 30 * time.Second
	DownloadTimeout = 10 * time.Second
)

// Client dispatches authenticated requests for one tenant.
//
// The bearer token is resolved lazily on the first authenticated call and
// reused for the lifetime of the client. The client never retries and
// never refreshes an expired token on its own; see ResetToken.
type Client struct {
	HTTP      *http.Client
	UserAgent string

	mu     sync.Mutex
	config TenantConfig
	token  string // fetched via client credentials; AccessToken takes precedence
}

// Compile-time interface implementation checks
var (
	_ Requester     = (*Client)(nil)
	_ TokenProvider = (*Client)(nil)
)

// New creates a client for the given tenant.
func New(cfg TenantConfig) *Client {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12

	return &Client{
		config: cfg,
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
	}
}

// NewFromMap creates a client from a configuration mapping using the keys
// accepted by NewTenantConfig.
func NewFromMap(values map[string]string) *Client {
	return New(NewTenantConfig(values))
}

// Config returns a copy of the current tenant configuration.
func (c *Client) Config() TenantConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// SetConfig overwrites one configuration field by name. Unknown names are
// rejected with false and leave the client unchanged. Changing the tenant
// or the client credentials drops any fetched token.
func (c *Client) SetConfig(name, value string) bool {
	f, ok := ParseField(name)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Set(f.String(), value)
	if f.affectsToken() {
		c.token = ""
	}
	return true
}

// BaseURL returns the tenant resource root derived from the current config.
func (c *Client) BaseURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.BaseURL()
}

// Header is a single extra request header. Order is preserved.
type Header struct {
	Name  string
	Value string
}

// Request describes one call relative to the tenant base URL.
type Request struct {
	Method  string // defaults to POST
	Path    string
	Query   url.Values
	Body    any    // JSON-encoded when non-nil
	File    string // when set, sent as multipart field "file"; Body is ignored
	Headers []Header
	Timeout time.Duration // zero uses the client default
	Raw     bool          // skip JSON decoding of the response
	NoAuth  bool          // omit the bearer token
}

// Response is a completed exchange. Non-2xx statuses are returned as data.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Data       map[string]any
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Envelope decodes the error payload of a non-2xx response. It returns nil
// for successful responses.
func (r *Response) Envelope() *ErrorEnvelope {
	if r == nil || r.OK() {
		return nil
	}
	var env ErrorEnvelope
	if len(r.Body) > 0 {
		_ = json.Unmarshal(r.Body, &env)
	}
	return &env
}

// Err converts a non-2xx response into an *APIError.
func (r *Response) Err() error {
	env := r.Envelope()
	if env == nil {
		return nil
	}
	return &APIError{
		StatusCode: r.StatusCode,
		Envelope:   *env,
		RequestID:  requestIDFromHeader(r.Header),
	}
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
	}
	return nil
}

// Entities returns the "entities" array of a JSON response.
func (r *Response) Entities() []map[string]any {
	if r == nil || r.Data == nil {
		return nil
	}
	raw, ok := r.Data["entities"].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Cursor returns the pagination cursor of a list response, if any.
func (r *Response) Cursor() string {
	if r == nil || r.Data == nil {
		return ""
	}
	s, _ := r.Data["cursor"].(string)
	return s
}

// Dispatch resolves the token, sends the request, and decodes the response.
func (c *Client) Dispatch(ctx context.Context, req Request) (*Response, error) {
	var token string
	if !req.NoAuth {
		var err error
		token, err = c.Token(ctx)
		if err != nil {
			return nil, err
		}
	}
	return c.send(ctx, c.BaseURL(), token, req)
}

// send performs the HTTP exchange. It takes no locks.
func (c *Client) send(ctx context.Context, baseURL, token string, r Request) (*Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodPost
	}
	reqURL := baseURL + strings.TrimPrefix(r.Path, "/")
	if len(r.Query) > 0 {
		reqURL += "?" + r.Query.Encode()
	}

	body, err := encodeBody(r)
	if err != nil {
		return nil, err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if body.reader != nil {
		bodyReader = body.reader
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		body.close()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body.length >= 0 {
		req.ContentLength = body.length
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, h := range r.Headers {
		req.Header.Add(h.Name, h.Value)
	}
	if body.contentType != "" {
		req.Header.Set("Content-Type", body.contentType)
	}
	if !r.Raw {
		req.Header.Set("Accept", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		if debug.IsEnabled(ctx) {
			slog.Debug("request failed", "method", method, "url", reqURL, "error", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if debug.IsEnabled(ctx) {
		slog.Debug("request complete", "method", method, "url", reqURL, "status", resp.StatusCode, "bytes", len(respBody), "duration", time.Since(start))
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}
	if !r.Raw && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &out.Data); err != nil {
			// Gateways answer 5xx with HTML; the status still reaches the caller.
			if !out.OK() {
				out.Data = nil
				return out, nil
			}
			return nil, fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
		}
	}
	return out, nil
}

// requestBody is an encoded request body. length is -1 when unknown.
type requestBody struct {
	reader      io.ReadCloser
	contentType string
	length      int64
}

func (b requestBody) close() {
	if b.reader != nil {
		_ = b.reader.Close()
	}
}

func encodeBody(r Request) (requestBody, error) {
	if r.File != "" {
		return encodeMultipartFile(r.File)
	}
	if r.Body == nil {
		return requestBody{length: -1}, nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return requestBody{}, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return requestBody{
		reader:      io.NopCloser(bytes.NewReader(data)),
		contentType: "application/json",
		length:      int64(len(data)),
	}, nil
}

// multipartFile streams a single-part form: the part header, the file read
// from disk, then the closing boundary.
type multipartFile struct {
	io.Reader
	f *os.File
}

func (m multipartFile) Close() error { return m.f.Close() }

// encodeMultipartFile builds the form framing up front so the file itself is
// streamed with a known Content-Length.
func encodeMultipartFile(path string) (requestBody, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return requestBody{}, &NotFoundError{Path: path}
		}
		return requestBody{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return requestBody{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	framing := &bytes.Buffer{}
	writer := multipart.NewWriter(framing)
	if _, err := writer.CreateFormFile("file", filepath.Base(path)); err != nil {
		_ = f.Close()
		return requestBody{}, fmt.Errorf("failed to create form file %s: %w", path, err)
	}
	head := bytes.Clone(framing.Bytes())
	framing.Reset()
	if err := writer.Close(); err != nil {
		_ = f.Close()
		return requestBody{}, fmt.Errorf("failed to close multipart writer: %w", err)
	}
	tail := bytes.Clone(framing.Bytes())

	return requestBody{
		reader: multipartFile{
			Reader: io.MultiReader(bytes.NewReader(head), f, bytes.NewReader(tail)),
			f:      f,
		},
		contentType: writer.FormDataContentType(),
		length:      int64(len(head)) + info.Size() + int64(len(tail)),
	}, nil
}

func requestIDFromHeader(header http.Header) string {
	if header == nil {
		return ""
	}
	return header.Get("X-Request-Id")
}
