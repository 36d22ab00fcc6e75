package api

import (
	"context"
	"net/http"
)

// TokenProvider resolves the bearer token attached to authenticated calls.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	TokenEnvelope(ctx context.Context) (*TokenResponse, error)
}

// TokenResponse is the body returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
	Application string `json:"application,omitempty"`
}

type clientCredentials struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Token returns the configured access token when one was supplied, otherwise
// the token obtained through a client-credentials grant. A fetched token is
// cached until ResetToken or a change of tenant credentials.
func (c *Client) Token(ctx context.Context) (string, error) {
	env, err := c.TokenEnvelope(ctx)
	if err != nil {
		return "", err
	}
	return env.AccessToken, nil
}

// TokenEnvelope is Token returning the full token response. For a supplied or
// cached token no request is made and only AccessToken is populated.
func (c *Client) TokenEnvelope(ctx context.Context) (*TokenResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.AccessToken != "" {
		return &TokenResponse{AccessToken: c.config.AccessToken}, nil
	}
	if c.token != "" {
		return &TokenResponse{AccessToken: c.token}, nil
	}

	env, err := c.requestToken(ctx, c.config)
	if err != nil {
		return nil, err
	}
	c.token = env.AccessToken
	return env, nil
}

// ResetToken drops a token obtained from the token endpoint. A supplied
// access_token is unaffected.
func (c *Client) ResetToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// requestToken runs the client-credentials grant. Callers hold c.mu.
func (c *Client) requestToken(ctx context.Context, cfg TenantConfig) (*TokenResponse, error) {
	resp, err := c.send(ctx, cfg.BaseURL(), "", Request{
		Method: http.MethodPost,
		Path:   "token",
		Body: clientCredentials{
			GrantType:    "client_credentials",
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		},
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var env TokenResponse
	if err := resp.Decode(&env); err != nil {
		return nil, err
	}
	if env.AccessToken == "" {
		return nil, &AuthError{Reason: "token response did not include access_token"}
	}
	return &env, nil
}
