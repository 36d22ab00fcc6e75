package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultListLimit is the page size used when ListOptions.Limit is zero.
const DefaultListLimit = 10

// UserCredentials is one entry of a registration request.
type UserCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname,omitempty"`
}

// User is an entity as returned in the "entities" array.
type User struct {
	UUID      string `json:"uuid"`
	Type      string `json:"type"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname,omitempty"`
	Activated bool   `json:"activated"`
	Created   int64  `json:"created"`
	Modified  int64  `json:"modified"`
}

// ListOptions controls cursor pagination.
type ListOptions struct {
	Limit  int
	Cursor string
}

func (o ListOptions) query() url.Values {
	limit := o.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if o.Cursor != "" {
		q.Set("cursor", o.Cursor)
	}
	return q
}

func userPath(name string, rest ...string) string {
	p := "users/" + url.PathEscape(name)
	for _, s := range rest {
		p += "/" + s
	}
	return p
}

// PublicRegister creates a user without a bearer token. It only succeeds on
// applications configured for open registration.
func (s UsersService) PublicRegister(ctx context.Context, name, password, nickname string) (*Response, error) {
	if err := requireArg("username", name); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   "users",
		Body:   UserCredentials{Username: name, Password: password, Nickname: nickname},
		NoAuth: true,
	})
}

// Register creates a single user.
func (s UsersService) Register(ctx context.Context, name, password string) (*Response, error) {
	if err := requireArg("username", name); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   "users",
		Body:   map[string]string{"username": name, "password": password},
	})
}

// RegisterBatch creates several users in one call. The request body is the
// users array itself.
func (s UsersService) RegisterBatch(ctx context.Context, users []UserCredentials) (*Response, error) {
	if len(users) == 0 {
		return nil, &ValidationError{Field: "users", Reason: "must not be empty"}
	}
	for _, u := range users {
		if err := requireArg("username", u.Username); err != nil {
			return nil, err
		}
		if err := requireArg("password", u.Password); err != nil {
			return nil, err
		}
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   "users",
		Body:   users,
	})
}

// Get retrieves one user.
func (s UsersService) Get(ctx context.Context, name string) (*Response, error) {
	if err := requireArg("username", name); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: userPath(name)})
}

// List retrieves one page of users. Pass the returned Response.Cursor()
// as opts.Cursor to fetch the next page.
func (s UsersService) List(ctx context.Context, opts ListOptions) (*Response, error) {
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: "users", Query: opts.query()})
}

// Delete removes a user. The platform also deletes every group and chat
// room the user owns.
func (s UsersService) Delete(ctx context.Context, name string) (*Response, error) {
	if err := requireArg("username", name); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodDelete, Path: userPath(name)})
}

// ChangePassword resets a user's password.
func (s UsersService) ChangePassword(ctx context.Context, name, newPassword string) (*Response, error) {
	if err := requireArg("username", name); err != nil {
		return nil, err
	}
	if err := requireArg("password", newPassword); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodPut,
		Path:   userPath(name, "password"),
		Body:   map[string]string{"newpassword": newPassword},
	})
}

// ChangeNickname sets the push nickname shown by the console.
func (s UsersService) ChangeNickname(ctx context.Context, name, nickname string) (*Response, error) {
	if err := requireArg("username", name); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodPut,
		Path:   userPath(name),
		Body:   map[string]string{"nickname": nickname},
	})
}

// Disconnect forces every session of the user offline.
func (s UsersService) Disconnect(ctx context.Context, name string) (*Response, error) {
	if err := requireArg("username", name); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: userPath(name, "disconnect")})
}

// Status reports whether the user is online.
func (s UsersService) Status(ctx context.Context, name string) (*Response, error) {
	if err := requireArg("username", name); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: userPath(name, "status")})
}
