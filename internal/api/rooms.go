package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// RoomSpec describes a chat room to create.
type RoomSpec struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MaxUsers    int      `json:"maxusers,omitempty"`
	Owner       string   `json:"owner"`
	Members     []string `json:"members,omitempty"`
}

// RoomUpdate holds the mutable room attributes. Zero values are omitted.
type RoomUpdate struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MaxUsers    int    `json:"maxusers,omitempty"`
}

func roomPath(id string, rest ...string) string {
	p := "chatrooms/" + url.PathEscape(id)
	if len(rest) > 0 {
		p += "/" + strings.Join(rest, "/")
	}
	return p
}

// List retrieves the application's chat rooms.
func (s RoomsService) List(ctx context.Context, opts ListOptions) (*Response, error) {
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: "chatrooms", Query: opts.query()})
}

// Get retrieves one chat room.
func (s RoomsService) Get(ctx context.Context, id string) (*Response, error) {
	if err := requireArg("room_id", id); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: roomPath(id)})
}

// Create creates a chat room owned by spec.Owner.
func (s RoomsService) Create(ctx context.Context, spec RoomSpec) (*Response, error) {
	if err := requireArg("name", spec.Name); err != nil {
		return nil, err
	}
	if err := requireArg("owner", spec.Owner); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodPost, Path: "chatrooms", Body: spec})
}

// Update changes room attributes.
func (s RoomsService) Update(ctx context.Context, id string, upd RoomUpdate) (*Response, error) {
	if err := requireArg("room_id", id); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodPut, Path: roomPath(id), Body: upd})
}

// Delete removes a chat room.
func (s RoomsService) Delete(ctx context.Context, id string) (*Response, error) {
	if err := requireArg("room_id", id); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodDelete, Path: roomPath(id)})
}

// Members lists the room's members.
func (s RoomsService) Members(ctx context.Context, id string) (*Response, error) {
	if err := requireArg("room_id", id); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: roomPath(id, "users")})
}

// AddMember adds one user to the room.
func (s RoomsService) AddMember(ctx context.Context, id, username string) (*Response, error) {
	if err := requireMember("room_id", id, username); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodPost, Path: roomPath(id, "users", url.PathEscape(username))})
}

// RemoveMember removes one user from the room.
func (s RoomsService) RemoveMember(ctx context.Context, id, username string) (*Response, error) {
	if err := requireMember("room_id", id, username); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodDelete, Path: roomPath(id, "users", url.PathEscape(username))})
}

// JoinedBy lists the rooms a user has joined.
func (s RoomsService) JoinedBy(ctx context.Context, username string) (*Response, error) {
	if err := requireArg("username", username); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: userPath(username, "joined_chatrooms")})
}
