package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// GroupSpec describes a group to create.
type GroupSpec struct {
	Name         string   `json:"groupname"`
	Description  string   `json:"desc"`
	Public       bool     `json:"public"`
	MaxUsers     int      `json:"maxusers,omitempty"`
	MembersOnly  bool     `json:"members_only"`
	AllowInvites bool     `json:"allowinvites"`
	Owner        string   `json:"owner"`
	Members      []string `json:"members,omitempty"`
}

// GroupUpdate holds the mutable group attributes. Zero values are omitted.
type GroupUpdate struct {
	Name        string `json:"groupname,omitempty"`
	Description string `json:"description,omitempty"`
	MaxUsers    int    `json:"maxusers,omitempty"`
}

func groupPath(id string, rest ...string) string {
	p := "chatgroups/" + url.PathEscape(id)
	if len(rest) > 0 {
		p += "/" + strings.Join(rest, "/")
	}
	return p
}

// List retrieves one page of the application's groups.
func (s GroupsService) List(ctx context.Context, opts ListOptions) (*Response, error) {
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: "chatgroups", Query: opts.query()})
}

// Get retrieves details for one or more groups.
func (s GroupsService) Get(ctx context.Context, ids ...string) (*Response, error) {
	if len(ids) == 0 {
		return nil, &ValidationError{Field: "group_id", Reason: "must not be empty"}
	}
	escaped := make([]string, len(ids))
	for i, id := range ids {
		if err := requireArg("group_id", id); err != nil {
			return nil, err
		}
		escaped[i] = url.PathEscape(id)
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: "chatgroups/" + strings.Join(escaped, ",")})
}

// Create creates a group owned by spec.Owner.
func (s GroupsService) Create(ctx context.Context, spec GroupSpec) (*Response, error) {
	if err := requireArg("groupname", spec.Name); err != nil {
		return nil, err
	}
	if err := requireArg("owner", spec.Owner); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodPost, Path: "chatgroups", Body: spec})
}

// Update changes group attributes.
func (s GroupsService) Update(ctx context.Context, id string, upd GroupUpdate) (*Response, error) {
	if err := requireArg("group_id", id); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodPut, Path: groupPath(id), Body: upd})
}

// Delete removes a group.
func (s GroupsService) Delete(ctx context.Context, id string) (*Response, error) {
	if err := requireArg("group_id", id); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodDelete, Path: groupPath(id)})
}

// Members lists the group's members.
func (s GroupsService) Members(ctx context.Context, id string) (*Response, error) {
	if err := requireArg("group_id", id); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: groupPath(id, "users")})
}

// AddMember adds one user to the group.
func (s GroupsService) AddMember(ctx context.Context, id, username string) (*Response, error) {
	if err := requireMember("group_id", id, username); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodPost, Path: groupPath(id, "users", url.PathEscape(username))})
}

// AddMembers adds several users in one call.
func (s GroupsService) AddMembers(ctx context.Context, id string, usernames []string) (*Response, error) {
	if err := requireArg("group_id", id); err != nil {
		return nil, err
	}
	if len(usernames) == 0 {
		return nil, &ValidationError{Field: "usernames", Reason: "must not be empty"}
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   groupPath(id, "users"),
		Body:   map[string][]string{"usernames": usernames},
	})
}

// RemoveMember removes one user from the group.
func (s GroupsService) RemoveMember(ctx context.Context, id, username string) (*Response, error) {
	if err := requireMember("group_id", id, username); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodDelete, Path: groupPath(id, "users", url.PathEscape(username))})
}

// JoinedBy lists the groups a user belongs to.
func (s GroupsService) JoinedBy(ctx context.Context, username string) (*Response, error) {
	if err := requireArg("username", username); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: userPath(username, "joined_chatgroups")})
}

// TransferOwner hands the group to newOwner, who must already be a member.
func (s GroupsService) TransferOwner(ctx context.Context, id, newOwner string) (*Response, error) {
	if err := requireMember("group_id", id, newOwner); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodPut,
		Path:   groupPath(id),
		Body:   map[string]string{"newowner": newOwner},
	})
}

func requireMember(idField, id, username string) error {
	if err := requireArg(idField, id); err != nil {
		return err
	}
	return requireArg("username", username)
}
