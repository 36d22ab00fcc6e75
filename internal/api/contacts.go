package api

import (
	"context"
	"net/http"
	"net/url"
)

func contactPath(owner, friend string) string {
	p := userPath(owner, "contacts", "users")
	if friend != "" {
		p += "/" + url.PathEscape(friend)
	}
	return p
}

func requirePair(owner, friend string) error {
	if err := requireArg("owner", owner); err != nil {
		return err
	}
	return requireArg("friend", friend)
}

// Add makes friend a contact of owner.
func (s ContactsService) Add(ctx context.Context, owner, friend string) (*Response, error) {
	if err := requirePair(owner, friend); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodPost, Path: contactPath(owner, friend)})
}

// Remove drops friend from owner's contacts.
func (s ContactsService) Remove(ctx context.Context, owner, friend string) (*Response, error) {
	if err := requirePair(owner, friend); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodDelete, Path: contactPath(owner, friend)})
}

// List returns the usernames in owner's contact list under "data".
func (s ContactsService) List(ctx context.Context, owner string) (*Response, error) {
	if err := requireArg("owner", owner); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{Method: http.MethodGet, Path: contactPath(owner, "")})
}
