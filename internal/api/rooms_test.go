package api

import (
	"context"
	"testing"
)

func TestRoomsOperations(t *testing.T) {
	runOpCases(t, []opCase{
		{
			name: "list",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().List(ctx, ListOptions{})
			},
			method: "GET", path: "/o1/a1/chatrooms",
			query: map[string]string{"limit": "10"},
		},
		{
			name: "get",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().Get(ctx, "777")
			},
			method: "GET", path: "/o1/a1/chatrooms/777",
		},
		{
			name: "create",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().Create(ctx, RoomSpec{Name: "lobby", Description: "hi", MaxUsers: 500, Owner: "alice"})
			},
			method: "POST", path: "/o1/a1/chatrooms",
			body: `{"name":"lobby","description":"hi","maxusers":500,"owner":"alice"}`,
		},
		{
			name: "update",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().Update(ctx, "777", RoomUpdate{Name: "hall", MaxUsers: 10})
			},
			method: "PUT", path: "/o1/a1/chatrooms/777",
			body: `{"name":"hall","maxusers":10}`,
		},
		{
			name: "delete",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().Delete(ctx, "777")
			},
			method: "DELETE", path: "/o1/a1/chatrooms/777",
		},
		{
			name: "members",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().Members(ctx, "777")
			},
			method: "GET", path: "/o1/a1/chatrooms/777/users",
		},
		{
			name: "add member",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().AddMember(ctx, "777", "bob")
			},
			method: "POST", path: "/o1/a1/chatrooms/777/users/bob",
		},
		{
			name: "remove member",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().RemoveMember(ctx, "777", "bob")
			},
			method: "DELETE", path: "/o1/a1/chatrooms/777/users/bob",
		},
		{
			name: "joined by",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.Rooms().JoinedBy(ctx, "bob")
			},
			method: "GET", path: "/o1/a1/users/bob/joined_chatrooms",
		},
	})
}

func TestRoomsValidation(t *testing.T) {
	runValidationCases(t, []validationCase{
		{"get empty", func(ctx context.Context, c *Client) (*Response, error) {
			return c.Rooms().Get(ctx, "")
		}, "room_id"},
		{"create without owner", func(ctx context.Context, c *Client) (*Response, error) {
			return c.Rooms().Create(ctx, RoomSpec{Name: "x"})
		}, "owner"},
		{"remove member without user", func(ctx context.Context, c *Client) (*Response, error) {
			return c.Rooms().RemoveMember(ctx, "777", "")
		}, "username"},
		{"joined by empty", func(ctx context.Context, c *Client) (*Response, error) {
			return c.Rooms().JoinedBy(ctx, "")
		}, "username"},
	})
}
