package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequester struct {
	reqs []Request
}

func (f *fakeRequester) Dispatch(_ context.Context, req Request) (*Response, error) {
	f.reqs = append(f.reqs, req)
	return &Response{StatusCode: http.StatusOK}, nil
}

func TestServicesOverCustomRequester(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRequester{}

	calls := []func() (*Response, error){
		func() (*Response, error) { return NewUsersService(fake).Get(ctx, "alice") },
		func() (*Response, error) { return NewContactsService(fake).List(ctx, "alice") },
		func() (*Response, error) { return NewFilesService(fake).Download(ctx, "u1", "s1") },
		func() (*Response, error) { return NewChatMessagesService(fake).History(ctx, "2026101812") },
		func() (*Response, error) {
			return NewMessagesService(fake).Send(ctx, TextMessage(TargetUsers, []string{"bob"}, "alice", "hi"))
		},
		func() (*Response, error) { return NewGroupsService(fake).Members(ctx, "g1") },
		func() (*Response, error) { return NewRoomsService(fake).Get(ctx, "r1") },
	}
	for _, call := range calls {
		_, err := call()
		require.NoError(t, err)
	}

	paths := make([]string, len(fake.reqs))
	for i, r := range fake.reqs {
		paths[i] = r.Path
	}
	assert.Equal(t, []string{
		"users/alice",
		"users/alice/contacts/users",
		"chatfiles/u1",
		"chatmessages/2026101812",
		"messages",
		"chatgroups/g1/users",
		"chatrooms/r1",
	}, paths)
}
