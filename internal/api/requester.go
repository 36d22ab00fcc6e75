package api

import "context"

// Requester is the single dependency of every resource service: it sends a
// Request relative to the tenant base URL and returns the decoded Response.
//
// Services never talk to each other or to the token provider directly, so
// a host can compose any subset of them over one Client, or substitute a
// fake Requester in tests.
type Requester interface {
	Dispatch(ctx context.Context, req Request) (*Response, error)
}
