package api

import (
	"context"
	"net/http"
	"net/url"
)

// History fetches the archived chat messages for one time bucket. The
// platform keys archives by hour, formatted YYYYMMDDHH.
func (s ChatMessagesService) History(ctx context.Context, timeBucket string) (*Response, error) {
	if err := requireArg("time", timeBucket); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodGet,
		Path:   "chatmessages/" + url.PathEscape(timeBucket),
	})
}
