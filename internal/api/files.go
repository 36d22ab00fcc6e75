package api

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
)

// statFile is replaced in tests.
var statFile = os.Stat

// Upload sends a local file to the platform's file store. A missing path or
// a directory yields a *NotFoundError; other stat failures are returned
// wrapped. Either way nothing is sent.
//
// The response entities carry the uuid and share-secret needed by Download.
func (s FilesService) Upload(ctx context.Context, path string) (*Response, error) {
	info, err := statFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &NotFoundError{Path: path}
	case err != nil:
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	case info.IsDir():
		return nil, &NotFoundError{Path: path}
	}
	return s.r.Dispatch(ctx, Request{
		Method:  http.MethodPost,
		Path:    "chatfiles",
		File:    path,
		Headers: []Header{{Name: "restrict-access", Value: "true"}},
	})
}

// Download fetches a stored file. The payload is in Response.Body; it is
// not JSON-decoded. The call is bounded by DownloadTimeout.
func (s FilesService) Download(ctx context.Context, uuid, shareSecret string) (*Response, error) {
	if err := requireArg("uuid", uuid); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{
		Method:  http.MethodGet,
		Path:    "chatfiles/" + url.PathEscape(uuid),
		Headers: []Header{{Name: "share-secret", Value: shareSecret}},
		Timeout: DownloadTimeout,
		Raw:     true,
	})
}

// UploadedFile is one entity of an upload response.
type UploadedFile struct {
	UUID        string `json:"uuid"`
	Type        string `json:"type"`
	ShareSecret string `json:"share-secret"`
}
