package api

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	server, rec := newRecordingServer(t, jsonHandler(http.StatusOK, `{"action":"post","entities":[{"uuid":"5fd74830","type":"chatfile","share-secret":"X9dIMOrcEeO"}]}`))
	client := newTestClient(server.URL, "test-token")

	resp, err := client.Files().Upload(context.Background(), path)
	require.NoError(t, err)
	require.True(t, resp.OK())

	req := rec.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/o1/a1/chatfiles", req.Path)
	assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
	assert.Equal(t, "true", req.Header.Get("restrict-access"))
	assert.Contains(t, req.Header.Get("Content-Type"), "multipart/form-data")
	assert.Contains(t, string(req.Body), "png-bytes")
	assert.Equal(t, "5fd74830", resp.Entities()[0]["uuid"])
}

func TestFilesUpload_MissingPathFailsLocally(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"nonexistent", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.bin") }},
		{"directory", func(t *testing.T) string { return t.TempDir() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, rec := newRecordingServer(t, jsonHandler(http.StatusOK, `{}`))
			// no supplied token: a token fetch would also show up as a request
			client := New(TenantConfig{DomainName: server.URL, OrgName: "o1", AppName: "a1", ClientID: "c", ClientSecret: "s"})

			path := tt.path(t)
			resp, err := client.Files().Upload(context.Background(), path)
			assert.Nil(t, resp)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFileNotFound))
			assert.True(t, IsNotFoundError(err))

			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, path, nf.Path)
			assert.Empty(t, rec.all())
		})
	}
}

func TestFilesUpload_StatErrorsStopBeforeNetwork(t *testing.T) {
	original := statFile
	t.Cleanup(func() { statFile = original })

	tests := []struct {
		name     string
		statErr  error
		notFound bool
	}{
		{"missing", fs.ErrNotExist, true},
		{"permission denied", os.ErrPermission, false},
		{"io error", errors.New("input/output error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statFile = func(string) (os.FileInfo, error) { return nil, tt.statErr }

			server, rec := newRecordingServer(t, jsonHandler(http.StatusOK, `{}`))
			client := newTestClient(server.URL, "tok")

			resp, err := client.Files().Upload(context.Background(), "/srv/upload.bin")
			assert.Nil(t, resp)
			require.Error(t, err)
			assert.Equal(t, tt.notFound, errors.Is(err, ErrFileNotFound))
			if !tt.notFound {
				assert.ErrorIs(t, err, tt.statErr)
				assert.Contains(t, err.Error(), "/srv/upload.bin")
			}
			assert.Empty(t, rec.all())
		})
	}
}

func TestFilesDownload(t *testing.T) {
	payload := []byte("\x00\x01binary")
	server, rec := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(payload)
	})
	client := newTestClient(server.URL, "test-token")

	resp, err := client.Files().Download(context.Background(), "5fd74830", "X9dIMOrcEeO")
	require.NoError(t, err)
	assert.Equal(t, payload, resp.Body)
	assert.Nil(t, resp.Data)

	req := rec.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/o1/a1/chatfiles/5fd74830", req.Path)
	assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
	assert.Equal(t, "X9dIMOrcEeO", req.Header.Get("share-secret"))
}

func TestFilesDownload_RemoteErrorIsData(t *testing.T) {
	server, _ := newRecordingServer(t, jsonHandler(http.StatusNotFound, `{"error":"file_not_found"}`))
	client := newTestClient(server.URL, "test-token")

	resp, err := client.Files().Download(context.Background(), "x", "y")
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, "file_not_found", resp.Envelope().Error)
}

func TestFilesDownload_RequiresUUID(t *testing.T) {
	runValidationCases(t, []validationCase{
		{"empty uuid", func(ctx context.Context, c *Client) (*Response, error) {
			return c.Files().Download(ctx, "", "secret")
		}, "uuid"},
	})
}
