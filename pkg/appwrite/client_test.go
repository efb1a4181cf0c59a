package appwrite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "buzzy/pkg/errors"

	"buzzy/internal/types"
	"buzzy/log"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Setenv("BUZZY_LOG_DIR", t.TempDir())
	log.InitLogger()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "proj", "key")
}

func TestGetDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/databases/db/collections/videos/documents/vid1", r.URL.Path)
		assert.Equal(t, "proj", r.Header.Get("X-Appwrite-Project"))
		assert.Equal(t, "key", r.Header.Get("X-Appwrite-Key"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"$id": "vid1", "status": "uploaded"})
	})

	doc, err := client.GetDocument(context.Background(), "db", "videos", "vid1")
	require.NoError(t, err)
	assert.Equal(t, "vid1", doc["$id"])
	assert.Equal(t, "uploaded", doc["status"])
}

func TestGetDocumentNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Document with the requested ID could not be found.",
			"code":    404,
			"type":    "document_not_found",
		})
	})

	_, err := client.GetDocument(context.Background(), "db", "videos", "missing")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.CodeNotFound))
}

func TestCreateDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/databases/db/collections/clips/documents", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "clip1", body["documentId"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "vid1", data["videoId"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"$id": "clip1"})
	})

	doc, err := client.CreateDocument(context.Background(), "db", "clips", "clip1", map[string]any{"videoId": "vid1"})
	require.NoError(t, err)
	assert.Equal(t, "clip1", doc["$id"])
}

func TestUpdateDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/databases/db/collections/videos/documents/vid1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		data := body["data"].(map[string]any)
		assert.Equal(t, "completed", data["status"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"$id": "vid1", "status": "completed"})
	})

	doc, err := client.UpdateDocument(context.Background(), "db", "videos", "vid1", map[string]any{"status": "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", doc["status"])
}

func TestDownloadFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/storage/buckets/videos/files/f1/download", r.URL.Path)
		_, _ = w.Write([]byte("binary video data"))
	})

	data, err := client.DownloadFile(context.Background(), "videos", "f1")
	require.NoError(t, err)
	assert.Equal(t, []byte("binary video data"), data)
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("clip bytes"), 0o644))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/storage/buckets/clips/files", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "file123", r.FormValue("fileId"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "my_clip.mp4", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"$id": "file123", "sizeOriginal": 10})
	})

	id, err := client.UploadFile(context.Background(), "clips", "file123", path, "my_clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, "file123", id)
}

func TestDeleteFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/storage/buckets/videos/files/f1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteFile(context.Background(), "videos", "f1"))
}

func TestSendEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messaging/messages/email", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body["messageId"])
		assert.Equal(t, "Your video clips are ready", body["subject"])
		assert.Equal(t, []any{"user1"}, body["users"])
		assert.Equal(t, true, body["html"])
		assert.Equal(t, []any{"thumbs:t1"}, body["attachments"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"$id": "msg1"})
	})

	err := client.SendEmail(context.Background(), types.EmailMessage{
		UserId:      "user1",
		Subject:     "Your video clips are ready",
		Html:        "<p>done</p>",
		Attachments: []string{"thumbs:t1"},
	})
	require.NoError(t, err)
}
