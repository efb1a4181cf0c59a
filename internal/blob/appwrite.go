package blob

import (
	"context"

	"buzzy/internal/types"
	"buzzy/pkg/appwrite"
)

// AppwriteStore backs the blob interface with Appwrite storage buckets.
type AppwriteStore struct {
	client *appwrite.Client
}

func NewAppwriteStore(client *appwrite.Client) *AppwriteStore {
	return &AppwriteStore{client: client}
}

func (s *AppwriteStore) Download(ctx context.Context, bucket, fileId string) ([]byte, error) {
	return s.client.DownloadFile(ctx, bucket, fileId)
}

func (s *AppwriteStore) Upload(ctx context.Context, bucket, fileId, path, fileName string) (string, error) {
	return s.client.UploadFile(ctx, bucket, fileId, path, fileName)
}

func (s *AppwriteStore) Delete(ctx context.Context, bucket, fileId string) error {
	return s.client.DeleteFile(ctx, bucket, fileId)
}

var _ types.BlobStore = (*AppwriteStore)(nil)
