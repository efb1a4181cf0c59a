package appwrite

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	appErrors "buzzy/pkg/errors"

	"buzzy/log"
)

// DownloadFile returns the raw bytes of a bucket file.
func (c *Client) DownloadFile(ctx context.Context, bucket, fileId string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/v1/storage/buckets/%s/files/%s/download", bucket, fileId))
	if err != nil {
		return nil, fmt.Errorf("DownloadFile request error: %w", err)
	}
	if err = c.checkResponse(resp, "DownloadFile"); err != nil {
		return nil, err
	}
	log.GetLogger().Debug("DownloadFile fetched",
		zap.String("bucket", bucket),
		zap.String("fileId", fileId),
		zap.Int("bytes", len(resp.Body())))
	return resp.Body(), nil
}

// uploadedFile is the subset of Appwrite's file model the caller needs back.
type uploadedFile struct {
	Id        string `json:"$id"`
	SizeBytes int64  `json:"sizeOriginal"`
}

// UploadFile uploads a local file into a bucket under the given file id and
// display name, and returns the stored file's id.
func (c *Client) UploadFile(ctx context.Context, bucket, fileId, path, fileName string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", appErrors.Wrap(appErrors.CodeBlobUpload, fmt.Sprintf("cannot open %s", path), err)
	}
	defer f.Close()

	var uploaded uploadedFile
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"fileId": fileId}).
		SetFileReader("file", fileName, f).
		SetResult(&uploaded).
		Post(fmt.Sprintf("/v1/storage/buckets/%s/files", bucket))
	if err != nil {
		return "", fmt.Errorf("UploadFile request error: %w", err)
	}
	if err = c.checkResponse(resp, "UploadFile"); err != nil {
		return "", err
	}
	log.GetLogger().Debug("UploadFile stored",
		zap.String("bucket", bucket),
		zap.String("fileId", uploaded.Id),
		zap.Int64("sizeBytes", uploaded.SizeBytes))
	return uploaded.Id, nil
}

func (c *Client) DeleteFile(ctx context.Context, bucket, fileId string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/v1/storage/buckets/%s/files/%s", bucket, fileId))
	if err != nil {
		return fmt.Errorf("DeleteFile request error: %w", err)
	}
	return c.checkResponse(resp, "DeleteFile")
}
