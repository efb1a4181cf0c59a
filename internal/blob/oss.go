package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"

	appErrors "buzzy/pkg/errors"

	"buzzy/config"
	"buzzy/internal/types"
)

// OssStore backs the blob interface with Aliyun OSS. The bucket argument of
// each call maps to an OSS bucket and the file id becomes the object key.
type OssStore struct {
	client *oss.Client
}

func NewOssStore(cfg config.OssStorage) (*OssStore, error) {
	if cfg.AccessKeyId == "" || cfg.AccessKeySecret == "" {
		return nil, fmt.Errorf("NewOssStore missing oss credentials")
	}
	ossCfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyId, cfg.AccessKeySecret)).
		WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		ossCfg = ossCfg.WithEndpoint(cfg.Endpoint)
	}
	return &OssStore{client: oss.NewClient(ossCfg)}, nil
}

func (s *OssStore) Download(ctx context.Context, bucket, fileId string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(fileId),
	})
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeBlobDownload, fmt.Sprintf("oss get %s/%s", bucket, fileId), err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeBlobDownload, fmt.Sprintf("oss read %s/%s", bucket, fileId), err)
	}
	return data, nil
}

func (s *OssStore) Upload(ctx context.Context, bucket, fileId, path, fileName string) (string, error) {
	_, err := s.client.PutObjectFromFile(ctx, &oss.PutObjectRequest{
		Bucket:             oss.Ptr(bucket),
		Key:                oss.Ptr(fileId),
		ContentDisposition: oss.Ptr(fmt.Sprintf("attachment; filename=%q", fileName)),
	}, path)
	if err != nil {
		return "", appErrors.Wrap(appErrors.CodeBlobUpload, fmt.Sprintf("oss put %s/%s", bucket, fileId), err)
	}
	return fileId, nil
}

func (s *OssStore) Delete(ctx context.Context, bucket, fileId string) error {
	_, err := s.client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(fileId),
	})
	if err != nil {
		return fmt.Errorf("Delete oss delete %s/%s error: %w", bucket, fileId, err)
	}
	return nil
}

var _ types.BlobStore = (*OssStore)(nil)
