// Package blob adapts the configured object storage backend to the
// pipeline's blob interface. Appwrite buckets are the default; Aliyun OSS
// is available for deployments that keep media off Appwrite storage.
package blob

import (
	"fmt"

	"buzzy/config"
	"buzzy/internal/types"
	"buzzy/pkg/appwrite"
)

// NewStore returns the blob store for the configured provider.
func NewStore(cfg config.Config, appwriteClient *appwrite.Client) (types.BlobStore, error) {
	switch cfg.Storage.Provider {
	case "", "appwrite":
		return NewAppwriteStore(appwriteClient), nil
	case "oss":
		return NewOssStore(cfg.Storage.Oss)
	default:
		return nil, fmt.Errorf("NewStore unsupported storage provider: %s", cfg.Storage.Provider)
	}
}
