package storage

import (
	"bytes"
	"context"
	"fmt"

	"resume-match/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// Minio stores uploaded resume files in a single bucket.
type Minio struct {
	client *minio.Client
	bucket string
	log    zerolog.Logger
}

// NewMinio connects to the object store and creates the bucket when missing.
func NewMinio(ctx context.Context, cfg config.MinioConfig, logger zerolog.Logger) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	return &Minio{client: client, bucket: cfg.Bucket, log: logger}, nil
}

func (m *Minio) Put(ctx context.Context, key string, data []byte, contentType string) error {
	info, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	m.log.Debug().Str("bucket", m.bucket).Str("key", key).Int64("size", info.Size).Msg("object stored")
	return nil
}
