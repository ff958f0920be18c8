package utils

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"review-app/internal/config"
)

// S3Storage writes objects to an S3-compatible bucket.
type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewS3Storage builds the client. The bucket is expected to exist already.
func NewS3Storage(cfg config.S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.ResolvedEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: cfg.ObjectBaseURL(),
	}, nil
}

// Upload puts data under key and returns the public URL of the object.
func (s *S3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}

	return s.ObjectURL(key), nil
}

func (s *S3Storage) ObjectURL(key string) string {
	return s.baseURL + "/" + key
}
