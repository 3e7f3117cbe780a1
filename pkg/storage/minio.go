// Package storage provides the image store collaborator backed by a
// MinIO/S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStore uploads image blobs and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// MinioImageStore implements ImageStore against a MinIO bucket.
type MinioImageStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// MinioOptions configures the MinIO connection.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioImageStore connects to MinIO and ensures the bucket exists.
func NewMinioImageStore(ctx context.Context, opts MinioOptions) (*MinioImageStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", opts.Bucket, err)
		}
	}

	log.Println("Successfully connected to MinIO!")
	return &MinioImageStore{
		client:   client,
		endpoint: opts.Endpoint,
		bucket:   opts.Bucket,
		useSSL:   opts.UseSSL,
	}, nil
}

// Upload stores the object and returns the URL it is reachable at.
func (s *MinioImageStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", objectName, err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName), nil
}
