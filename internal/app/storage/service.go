package storage

import (
	"context"
	"io"
	"time"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Service defines the public interface for the image storage service.
type Service interface {
	// Upload streams an image body into the bucket under the given key.
	Upload(ctx context.Context, key string, mimeType string, body io.Reader) error

	// PresignDownload generates a pre-signed URL for downloading an image.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the image specified by the given key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// NewService is the factory function for Service.
// It initializes and returns a concrete implementation based on the provided configuration.
func NewService(cfg ServiceConfig) (Service, error) {
	// Currently, only S3 compatible implementations are supported.
	return newS3Client(cfg)
}
