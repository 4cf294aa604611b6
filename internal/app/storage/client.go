package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"cyberlink/internal/pkg/logx"
)

// s3Client implements the Service interface, handling interactions with S3-compatible storage.
type s3Client struct {
	cfg      ServiceConfig
	s3Client *s3.Client
	uploader *manager.Uploader
}

// newS3Client initializes the S3 client using a custom configuration that supports S3-compatible endpoints.
func newS3Client(cfg ServiceConfig) (*s3Client, error) {
	// Load Configuration
	sdkCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		logx.Error(err, "Failed to load AWS SDK config")
		return nil, errors.New("failed to initialize S3 client configuration")
	}

	// Create S3 Client with Custom Endpoint Resolver.
	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &s3Client{
		cfg:      cfg,
		s3Client: client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Upload streams the image body to the bucket under the given key.
func (c *s3Client) Upload(ctx context.Context, key string, mimeType string, body io.Reader) error {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &c.cfg.S3BucketName,
		Key:         &key,
		ContentType: &mimeType,
		Body:        body,
	})

	if err != nil {
		logx.Error(err, "S3 upload failed", "key", key)
		return errors.New("failed to upload file to S3")
	}

	return nil
}

// PresignDownload generates a presigned URL for downloading the specified image key.
func (c *s3Client) PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(c.s3Client)

	presignInput := &s3.GetObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	}

	resp, err := presignClient.PresignGetObject(ctx, presignInput, s3.WithPresignExpires(duration))
	if err != nil {
		logx.Error(err, "Failed to generate presigned URL", "key", key)
		return "", errors.New("failed to generate presigned URL")
	}

	return resp.URL, nil
}

// Delete removes the image specified by the given key from the bucket.
func (c *s3Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	})

	if err != nil {
		logx.Error(err, "S3 delete failed", "key", key)
		return errors.New("failed to delete file from S3")
	}

	return nil
}

// Exists reports whether an object is stored under the given key.
func (c *s3Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	})

	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		logx.Error(err, "Failed to get S3 object metadata", "key", key)
		return false, errors.New("failed to fetch S3 metadata")
	}

	return true, nil
}
