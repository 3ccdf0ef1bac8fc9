package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/flexliner/subtitles/internal/config"
)

// MinioOptions configures an S3-compatible bucket for uploads.
type MinioOptions struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
	// PublicURL is the base objects are served from, e.g. a CDN. When empty
	// the endpoint URL with the bucket as first path segment is used.
	PublicURL string
}

// MinioUploader stores uploads in an S3-compatible bucket.
type MinioUploader struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioUploader connects to the endpoint and creates the bucket if needed.
func NewMinioUploader(ctx context.Context, opts MinioOptions) (*MinioUploader, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("minio storage requires endpoint and bucket")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger := config.GetLogger()
		logger.Info().Str("bucket", opts.Bucket).Msg("Created upload bucket")
	}

	return &MinioUploader{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: publicBaseURL(opts),
	}, nil
}

func publicBaseURL(opts MinioOptions) string {
	if opts.PublicURL != "" {
		return strings.TrimRight(opts.PublicURL, "/")
	}
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: opts.Endpoint, Path: "/" + opts.Bucket}
	return u.String()
}

func (u *MinioUploader) Upload(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error) {
	name := ObjectName(filename, contentType)
	info, err := u.client.PutObject(ctx, u.bucket, name, content, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	logger := config.GetLogger()
	logger.Info().
		Str("bucket", u.bucket).
		Str("object", name).
		Int64("bytes", info.Size).
		Msg("Stored upload in object storage")

	return u.baseURL + "/" + name, nil
}
