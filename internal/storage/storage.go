package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/flexliner/subtitles/internal/config"
)

// Uploader stores a file and returns the URL it is served from.
type Uploader interface {
	// Upload stores size bytes read from content. The object name is random
	// with an extension chosen by ObjectName. size may be -1 when unknown.
	Upload(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error)
}

// New creates the uploader selected by storage.provider.
func New(ctx context.Context, cfg *config.Config) (Uploader, error) {
	switch cfg.Storage.Provider {
	case "", "local":
		return NewLocalUploader(cfg.Storage.UploadDir, cfg.Storage.URLPrefix), nil
	case "minio":
		m := cfg.Storage.Minio
		return NewMinioUploader(ctx, MinioOptions{
			Endpoint:        m.Endpoint,
			AccessKeyID:     m.AccessKeyID,
			SecretAccessKey: m.SecretAccessKey,
			Bucket:          m.Bucket,
			Region:          m.Region,
			UseSSL:          m.UseSSL,
			PublicURL:       m.PublicURL,
		})
	default:
		return nil, fmt.Errorf("storage: unknown provider %q", cfg.Storage.Provider)
	}
}

// ObjectName returns a random name. The lowercased extension of filename is
// kept when it names an allowed media type, otherwise the extension comes
// from contentType.
func ObjectName(filename, contentType string) string {
	return uuid.NewString() + storedExtension(filename, contentType)
}
