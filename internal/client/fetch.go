package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/flexliner/subtitles/internal/apperrors"
	"github.com/flexliner/subtitles/internal/config"
	"github.com/flexliner/subtitles/internal/metrics"
	"github.com/flexliner/subtitles/internal/models"
)

func (f *fetcher) Fetch(ctx context.Context, src string) (*models.SourceContent, error) {
	kind, err := ClassifySource(src)
	if err != nil {
		return nil, err
	}

	var content *models.SourceContent
	switch kind {
	case SourceLocal:
		content, err = f.fetchLocal(src)
	default:
		content, err = f.fetchRemote(ctx, src)
	}

	origin := kind.String()
	if content != nil && content.FromCache {
		origin = "cache"
	}
	metrics.SubtitleFetchesTotal.WithLabelValues(origin, fetchStatus(err)).Inc()
	return content, err
}

func fetchStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, &apperrors.ErrSubtitleResourceNotFound{}):
		return metrics.StatusNotFound
	default:
		return metrics.StatusError
	}
}

func (f *fetcher) fetchRemote(ctx context.Context, src string) (*models.SourceContent, error) {
	logger := config.GetLogger()

	if f.sources != nil {
		if data, ok := f.sources.Get(src); ok {
			logger.Debug().Str("url", src).Int("bytes", len(data)).Msg("Subtitle source served from cache")
			return &models.SourceContent{Source: src, Data: data, FromCache: true}, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	logger.Debug().Str("url", src).Msg("Fetching subtitle source")
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subtitle source: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &apperrors.ErrSubtitleResourceNotFound{Source: src}
	case resp.StatusCode != http.StatusOK:
		return nil, &apperrors.ErrUnexpectedStatus{URL: src, StatusCode: resp.StatusCode}
	}

	data, err := f.readLimited(resp.Body, src)
	if err != nil {
		return nil, err
	}

	if f.sources != nil {
		f.sources.Set(src, data)
	}

	logger.Info().Str("url", src).Int("bytes", len(data)).Msg("Fetched subtitle source")
	return &models.SourceContent{
		Source:      src,
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (f *fetcher) fetchLocal(src string) (*models.SourceContent, error) {
	name := filepath.Join(f.publicDir, filepath.FromSlash(localPath(src)))

	file, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &apperrors.ErrSubtitleResourceNotFound{Source: src}
		}
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat subtitle file: %w", err)
	}
	if info.IsDir() {
		return nil, &apperrors.ErrSubtitleResourceNotFound{Source: src}
	}

	data, err := f.readLimited(file, src)
	if err != nil {
		return nil, err
	}
	return &models.SourceContent{Source: src, Data: data}, nil
}

// readLimited reads r fully, failing once more than maxBytes arrive.
func (f *fetcher) readLimited(r io.Reader, src string) ([]byte, error) {
	if f.maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read subtitle source: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle source: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, &apperrors.ErrSourceTooLarge{Source: src, Limit: f.maxBytes}
	}
	return data, nil
}
