package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/flexliner/subtitles/internal/apperrors"
	"github.com/flexliner/subtitles/internal/client"
	"github.com/flexliner/subtitles/internal/config"
	"github.com/flexliner/subtitles/internal/metrics"
	"github.com/flexliner/subtitles/internal/models"
	"github.com/flexliner/subtitles/internal/storage"
	"github.com/flexliner/subtitles/internal/subtitle"
	"github.com/flexliner/subtitles/internal/tracks"
)

const (
	savedFilename    = "subtitles.vtt"
	savedContentType = "text/vtt"
)

// DefaultSubtitleService is the default implementation of SubtitleService
type DefaultSubtitleService struct {
	fetcher  client.Fetcher
	uploader storage.Uploader
	tracks   tracks.Store
}

// NewSubtitleService creates a subtitle service from its collaborators.
func NewSubtitleService(fetcher client.Fetcher, uploader storage.Uploader, store tracks.Store) *DefaultSubtitleService {
	return &DefaultSubtitleService{
		fetcher:  fetcher,
		uploader: uploader,
		tracks:   store,
	}
}

func (s *DefaultSubtitleService) Render(ctx context.Context, src string) (string, error) {
	vtt, format, err := s.load(ctx, src)
	if err != nil {
		metrics.SubtitleRendersTotal.WithLabelValues(format, renderStatus(err)).Inc()
		return "", err
	}
	metrics.SubtitleRendersTotal.WithLabelValues(format, metrics.StatusSuccess).Inc()
	return subtitle.ApplyRTL(vtt), nil
}

func (s *DefaultSubtitleService) LoadRaw(ctx context.Context, src string) (subtitle.RawText, error) {
	vtt, _, err := s.load(ctx, src)
	if err != nil {
		return "", err
	}
	return subtitle.RawText(vtt), nil
}

func (s *DefaultSubtitleService) LoadCues(ctx context.Context, src string) (subtitle.CueList, error) {
	raw, err := s.LoadRaw(ctx, src)
	if err != nil {
		return nil, err
	}
	return subtitle.ToCues(raw), nil
}

// load fetches src and returns it as WebVTT together with the source format.
func (s *DefaultSubtitleService) load(ctx context.Context, src string) (string, string, error) {
	logger := config.GetLogger()

	content, err := s.fetcher.Fetch(ctx, src)
	if err != nil {
		return "", "unknown", fmt.Errorf("failed to fetch subtitles: %w", err)
	}

	text, enc := subtitle.DecodeWithEncoding(content.Data)
	metrics.SubtitleDecodesTotal.WithLabelValues(string(enc)).Inc()

	format := "vtt"
	if subtitle.IsSRTSource(src, text) {
		format = "srt"
	}

	logger.Debug().
		Str("src", src).
		Str("encoding", string(enc)).
		Str("format", format).
		Bool("cached", content.FromCache).
		Msg("Decoded subtitle source")

	return subtitle.Normalize(src, text), format, nil
}

func renderStatus(err error) string {
	if errors.Is(err, &apperrors.ErrSubtitleResourceNotFound{}) {
		return metrics.StatusNotFound
	}
	return metrics.StatusError
}

func (s *DefaultSubtitleService) Save(ctx context.Context, doc subtitle.Document) (string, error) {
	if subtitle.IsEmpty(doc) {
		return "", &apperrors.ErrEmptySubtitle{}
	}
	vtt := doc.VTT()
	return s.Upload(ctx, savedFilename, strings.NewReader(vtt), int64(len(vtt)), savedContentType)
}

func (s *DefaultSubtitleService) SaveTrack(ctx context.Context, owner string, index int, doc subtitle.Document) (models.Track, error) {
	logger := config.GetLogger()

	current, err := s.track(ctx, owner, index)
	if err != nil {
		return models.Track{}, err
	}

	url, err := s.Save(ctx, doc)
	if err != nil {
		return models.Track{}, err
	}

	updated, err := s.tracks.UpdateSrc(ctx, owner, index, url)
	if err != nil {
		return models.Track{}, fmt.Errorf("failed to update track src: %w", err)
	}
	s.fetcher.Forget(current.Src)

	logger.Info().
		Str("owner", owner).
		Int("index", index).
		Str("old_src", current.Src).
		Str("new_src", url).
		Msg("Subtitle track updated")

	return updated, nil
}

func (s *DefaultSubtitleService) Upload(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error) {
	url, err := s.uploader.Upload(ctx, filename, content, size, contentType)
	if err != nil {
		metrics.SubtitleUploadsTotal.WithLabelValues(metrics.StatusError).Inc()
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	metrics.SubtitleUploadsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	return url, nil
}

func (s *DefaultSubtitleService) Tracks(ctx context.Context, owner string) ([]models.Track, error) {
	return s.tracks.List(ctx, owner)
}

func (s *DefaultSubtitleService) ReplaceTracks(ctx context.Context, owner string, list []models.Track) ([]models.Track, error) {
	validated := make([]models.Track, len(list))
	for i, t := range list {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		validated[i] = t
	}
	if err := s.tracks.Replace(ctx, owner, validated); err != nil {
		return nil, err
	}
	return validated, nil
}

func (s *DefaultSubtitleService) OpenSession(ctx context.Context, owner string, index int) (*EditSession, error) {
	t, err := s.track(ctx, owner, index)
	if err != nil {
		return nil, err
	}
	cues, err := s.LoadCues(ctx, t.Src)
	if err != nil {
		return nil, err
	}
	return newEditSession(s, owner, index, cues), nil
}

func (s *DefaultSubtitleService) track(ctx context.Context, owner string, index int) (models.Track, error) {
	list, err := s.tracks.List(ctx, owner)
	if err != nil {
		return models.Track{}, err
	}
	if index < 0 || index >= len(list) {
		return models.Track{}, apperrors.NewTrackNotFoundError(owner, index)
	}
	return list[index], nil
}
