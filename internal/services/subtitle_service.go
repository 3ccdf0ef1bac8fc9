package services

import (
	"context"
	"io"

	"github.com/flexliner/subtitles/internal/models"
	"github.com/flexliner/subtitles/internal/subtitle"
)

// SubtitleService runs the subtitle pipeline: fetch, decode, normalize to
// WebVTT, annotate right-to-left text, and store edited results.
type SubtitleService interface {
	// Render returns src as WebVTT ready to serve, with RTL payload lines wrapped.
	Render(ctx context.Context, src string) (string, error)

	// LoadRaw returns src as WebVTT without RTL markers, for raw text editing.
	LoadRaw(ctx context.Context, src string) (subtitle.RawText, error)

	// LoadCues returns the cues of src for the timing editor.
	LoadCues(ctx context.Context, src string) (subtitle.CueList, error)

	// Save uploads doc as a new WebVTT file and returns its URL.
	Save(ctx context.Context, doc subtitle.Document) (string, error)

	// SaveTrack saves doc and points track index of owner at the new file.
	SaveTrack(ctx context.Context, owner string, index int, doc subtitle.Document) (models.Track, error)

	// Upload stores an arbitrary media file (poster, video, subtitle) and returns its URL.
	Upload(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error)

	// Tracks returns the subtitle tracks of owner.
	Tracks(ctx context.Context, owner string) ([]models.Track, error)

	// ReplaceTracks validates and stores the complete track list of owner.
	ReplaceTracks(ctx context.Context, owner string, tracks []models.Track) ([]models.Track, error)

	// OpenSession loads track index of owner into a new cue editing session.
	OpenSession(ctx context.Context, owner string, index int) (*EditSession, error)
}
