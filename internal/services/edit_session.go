package services

import (
	"context"

	"github.com/flexliner/subtitles/internal/models"
	"github.com/flexliner/subtitles/internal/subtitle"
)

// EditSession ties a cue editor to one subtitle track. Commit uploads the
// edited cues and repoints the track; until then nothing is persisted.
type EditSession struct {
	*subtitle.Editor

	service *DefaultSubtitleService
	owner   string
	index   int
}

func newEditSession(service *DefaultSubtitleService, owner string, index int, cues []subtitle.Cue) *EditSession {
	return &EditSession{
		Editor:  subtitle.NewEditor(cues),
		service: service,
		owner:   owner,
		index:   index,
	}
}

// Commit saves the buffer when it changed and marks it committed. The
// returned track carries the new src. A clean session returns the stored track.
func (s *EditSession) Commit(ctx context.Context) (models.Track, error) {
	if !s.Dirty() {
		return s.service.track(ctx, s.owner, s.index)
	}
	updated, err := s.service.SaveTrack(ctx, s.owner, s.index, s.Cues())
	if err != nil {
		return models.Track{}, err
	}
	s.MarkCommitted()
	return updated, nil
}
