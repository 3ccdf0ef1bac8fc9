package models

import (
	"encoding/json"
	"strings"

	"github.com/flexliner/subtitles/internal/apperrors"
)

// Track is one subtitle track attached to a content item or an episode.
// The first track of a list is the default active track.
type Track struct {
	Label string `json:"label"`
	Lang  string `json:"lang"`
	Src   string `json:"src"`
}

// Validate trims the label and language and requires a source URL.
func (t *Track) Validate() error {
	t.Label = strings.TrimSpace(t.Label)
	t.Lang = strings.TrimSpace(t.Lang)
	t.Src = strings.TrimSpace(t.Src)
	if t.Src == "" {
		return &apperrors.ErrInvalidTrack{Reason: "src is required"}
	}
	return nil
}

// ParseTracks decodes a stored track list. Empty input, invalid JSON or a
// value that is not an array all yield an empty list.
func ParseTracks(raw string) []Track {
	tracks := make([]Track, 0)
	if strings.TrimSpace(raw) == "" {
		return tracks
	}
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil || tracks == nil {
		return make([]Track, 0)
	}
	return tracks
}

// MarshalTracks encodes a track list for storage. A nil list is written as [].
func MarshalTracks(tracks []Track) (string, error) {
	if tracks == nil {
		tracks = []Track{}
	}
	b, err := json.Marshal(tracks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
