package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flexliner/subtitles/internal/subtitle"
)

// loadedFile is a subtitle file decoded and normalised to WebVTT.
type loadedFile struct {
	path     string
	encoding subtitle.Encoding
	srt      bool
	vtt      string
}

func loadSubtitleFile(path string) (*loadedFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("subtitle file path is required")
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("subtitle file %q not found", path)
		}
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}

	text, enc := subtitle.DecodeWithEncoding(buf)
	name := filepath.Base(path)
	return &loadedFile{
		path:     path,
		encoding: enc,
		srt:      subtitle.IsSRTSource(name, text),
		vtt:      subtitle.Normalize(name, text),
	}, nil
}

func (f *loadedFile) format() string {
	if f.srt {
		return "srt"
	}
	return "vtt"
}
