package client

import (
	"net/url"
	"path"
	"strings"

	"github.com/flexliner/subtitles/internal/apperrors"
)

// SourceKind tells where a subtitle source is read from.
type SourceKind int

const (
	SourceRemote SourceKind = iota + 1 // http:// or https:// URL
	SourceLocal                        // path under the public directory
)

func (k SourceKind) String() string {
	switch k {
	case SourceRemote:
		return "remote"
	case SourceLocal:
		return "local"
	default:
		return "unknown"
	}
}

// ClassifySource validates src and reports how it will be fetched. Remote
// sources must be absolute http(s) URLs with a host. Local sources must be
// "/"-rooted and must not climb out of the public directory with "..".
func ClassifySource(src string) (SourceKind, error) {
	s := strings.TrimSpace(src)
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return 0, &apperrors.ErrInvalidSource{Source: src}
		}
		return SourceRemote, nil
	case strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//"):
		p := localPath(s)
		for _, seg := range strings.Split(p, "/") {
			if seg == ".." {
				return 0, &apperrors.ErrInvalidSource{Source: src}
			}
		}
		if path.Clean(p) == "/" {
			return 0, &apperrors.ErrInvalidSource{Source: src}
		}
		return SourceLocal, nil
	default:
		return 0, &apperrors.ErrInvalidSource{Source: src}
	}
}

// localPath drops any query or fragment from a "/"-rooted source.
func localPath(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		return src[:i]
	}
	return src
}
