package subtitle

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	// srtContentRe finds an SRT timing line, optionally preceded by a bare cue index.
	srtContentRe = regexp.MustCompile(`(?m)^(?:\d+\s*)?\d{2}:\d{2}:\d{2},\d{3}\s*-->\s*\d{2}:\d{2}:\d{2},\d{3}`)
	srtTimingRe  = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}),(\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}),(\d{3})`)
	cueIndexRe   = regexp.MustCompile(`^\d+$`)
)

// Header is the first line of every WebVTT file.
const Header = "WEBVTT"

// IsSRT reports whether text contains an SRT cue timing line
// (HH:MM:SS,mmm --> HH:MM:SS,mmm, comma millisecond separator) anywhere.
func IsSRT(text string) bool {
	return srtContentRe.MatchString(strings.TrimSpace(text))
}

// IsSRTSource reports whether a subtitle should be treated as SRT, either
// because its source path ends in .srt or because its content looks like SRT.
func IsSRTSource(src, text string) bool {
	return hasSRTSuffix(src) || IsSRT(text)
}

func hasSRTSuffix(src string) bool {
	p := src
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.EqualFold(path.Ext(p), ".srt")
}

// SRTToVTT converts SRT subtitle text to WebVTT.
//
// Index lines are dropped and the millisecond separator on timing lines
// becomes a period. Cue payload lines are copied verbatim. Lines that are not
// part of a recognised cue are skipped, so malformed input degrades to a
// partial result instead of an error.
func SRTToVTT(text string) string {
	lines := splitLines(strings.TrimSpace(text))
	out := []string{Header, ""}

	for i := 0; i < len(lines); {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		if cueIndexRe.MatchString(strings.TrimSpace(line)) {
			i++
			if i >= len(lines) {
				break
			}
		}

		m := srtTimingRe.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}
		out = append(out, m[1]+"."+m[2]+" --> "+m[3]+"."+m[4])
		i++
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			out = append(out, lines[i])
			i++
		}
		out = append(out, "")
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Normalize returns WebVTT text for decoded subtitle content read from src.
// SRT content is converted; anything else is assumed to already be WebVTT.
func Normalize(src, text string) string {
	if IsSRTSource(src, text) {
		return SRTToVTT(text)
	}
	return text
}

// splitLines normalises CRLF and lone CR line endings and splits on newlines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
