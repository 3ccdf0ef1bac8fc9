package subtitle

import (
	"regexp"
	"strings"
)

const (
	// RLE is U+202B RIGHT-TO-LEFT EMBEDDING.
	RLE = "\u202B"
	// PDF is U+202C POP DIRECTIONAL FORMATTING.
	PDF = "\u202C"
)

var vttTimingRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}\.\d{3}`)

// ApplyRTL wraps every cue payload line of a WebVTT document with RLE/PDF so
// players render Hebrew and Arabic right-to-left, with digits and punctuation
// kept in place.
//
// Text without Hebrew or Arabic characters is returned unchanged. The
// transform is not idempotent: it must run once, when serving, and its output
// must never be stored.
func ApplyRTL(vtt string) string {
	if !containsRTL(vtt) {
		return vtt
	}

	lines := splitLines(vtt)
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		line := lines[i]
		if !vttTimingRe.MatchString(strings.TrimSpace(line)) {
			out = append(out, line)
			i++
			continue
		}

		out = append(out, line)
		i++
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			out = append(out, RLE+lines[i]+PDF)
			i++
		}
		if i < len(lines) {
			// blank separator
			out = append(out, lines[i])
			i++
		}
	}

	return strings.Join(out, "\n")
}

// StripRTL removes RLE/PDF markers and the whitespace around them from a payload line.
func StripRTL(line string) string {
	line = strings.ReplaceAll(line, RLE, "")
	line = strings.ReplaceAll(line, PDF, "")
	return strings.TrimSpace(line)
}

func containsRTL(s string) bool {
	for _, r := range s {
		if isHebrew(r) || isArabic(r) {
			return true
		}
	}
	return false
}
