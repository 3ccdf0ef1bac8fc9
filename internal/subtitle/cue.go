package subtitle

import (
	"regexp"
	"strings"
)

// repairDuration is the cue length used when a parsed cue ends before it starts.
const repairDuration = 2.0

var cueTimingRe = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}[.,]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[.,]\d{3})`)

// Cue is one timed subtitle entry. Times are in seconds so they line up with
// a video element's currentTime.
type Cue struct {
	Start float64 `json:"startSec"`
	End   float64 `json:"endSec"`
	Text  string  `json:"text"`
}

// ParseCues parses SRT or WebVTT text into cues.
//
// Timing lines may use either a comma or a period before the milliseconds,
// so hybrid files parse too. RLE/PDF markers are stripped from payload lines
// so repeated edit and save cycles do not accumulate them. A cue whose end is
// before its start is repaired to last two seconds.
func ParseCues(text string) []Cue {
	lines := splitLines(strings.TrimSpace(text))
	cues := make([]Cue, 0)

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

		m := cueTimingRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			i++
			continue
		}
		start := ParseTimeToSeconds(m[1])
		end := ParseTimeToSeconds(m[2])
		i++

		var payload []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			payload = append(payload, StripRTL(lines[i]))
			i++
		}

		if end < start {
			end = start + repairDuration
		}
		cues = append(cues, Cue{
			Start: start,
			End:   end,
			Text:  strings.Join(payload, "\n"),
		})
	}

	return cues
}

// SerializeCues renders cues as WebVTT. Empty cue text is written as a single
// space, except on the last cue where the output is trimmed. No bidi markers
// are added; see ApplyRTL.
func SerializeCues(cues []Cue) string {
	out := make([]string, 0, 2+len(cues)*3)
	out = append(out, Header, "")
	for _, c := range cues {
		out = append(out, FormatSecondsToVTT(c.Start)+" --> "+FormatSecondsToVTT(c.End))
		text := strings.TrimSpace(c.Text)
		if text == "" {
			text = " "
		}
		out = append(out, text, "")
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
