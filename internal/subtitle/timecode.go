package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTimeToSeconds parses HH:MM:SS.mmm, MM:SS.mmm or bare seconds into
// seconds. A comma is accepted as the millisecond separator. Empty or
// unparseable input yields 0 and the result is never negative.
func ParseTimeToSeconds(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	parts := strings.Split(strings.Replace(t, ",", ".", 1), ":")

	var sec float64
	switch len(parts) {
	case 3:
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH != nil || errM != nil {
			return 0
		}
		sec = float64(h)*3600 + float64(m)*60 + parseSeconds(parts[2])
	case 2:
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0
		}
		sec = float64(m)*60 + parseSeconds(parts[1])
	case 1:
		sec = parseSeconds(parts[0])
	default:
		return 0
	}

	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return 0
	}
	return math.Max(0, sec)
}

func parseSeconds(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// FormatSecondsToVTT formats seconds as HH:MM:SS.mmm. The hour component is
// always present so editor output round-trips through ParseTimeToSeconds.
func FormatSecondsToVTT(sec float64) string {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		sec = 0
	}
	totalMs := int64(math.Round(sec * 1000))
	h := totalMs / 3_600_000
	m := totalMs % 3_600_000 / 60_000
	s := totalMs % 60_000 / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
