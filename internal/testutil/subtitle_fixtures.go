package testutil

import (
	"golang.org/x/text/encoding/charmap"
)

// SampleSRT is a two cue SRT document with a multi-line payload.
const SampleSRT = "1\n00:00:01,000 --> 00:00:02,500\nHello world\n\n2\n00:00:03,000 --> 00:00:04,000\nLine one\nLine two\n"

// SampleSRTAsVTT is SampleSRT after SRT to WebVTT conversion.
const SampleSRTAsVTT = "WEBVTT\n\n00:00:01.000 --> 00:00:02.500\nHello world\n\n00:00:03.000 --> 00:00:04.000\nLine one\nLine two"

// SampleVTT is a small WebVTT document with a cue identifier and a NOTE block.
const SampleVTT = "WEBVTT\n\nNOTE created by hand\n\nintro\n00:00:00.500 --> 00:00:01.750\nFirst\n\n00:00:02.000 --> 00:00:03.000\nSecond\nline\n"

// HebrewText is a short Hebrew phrase ("hello world").
const HebrewText = "שלום עולם"

// HebrewSRT is a one cue SRT document carrying HebrewText.
const HebrewSRT = "1\n00:00:01,000 --> 00:00:02,000\n" + HebrewText + "\n"

// Windows1255 encodes s with the legacy 8-bit Hebrew code page, the way
// older subtitle editors saved Hebrew files. It panics on characters the code
// page cannot represent, which only happens with a broken fixture.
func Windows1255(s string) []byte {
	out, err := charmap.Windows1255.NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return out
}
