package subtitle

import (
	"strings"
	"testing"

	"github.com/flexliner/subtitles/internal/testutil"
)

func TestApplyRTL_WrapsPayload(t *testing.T) {
	t.Parallel()
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n" + testutil.HebrewText + "\n"
	expected := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n\u202B" + testutil.HebrewText + "\u202C\n"

	if got := ApplyRTL(input); got != expected {
		t.Errorf("ApplyRTL() = %q, want %q", got, expected)
	}
}

func TestApplyRTL_MultipleCuesAndLines(t *testing.T) {
	t.Parallel()
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nשורה 1\nשורה 2\n\n00:00:03.000 --> 00:00:04.000\nمرحبا"
	expected := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n\u202Bשורה 1\u202C\n\u202Bשורה 2\u202C\n\n" +
		"00:00:03.000 --> 00:00:04.000\n\u202Bمرحبا\u202C"

	if got := ApplyRTL(input); got != expected {
		t.Errorf("ApplyRTL() = %q, want %q", got, expected)
	}
}

func TestApplyRTL_NonRTLUnchanged(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		testutil.SampleSRTAsVTT,
		"WEBVTT\r\n\r\n00:00:01.000 --> 00:00:02.000\r\nHello\r\n",
	}
	for _, input := range inputs {
		if got := ApplyRTL(input); got != input {
			t.Errorf("ApplyRTL(%q) changed non-RTL input to %q", input, got)
		}
	}
}

func TestApplyRTL_LeavesNonCueLinesAlone(t *testing.T) {
	t.Parallel()
	input := "WEBVTT\n\nNOTE שלום\n\n00:00:01.000 --> 00:00:02.000\nשלום"
	got := ApplyRTL(input)
	if !strings.Contains(got, "\nNOTE שלום\n") {
		t.Errorf("Expected NOTE line to pass through unwrapped, got %q", got)
	}
	if !strings.HasSuffix(got, "\u202Bשלום\u202C") {
		t.Errorf("Expected cue payload to be wrapped, got %q", got)
	}
}

func TestApplyRTL_NotIdempotent(t *testing.T) {
	t.Parallel()
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nשלום"
	twice := ApplyRTL(ApplyRTL(input))
	if strings.Count(twice, RLE) != 2 {
		t.Errorf("Expected double wrapping when applied twice, got %q", twice)
	}
}

func TestStripRTL(t *testing.T) {
	t.Parallel()
	if got := StripRTL(" \u202Bשלום\u202C "); got != "שלום" {
		t.Errorf("StripRTL() = %q, want %q", got, "שלום")
	}
	if got := StripRTL("\u202B\u202Bnested\u202C\u202C"); got != "nested" {
		t.Errorf("StripRTL() = %q, want %q", got, "nested")
	}
}
