package subtitle

import (
	"math"
	"testing"

	"github.com/flexliner/subtitles/internal/testutil"
)

func assertCues(t *testing.T, got, want []Cue) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d cues, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if math.Abs(got[i].Start-want[i].Start) > 0.0005 {
			t.Errorf("Cue %d: expected start %v, got %v", i, want[i].Start, got[i].Start)
		}
		if math.Abs(got[i].End-want[i].End) > 0.0005 {
			t.Errorf("Cue %d: expected end %v, got %v", i, want[i].End, got[i].End)
		}
		if got[i].Text != want[i].Text {
			t.Errorf("Cue %d: expected text %q, got %q", i, want[i].Text, got[i].Text)
		}
	}
}

func TestParseCues_SRT(t *testing.T) {
	t.Parallel()
	assertCues(t, ParseCues(testutil.SampleSRT), []Cue{
		{Start: 1, End: 2.5, Text: "Hello world"},
		{Start: 3, End: 4, Text: "Line one\nLine two"},
	})
}

func TestParseCues_VTT(t *testing.T) {
	t.Parallel()
	assertCues(t, ParseCues(testutil.SampleVTT), []Cue{
		{Start: 0.5, End: 1.75, Text: "First"},
		{Start: 2, End: 3, Text: "Second\nline"},
	})
}

func TestParseCues_HybridSeparators(t *testing.T) {
	t.Parallel()
	input := "WEBVTT\n\n00:00:01,000 --> 00:00:02.000\nmixed\n"
	assertCues(t, ParseCues(input), []Cue{{Start: 1, End: 2, Text: "mixed"}})
}

func TestParseCues_RepairsEndBeforeStart(t *testing.T) {
	t.Parallel()
	input := "00:00:05.000 --> 00:00:03.000\nbackwards\n"
	assertCues(t, ParseCues(input), []Cue{{Start: 5, End: 7, Text: "backwards"}})
}

func TestParseCues_StripsRTLMarkers(t *testing.T) {
	t.Parallel()
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n\u202B שלום \u202C\n\u202Bעולם\u202C\n"
	assertCues(t, ParseCues(input), []Cue{{Start: 1, End: 2, Text: "שלום\nעולם"}})
}

func TestParseCues_TimingWithoutPayload(t *testing.T) {
	t.Parallel()
	input := "00:00:01.000 --> 00:00:02.000\n\n00:00:03.000 --> 00:00:04.000\nB"
	assertCues(t, ParseCues(input), []Cue{
		{Start: 1, End: 2, Text: ""},
		{Start: 3, End: 4, Text: "B"},
	})
}

func TestParseCues_EmptyAndGarbage(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "WEBVTT", "hello\nworld", "12\n13\n"} {
		if got := ParseCues(input); len(got) != 0 {
			t.Errorf("ParseCues(%q) = %+v, want no cues", input, got)
		}
	}
}

func TestSerializeCues(t *testing.T) {
	t.Parallel()
	cues := []Cue{
		{Start: 1, End: 2.5, Text: "  Hello world  "},
		{Start: 3, End: 4, Text: ""},
		{Start: 3723.456, End: 3724, Text: "Line one\nLine two"},
	}
	expected := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:02.500\nHello world\n\n" +
		"00:00:03.000 --> 00:00:04.000\n \n\n" +
		"01:02:03.456 --> 01:02:04.000\nLine one\nLine two"

	if got := SerializeCues(cues); got != expected {
		t.Errorf("SerializeCues() = %q, want %q", got, expected)
	}
}

func TestSerializeCues_TrailingEmptyCue(t *testing.T) {
	t.Parallel()
	cues := []Cue{
		{Start: 1, End: 2, Text: "A"},
		{Start: 2, End: 4, Text: "   "},
	}
	expected := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nA\n\n00:00:02.000 --> 00:00:04.000"

	got := SerializeCues(cues)
	if got != expected {
		t.Errorf("SerializeCues() = %q, want %q", got, expected)
	}
	assertCues(t, ParseCues(got), []Cue{
		{Start: 1, End: 2, Text: "A"},
		{Start: 2, End: 4, Text: ""},
	})
}

func TestSerializeCues_Empty(t *testing.T) {
	t.Parallel()
	if got := SerializeCues(nil); got != "WEBVTT" {
		t.Errorf("SerializeCues(nil) = %q, want %q", got, "WEBVTT")
	}
}

func TestCues_RoundTrip(t *testing.T) {
	t.Parallel()
	cues := []Cue{
		{Start: 0, End: 1.234, Text: "first"},
		{Start: 1.5, End: 3.0004, Text: "two\nlines"},
		{Start: 3599.999, End: 3601.5, Text: "an hour in"},
		{Start: 5000, End: 5002, Text: testutil.HebrewText},
	}
	assertCues(t, ParseCues(SerializeCues(cues)), cues)
}

func TestCues_RTLRoundTrip(t *testing.T) {
	t.Parallel()
	cues := []Cue{
		{Start: 1, End: 2, Text: testutil.HebrewText},
		{Start: 2, End: 3, Text: "שורה ראשונה\n123 שורה שנייה!"},
	}
	served := ApplyRTL(SerializeCues(cues))
	assertCues(t, ParseCues(served), cues)
}
