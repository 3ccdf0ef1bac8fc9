package subtitle

import (
	"testing"

	"github.com/flexliner/subtitles/internal/testutil"
)

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    []byte
		expected string
		encoding Encoding
	}{
		{
			name:     "empty buffer",
			input:    nil,
			expected: "",
			encoding: EncodingUTF8,
		},
		{
			name:     "ascii only ties to utf-8",
			input:    []byte(testutil.SampleSRT),
			expected: testutil.SampleSRT,
			encoding: EncodingUTF8,
		},
		{
			name:     "utf-8 hebrew",
			input:    []byte(testutil.HebrewSRT),
			expected: testutil.HebrewSRT,
			encoding: EncodingUTF8,
		},
		{
			name:     "windows-1255 hebrew",
			input:    testutil.Windows1255(testutil.HebrewSRT),
			expected: testutil.HebrewSRT,
			encoding: EncodingWindows1255,
		},
		{
			name:     "utf-8 byte order mark is dropped",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("WEBVTT\n")...),
			expected: "WEBVTT\n",
			encoding: EncodingUTF8,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Decode(tt.input)
			if got != tt.expected {
				t.Errorf("Decode() = %q, want %q", got, tt.expected)
			}
			if enc := DetectEncoding(tt.input); enc != tt.encoding {
				t.Errorf("DetectEncoding() = %q, want %q", enc, tt.encoding)
			}
		})
	}
}

func TestDecode_InvalidUTF8WithoutHebrew(t *testing.T) {
	t.Parallel()
	// 0xA9 is "©" in Windows-1255, so neither reading has Hebrew and UTF-8 wins the tie.
	got := Decode([]byte("Caf\xa9"))
	if got != "Caf\uFFFD" {
		t.Errorf("Expected replacement character for invalid byte, got %q", got)
	}
}

func TestCountHebrew(t *testing.T) {
	t.Parallel()
	if n := countHebrew(testutil.HebrewText); n != 8 {
		t.Errorf("countHebrew(%q) = %d, want 8", testutil.HebrewText, n)
	}
	if n := countHebrew("مرحبا"); n != 0 {
		t.Errorf("Arabic must not count as Hebrew, got %d", n)
	}
}

func TestDecode_BOMWithHebrewStaysUTF8(t *testing.T) {
	t.Parallel()
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(testutil.HebrewSRT)...)
	if got := Decode(input); got != testutil.HebrewSRT {
		t.Errorf("Decode() = %q, want %q", got, testutil.HebrewSRT)
	}
}

func TestDecode_UTF8HebrewWithThreeBytePunctuation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{name: "ellipsis", input: "שלום\u2026 עולם"},
		{name: "dash", input: "שלום \u2014 עולם"},
		{name: "curly quotes", input: "\u201Cשלום\u201D"},
		{name: "embedding markers", input: "00:00:01.000 --> 00:00:02.000\n" + RLE + "שלום" + PDF},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, enc := DecodeWithEncoding([]byte(tt.input))
			if enc != EncodingUTF8 {
				t.Errorf("DecodeWithEncoding() encoding = %q, want %q", enc, EncodingUTF8)
			}
			if got != tt.input {
				t.Errorf("DecodeWithEncoding() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestDecode_LegacyHebrewWithPunctuation(t *testing.T) {
	t.Parallel()
	// In Windows-1255 the ellipsis is the single byte 0x85.
	input := "שלום\u2026 עולם"
	got, enc := DecodeWithEncoding(testutil.Windows1255(input))
	if enc != EncodingWindows1255 || got != input {
		t.Errorf("DecodeWithEncoding() = %q, %q; want %q, %q", got, enc, input, EncodingWindows1255)
	}
}
