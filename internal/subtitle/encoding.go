package subtitle

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies which candidate decoding Decode picked for a buffer.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1255 Encoding = "windows-1255"
)

// Decode converts a raw subtitle buffer to text.
//
// The buffer is decoded both as UTF-8 and as Windows-1255 and the result with
// more runes from the Hebrew block wins. Ties, including buffers without any
// Hebrew at all, keep the UTF-8 reading, and so does a valid UTF-8 buffer that
// already reads as Hebrew. Decode never fails: in the worst case
// the returned text is garbled.
func Decode(buf []byte) string {
	text, _ := resolve(buf)
	return text
}

// DetectEncoding reports which candidate Decode would use for buf.
func DetectEncoding(buf []byte) Encoding {
	_, enc := resolve(buf)
	return enc
}

// DecodeWithEncoding is Decode that also reports the winning candidate.
func DecodeWithEncoding(buf []byte) (string, Encoding) {
	return resolve(buf)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func resolve(buf []byte) (string, Encoding) {
	if len(buf) == 0 {
		return "", EncodingUTF8
	}

	asUTF8 := decodeUTF8(buf)
	if bytes.HasPrefix(buf, utf8BOM) {
		return asUTF8, EncodingUTF8
	}
	utf8Hebrew := countHebrew(asUTF8)
	// The UTF-8 lead byte 0xD7 reads as U+05F3 in Windows-1255, so valid
	// UTF-8 Hebrew always scores at least as high in the legacy reading.
	if utf8Hebrew > 0 && utf8.Valid(buf) {
		return asUTF8, EncodingUTF8
	}
	asLegacy := decodeWindows1255(buf)

	if countHebrew(asLegacy) > utf8Hebrew {
		return asLegacy, EncodingWindows1255
	}
	return asUTF8, EncodingUTF8
}

// decodeUTF8 drops a leading byte order mark and replaces invalid sequences with U+FFFD.
func decodeUTF8(buf []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(buf)
	if err != nil {
		return strings.ToValidUTF8(string(buf), string(utf8.RuneError))
	}
	return string(out)
}

func decodeWindows1255(buf []byte) string {
	out, err := charmap.Windows1255.NewDecoder().Bytes(buf)
	if err != nil {
		return ""
	}
	return string(out)
}

func countHebrew(s string) int {
	n := 0
	for _, r := range s {
		if isHebrew(r) {
			n++
		}
	}
	return n
}

func isHebrew(r rune) bool {
	return r >= 0x0590 && r <= 0x05FF
}

func isArabic(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}
