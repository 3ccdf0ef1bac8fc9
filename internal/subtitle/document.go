package subtitle

import "strings"

// Document is subtitle content held by an editor in one of two modes: raw
// text (RawText) or a structured cue list (CueList).
//
// Converting between the modes is lossy. RawText -> CueList drops cue
// identifiers, NOTE and STYLE blocks and cue settings, and the way back
// reformats every timestamp, so a raw document will generally not survive a
// round trip byte for byte.
type Document interface {
	// VTT renders the document as WebVTT suitable for storage. No bidi
	// markers are added.
	VTT() string
	isDocument()
}

// RawText is subtitle content edited as free text (SRT or WebVTT).
type RawText string

// CueList is subtitle content edited cue by cue.
type CueList []Cue

func (RawText) isDocument() {}
func (CueList) isDocument() {}

// VTT converts SRT content to WebVTT and returns WebVTT content trimmed.
func (t RawText) VTT() string {
	text := string(t)
	if IsSRT(text) {
		return SRTToVTT(text)
	}
	return strings.TrimSpace(text)
}

// VTT serializes the cues.
func (c CueList) VTT() string {
	return SerializeCues(c)
}

// ToCues returns the cue representation of d. A CueList is copied.
func ToCues(d Document) CueList {
	switch v := d.(type) {
	case CueList:
		out := make(CueList, len(v))
		copy(out, v)
		return out
	case RawText:
		return CueList(ParseCues(string(v)))
	default:
		return CueList{}
	}
}

// ToRaw returns the raw text representation of d.
func ToRaw(d Document) RawText {
	switch v := d.(type) {
	case RawText:
		return v
	case CueList:
		return RawText(SerializeCues(v))
	default:
		return ""
	}
}

// IsEmpty reports whether d holds nothing worth saving: blank text or no cues.
func IsEmpty(d Document) bool {
	switch v := d.(type) {
	case RawText:
		return strings.TrimSpace(string(v)) == ""
	case CueList:
		return len(v) == 0
	default:
		return true
	}
}
