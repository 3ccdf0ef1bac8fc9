package subtitle

import (
	"math"

	"github.com/flexliner/subtitles/internal/apperrors"
)

// Editor is an owned, mutable cue buffer for one editing session.
//
// Edits only touch the in-memory buffer. Callers persist VTT() through their
// own upload path and then call MarkCommitted; Discard drops everything since
// the last commit. An Editor is not safe for concurrent use.
type Editor struct {
	cues      []Cue
	committed []Cue
	dirty     bool
}

// NewEditor creates an editor holding a copy of cues.
func NewEditor(cues []Cue) *Editor {
	return &Editor{
		cues:      cloneCues(cues),
		committed: cloneCues(cues),
	}
}

// NewEditorFromDocument creates an editor from either document mode.
func NewEditorFromDocument(d Document) *Editor {
	return NewEditor(ToCues(d))
}

// Len returns the number of cues.
func (e *Editor) Len() int {
	return len(e.cues)
}

// Cue returns the cue at index i.
func (e *Editor) Cue(i int) (Cue, error) {
	if err := e.check(i); err != nil {
		return Cue{}, err
	}
	return e.cues[i], nil
}

// Cues returns a copy of the buffer.
func (e *Editor) Cues() CueList {
	return CueList(cloneCues(e.cues))
}

// Append adds c at the end of the buffer.
func (e *Editor) Append(c Cue) {
	c.Start = clampTime(c.Start)
	c.End = clampTime(c.End)
	e.cues = append(e.cues, c)
	e.dirty = true
}

// AppendNew adds an empty two second cue starting where the last cue ends.
func (e *Editor) AppendNew() Cue {
	start := 0.0
	if n := len(e.cues); n > 0 {
		start = e.cues[n-1].End
	}
	c := Cue{Start: start, End: start + repairDuration}
	e.Append(c)
	return e.cues[len(e.cues)-1]
}

// Remove deletes the cue at index i.
func (e *Editor) Remove(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.cues = append(e.cues[:i], e.cues[i+1:]...)
	e.dirty = true
	return nil
}

// SetStart changes the start time of cue i.
func (e *Editor) SetStart(i int, sec float64) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.cues[i].Start = clampTime(sec)
	e.dirty = true
	return nil
}

// SetEnd changes the end time of cue i.
func (e *Editor) SetEnd(i int, sec float64) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.cues[i].End = clampTime(sec)
	e.dirty = true
	return nil
}

// SetText replaces the text of cue i.
func (e *Editor) SetText(i int, text string) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.cues[i].Text = text
	e.dirty = true
	return nil
}

// Dirty reports whether the buffer changed since the last commit.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// VTT serializes the current buffer.
func (e *Editor) VTT() string {
	return SerializeCues(e.cues)
}

// MarkCommitted records the current buffer as persisted.
func (e *Editor) MarkCommitted() {
	e.committed = cloneCues(e.cues)
	e.dirty = false
}

// Discard reverts the buffer to the last committed state.
func (e *Editor) Discard() {
	e.cues = cloneCues(e.committed)
	e.dirty = false
}

func (e *Editor) check(i int) error {
	if i < 0 || i >= len(e.cues) {
		return &apperrors.ErrCueIndexOutOfRange{Index: i, Len: len(e.cues)}
	}
	return nil
}

func clampTime(sec float64) float64 {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		return 0
	}
	return sec
}

func cloneCues(cues []Cue) []Cue {
	out := make([]Cue, len(cues))
	copy(out, cues)
	return out
}
