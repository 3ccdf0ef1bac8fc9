package subtitle

import (
	"errors"
	"testing"

	"github.com/flexliner/subtitles/internal/apperrors"
)

func TestEditor_EditAndCommit(t *testing.T) {
	t.Parallel()
	ed := NewEditor([]Cue{{Start: 1, End: 2, Text: "one"}})
	if ed.Dirty() {
		t.Fatal("New editor must not be dirty")
	}

	if err := ed.SetText(0, "uno"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := ed.SetStart(0, 0.5); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	if err := ed.SetEnd(0, 1.5); err != nil {
		t.Fatalf("SetEnd: %v", err)
	}
	if !ed.Dirty() {
		t.Fatal("Editor must be dirty after edits")
	}

	want := "WEBVTT\n\n00:00:00.500 --> 00:00:01.500\nuno"
	if got := ed.VTT(); got != want {
		t.Errorf("VTT() = %q, want %q", got, want)
	}

	ed.MarkCommitted()
	if ed.Dirty() {
		t.Error("Editor must be clean after MarkCommitted")
	}
}

func TestEditor_AppendNew(t *testing.T) {
	t.Parallel()
	ed := NewEditor(nil)
	first := ed.AppendNew()
	if first.Start != 0 || first.End != 2 || first.Text != "" {
		t.Errorf("Unexpected first cue %+v", first)
	}
	second := ed.AppendNew()
	if second.Start != 2 || second.End != 4 {
		t.Errorf("Expected second cue to follow the first, got %+v", second)
	}
	if ed.Len() != 2 {
		t.Errorf("Expected 2 cues, got %d", ed.Len())
	}
}

func TestEditor_RemoveAndDiscard(t *testing.T) {
	t.Parallel()
	ed := NewEditor([]Cue{
		{Start: 1, End: 2, Text: "a"},
		{Start: 2, End: 3, Text: "b"},
		{Start: 3, End: 4, Text: "c"},
	})

	if err := ed.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	cues := ed.Cues()
	if len(cues) != 2 || cues[0].Text != "a" || cues[1].Text != "c" {
		t.Fatalf("Unexpected cues after Remove: %+v", cues)
	}

	ed.Append(Cue{Start: -1, End: -2, Text: "d"})
	last, err := ed.Cue(2)
	if err != nil {
		t.Fatalf("Cue: %v", err)
	}
	if last.Start != 0 || last.End != 0 {
		t.Errorf("Expected negative times to be clamped, got %+v", last)
	}

	ed.Discard()
	if ed.Len() != 3 || ed.Dirty() {
		t.Errorf("Discard must restore the committed buffer, got %d cues dirty=%t", ed.Len(), ed.Dirty())
	}
	if c, _ := ed.Cue(1); c.Text != "b" {
		t.Errorf("Expected removed cue to be restored, got %+v", c)
	}
}

func TestEditor_OutOfRange(t *testing.T) {
	t.Parallel()
	ed := NewEditor([]Cue{{Start: 0, End: 1}})

	checks := map[string]error{
		"Remove":  ed.Remove(3),
		"SetText": ed.SetText(-1, "x"),
		"SetEnd":  ed.SetEnd(1, 2),
	}
	for name, err := range checks {
		if !errors.Is(err, &apperrors.ErrCueIndexOutOfRange{}) {
			t.Errorf("%s: expected ErrCueIndexOutOfRange, got %v", name, err)
		}
	}
	if _, err := ed.Cue(5); err == nil {
		t.Error("Cue(5): expected error")
	}
	if ed.Dirty() {
		t.Error("Failed edits must not mark the editor dirty")
	}
}

func TestEditor_CuesReturnsCopy(t *testing.T) {
	t.Parallel()
	ed := NewEditor([]Cue{{Start: 0, End: 1, Text: "a"}})
	cues := ed.Cues()
	cues[0].Text = "mutated"
	if c, _ := ed.Cue(0); c.Text != "a" {
		t.Error("Cues() must return a copy")
	}
}

func TestNewEditorFromDocument(t *testing.T) {
	t.Parallel()
	ed := NewEditorFromDocument(RawText("1\n00:00:01,000 --> 00:00:02,000\nhi\n"))
	if ed.Len() != 1 {
		t.Fatalf("Expected 1 cue, got %d", ed.Len())
	}
}
