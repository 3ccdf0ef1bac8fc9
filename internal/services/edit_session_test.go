package services

import (
	"context"
	"errors"
	"testing"

	"github.com/flexliner/subtitles/internal/apperrors"
	"github.com/flexliner/subtitles/internal/models"
	"github.com/flexliner/subtitles/internal/testutil"
)

func TestEditSession_EditAndCommit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	env.fetcher.sources["/subs/he.srt"] = testutil.Windows1255(testutil.HebrewSRT)
	_ = env.store.Replace(ctx, "movie-1", []models.Track{{Label: "Hebrew", Lang: "he", Src: "/subs/he.srt"}})

	session, err := env.service.OpenSession(ctx, "movie-1", 0)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if session.Len() != 1 {
		t.Fatalf("Expected 1 cue, got %d", session.Len())
	}

	// Committing a clean session stores nothing.
	clean, err := session.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit clean: %v", err)
	}
	if clean.Src != "/subs/he.srt" || env.uploader.count != 0 {
		t.Errorf("Clean commit must not upload, got %+v after %d uploads", clean, env.uploader.count)
	}

	if err := session.SetEnd(0, 3.5); err != nil {
		t.Fatalf("SetEnd: %v", err)
	}
	session.AppendNew()
	if err := session.SetText(1, "שורה חדשה"); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	updated, err := session.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if session.Dirty() {
		t.Error("Session must be clean after Commit")
	}

	want := "WEBVTT\n\n00:00:01.000 --> 00:00:03.500\n" + testutil.HebrewText + "\n\n00:00:03.500 --> 00:00:05.500\nשורה חדשה"
	if got := string(env.fetcher.sources[updated.Src]); got != want {
		t.Errorf("Stored VTT = %q, want %q", got, want)
	}

	reopened, err := env.service.OpenSession(ctx, "movie-1", 0)
	if err != nil {
		t.Fatalf("OpenSession after commit: %v", err)
	}
	if reopened.Len() != 2 {
		t.Errorf("Expected committed cues to be reloaded, got %d", reopened.Len())
	}
}

func TestEditSession_DiscardAfterFailedCommit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	env.fetcher.sources["/subs/a.vtt"] = []byte(testutil.SampleVTT)
	_ = env.store.Replace(ctx, "movie-2", []models.Track{{Src: "/subs/a.vtt"}})

	session, err := env.service.OpenSession(ctx, "movie-2", 0)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	_ = session.Remove(0)

	env.uploader.err = errors.New("bucket unavailable")
	if _, err := session.Commit(ctx); err == nil {
		t.Fatal("Expected commit to fail")
	}
	if !session.Dirty() {
		t.Error("Failed commit must keep the session dirty")
	}

	session.Discard()
	if session.Len() != 2 {
		t.Errorf("Expected Discard to restore 2 cues, got %d", session.Len())
	}
}

func TestOpenSession_NotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	if _, err := env.service.OpenSession(context.Background(), "nobody", 0); !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
