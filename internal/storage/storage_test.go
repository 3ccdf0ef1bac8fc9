package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/flexliner/subtitles/internal/config"
)

func TestObjectName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		filename    string
		contentType string
		ext         string
	}{
		{"episode-1.he.SRT", "application/x-subrip", ".srt"},
		{"subtitles.vtt", "text/vtt", ".vtt"},
		{"poster.jpeg", "image/jpeg", ".jpeg"},
		{"clip.MOV", "video/quicktime", ".mov"},
		{"noext", "application/octet-stream", ".bin"},
		{"noext", "image/png", ".png"},
		{"payload.zzq", "image/webp", ".webp"},
		{"evil.html", "application/octet-stream", ".bin"},
		{"../../etc/passwd", "", ""},
	}
	for _, tt := range tests {
		name := ObjectName(tt.filename, tt.contentType)
		if !strings.HasSuffix(name, tt.ext) {
			t.Errorf("ObjectName(%q, %q) = %q, want suffix %q", tt.filename, tt.contentType, name, tt.ext)
		}
		if _, err := uuid.Parse(strings.TrimSuffix(name, tt.ext)); err != nil {
			t.Errorf("ObjectName(%q, %q) = %q, expected a UUID base: %v", tt.filename, tt.contentType, name, err)
		}
		if strings.Contains(name, "/") {
			t.Errorf("ObjectName(%q, %q) = %q must not contain a path separator", tt.filename, tt.contentType, name)
		}
	}

	if ObjectName("a.vtt", "text/vtt") == ObjectName("a.vtt", "text/vtt") {
		t.Error("ObjectName must be random")
	}
}

func TestLocalUploader_Upload(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "uploads")
	u := NewLocalUploader(dir, "/uploads/")

	content := []byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nhi")
	url, err := u.Upload(context.Background(), "subtitles.vtt", bytes.NewReader(content), int64(len(content)), "text/vtt")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".vtt") {
		t.Fatalf("Unexpected URL %q", url)
	}

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Errorf("Stored content mismatch: %q", stored)
	}
}

func TestLocalUploader_ShortWriteRemovesFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	u := NewLocalUploader(dir, "/uploads")

	_, err := u.Upload(context.Background(), "a.srt", strings.NewReader("short"), 100, "application/x-subrip")
	if err == nil {
		t.Fatal("Expected error for size mismatch")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected partial file to be removed, found %d entries", len(entries))
	}
}

func TestLocalUploader_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := NewLocalUploader(t.TempDir(), "/uploads")
	if _, err := u.Upload(ctx, "a.vtt", strings.NewReader("WEBVTT"), 6, "text/vtt"); err == nil {
		t.Fatal("Expected error for canceled context")
	}
}

func TestNew_Providers(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	cfg.Storage.UploadDir = t.TempDir()
	cfg.Storage.URLPrefix = "/uploads"

	u, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New local: %v", err)
	}
	if _, ok := u.(*LocalUploader); !ok {
		t.Errorf("Expected *LocalUploader, got %T", u)
	}

	cfg.Storage.Provider = "minio"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("Expected error for minio without endpoint and bucket")
	}

	cfg.Storage.Provider = "ftp"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestPublicBaseURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		opts     MinioOptions
		expected string
	}{
		{"public url", MinioOptions{Endpoint: "minio:9000", Bucket: "subs", PublicURL: "https://cdn.example.com/subs/"}, "https://cdn.example.com/subs"},
		{"endpoint plain", MinioOptions{Endpoint: "minio:9000", Bucket: "subs"}, "http://minio:9000/subs"},
		{"endpoint ssl", MinioOptions{Endpoint: "s3.example.com", Bucket: "subs", UseSSL: true}, "https://s3.example.com/subs"},
	}
	for _, tt := range tests {
		if got := publicBaseURL(tt.opts); got != tt.expected {
			t.Errorf("%s: publicBaseURL() = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestContentType(t *testing.T) {
	t.Parallel()
	allowed := []string{"text/vtt", "text/plain; charset=utf-8", "VIDEO/MP4", "application/x-subrip"}
	for _, ct := range allowed {
		if !IsAllowedContentType(ct) {
			t.Errorf("Expected %q to be allowed", ct)
		}
	}
	for _, ct := range []string{"", "text/html", "application/x-msdownload", ";;"} {
		if IsAllowedContentType(ct) {
			t.Errorf("Expected %q to be rejected", ct)
		}
	}

	if got := ContentTypeFor("he.SRT", "application/octet-stream"); got != "application/x-subrip" {
		t.Errorf("Expected subtitle extension to win, got %q", got)
	}
	if got := ContentTypeFor("poster.png", "image/png"); got != "image/png" {
		t.Errorf("Expected declared type, got %q", got)
	}
	if got := ContentTypeFor("blob", ""); got != "application/octet-stream" {
		t.Errorf("Expected octet-stream fallback, got %q", got)
	}
}

func TestIsAllowedExtension(t *testing.T) {
	t.Parallel()
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"movie.he.srt", true},
		{"poster.PNG", true},
		{"clip.webm", true},
		{"noext", true},
		{"payload.zzq", true},
		{"evil.html", false},
		{"evil.HTM", false},
		{"script.js", false},
		{"image.svg", false},
	}
	for _, tt := range tests {
		if got := IsAllowedExtension(tt.filename); got != tt.allowed {
			t.Errorf("IsAllowedExtension(%q) = %v, want %v", tt.filename, got, tt.allowed)
		}
	}
}

func TestServeContentType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expected string
	}{
		{"/uploads/a.vtt", "text/vtt"},
		{"/uploads/a.srt", "application/x-subrip"},
		{"/uploads/a.mp4", "video/mp4"},
		{"/uploads/a.bin", "application/octet-stream"},
		{"/uploads/a", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := ServeContentType(tt.name); got != tt.expected {
			t.Errorf("ServeContentType(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}
