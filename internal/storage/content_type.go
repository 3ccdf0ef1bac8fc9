package storage

import (
	"mime"
	"path/filepath"
	"strings"
)

// allowedContentTypes maps each media type the upload endpoint accepts to the
// extension stored objects of that type get when the uploaded name has none
// that fits.
var allowedContentTypes = map[string]string{
	"image/jpeg":               ".jpg",
	"image/png":                ".png",
	"image/webp":               ".webp",
	"image/gif":                ".gif",
	"video/mp4":                ".mp4",
	"video/webm":               ".webm",
	"video/quicktime":          ".mov",
	"video/x-msvideo":          ".avi",
	"text/plain":               ".txt",
	"application/x-subrip":     ".srt",
	"text/vtt":                 ".vtt",
	"application/octet-stream": ".bin",
}

// extensionTypes covers media extensions that are missing from Go's builtin
// table and from many system mime.types files.
var extensionTypes = map[string]string{
	".srt":  "application/x-subrip",
	".vtt":  "text/vtt",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".txt":  "text/plain",
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

// IsAllowedContentType reports whether an upload of this media type is
// accepted. Parameters such as charset are ignored.
func IsAllowedContentType(contentType string) bool {
	_, ok := allowedContentTypes[mediaType(contentType)]
	return ok
}

// typeForExtension returns the media type ext is served as, or "" when the
// extension is unknown.
func typeForExtension(ext string) string {
	ext = strings.ToLower(ext)
	if ext == "" {
		return ""
	}
	if ct, ok := extensionTypes[ext]; ok {
		return ct
	}
	return mime.TypeByExtension(ext)
}

// IsAllowedExtension reports whether the extension of filename may be stored.
// Names without an extension, or with one no media type is registered for,
// pass since ObjectName replaces such extensions.
func IsAllowedExtension(filename string) bool {
	ct := typeForExtension(filepath.Ext(filename))
	return ct == "" || IsAllowedContentType(ct)
}

// ContentTypeFor picks the media type for an upload. Subtitle extensions win
// over the declared type since browsers rarely know .srt or .vtt.
func ContentTypeFor(filename, declared string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".srt", ".vtt":
		return extensionTypes[ext]
	}
	if declared != "" {
		return declared
	}
	if ct := typeForExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// storedExtension keeps the extension of filename when it names an allowed
// media type and otherwise derives one from contentType.
func storedExtension(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct := typeForExtension(ext); ct != "" && IsAllowedContentType(ct) {
		return ext
	}
	return allowedContentTypes[mediaType(contentType)]
}

// ServeContentType is the Content-Type for serving a stored file by name.
// Unknown extensions are served as opaque bytes so browsers never sniff them.
func ServeContentType(name string) string {
	if ct := typeForExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
