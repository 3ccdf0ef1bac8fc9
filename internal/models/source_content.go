package models

// SourceContent holds the raw bytes of a subtitle source before decoding.
type SourceContent struct {
	Source      string // URL or public path the bytes came from
	Data        []byte // Undecoded file content
	ContentType string // Content-Type reported by the origin, empty for local files
	FromCache   bool   // True when served from the source cache
}
