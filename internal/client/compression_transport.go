package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "gzip, br, zstd"

// decoders open a decompressing reader for each supported Content-Encoding.
var decoders = map[string]func(io.Reader) (io.ReadCloser, error){
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport advertises gzip, brotli and zstd and transparently
// decompresses responses, stacked codings included. A response using any
// other coding is returned untouched. Subtitle CDNs commonly serve .srt/.vtt compressed.
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &compressionTransport{next: next}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	codings := contentCodings(resp.Header.Get("Content-Encoding"))
	if len(codings) == 0 {
		return resp, nil
	}
	for _, coding := range codings {
		if _, ok := decoders[coding]; !ok {
			return resp, nil
		}
	}

	body := resp.Body
	for _, coding := range codings {
		reader, err := decoders[coding](body)
		if err != nil {
			body.Close()
			return nil, err
		}
		body = &decompressedBody{ReadCloser: reader, raw: body}
	}

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// decompressedBody closes the decoder and then the raw response body.
type decompressedBody struct {
	io.ReadCloser
	raw io.ReadCloser
}

func (b *decompressedBody) Close() error {
	decErr := b.ReadCloser.Close()
	if err := b.raw.Close(); err != nil {
		return err
	}
	return decErr
}

// contentCodings lists the codings of a Content-Encoding header in the order
// they must be removed, outermost first. identity is dropped.
func contentCodings(header string) []string {
	parts := strings.Split(header, ",")
	codings := make([]string, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		coding := strings.ToLower(strings.TrimSpace(parts[i]))
		if coding == "" || coding == "identity" {
			continue
		}
		codings = append(codings, coding)
	}
	return codings
}
