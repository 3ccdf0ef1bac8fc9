package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"

	"github.com/flexliner/subtitles/internal/cache"
	"github.com/flexliner/subtitles/internal/config"
	"github.com/flexliner/subtitles/internal/models"
)

// Fetcher retrieves the undecoded bytes of a subtitle source.
type Fetcher interface {
	// Fetch reads src, an http(s) URL or a "/"-rooted path under the public
	// directory. Remote bodies are cached by URL.
	Fetch(ctx context.Context, src string) (*models.SourceContent, error)

	// Forget drops src from the source cache.
	Forget(src string)

	// Close releases any resources held by the fetcher (e.g., cache connections).
	Close() error
}

// fetcher implements the Fetcher interface
type fetcher struct {
	httpClient *http.Client
	userAgent  string
	publicDir  string
	maxBytes   int64
	sources    cache.Cache // nil disables caching
}

// NewFetcher creates a fetcher with proxy, compression and retry support.
// sources may be nil; when set the fetcher owns it and closes it on Close.
func NewFetcher(cfg *config.Config, sources cache.Cache) Fetcher {
	return &fetcher{
		httpClient: newHTTPClient(cfg),
		userAgent:  cfg.UserAgent,
		publicDir:  cfg.PublicDir,
		maxBytes:   cfg.Fetch.MaxBytes,
		sources:    sources,
	}
}

func newHTTPClient(cfg *config.Config) *http.Client {
	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to keep its pooling and HTTP/2 settings.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	// Each attempt goes through decompression; the retry loop sits outside it.
	transport := failsafehttp.NewRoundTripper(
		newCompressionTransport(baseTransport),
		newRetryPolicy(cfg.Fetch.MaxRetries),
	)

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func (f *fetcher) Forget(src string) {
	if f.sources != nil {
		f.sources.Delete(src)
	}
}

// Close releases the source cache and idle connections.
func (f *fetcher) Close() error {
	f.httpClient.CloseIdleConnections()
	if f.sources != nil {
		return f.sources.Close()
	}
	return nil
}
