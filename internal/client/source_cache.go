package client

import (
	"fmt"
	"time"

	"github.com/flexliner/subtitles/internal/cache"
	"github.com/flexliner/subtitles/internal/config"
)

// SourceCacheGroup is the metrics group and redis namespace of the source cache.
const SourceCacheGroup = "subtitle_sources"

// NewSourceCache builds the cache of fetched remote subtitle bodies from the
// cache section of cfg.
func NewSourceCache(cfg *config.Config) (cache.Cache, error) {
	ttl := time.Hour
	if cfg.Cache.TTL != "" {
		parsed, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("invalid cache ttl %q: %w", cfg.Cache.TTL, err)
		}
		ttl = parsed
	}

	provider := cfg.Cache.Provider
	if provider == "" {
		provider = "memory"
	}

	logger := config.GetLogger()
	c, err := cache.New(provider, cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           ttl,
		Logger:        cache.NewZerologLogger(logger),
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         SourceCacheGroup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create source cache: %w", err)
	}

	logger.Info().
		Str("provider", provider).
		Int("size", cfg.Cache.Size).
		Dur("ttl", ttl).
		Msg("Subtitle source cache ready")
	return c, nil
}
