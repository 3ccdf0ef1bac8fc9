package cache

import "github.com/rs/zerolog"

// EvictCallback is called when an entry is evicted from the cache.
// The redis provider reports evicted keys with a nil value.
type EvictCallback func(key string, value []byte)

// Cache stores raw subtitle bodies keyed by source URL with LRU semantics.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if found, or nil and false if not.
	Get(key string) ([]byte, bool)

	// Set stores a value with the given key. If the key already exists, it is overwritten.
	Set(key string, value []byte)

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(key string)

	// Len returns the number of entries currently in the cache.
	Len() int

	// Close releases any resources held by the cache (e.g., network connections).
	Close() error
}

// Logger receives errors from cache backends that cannot report them through
// the Cache interface.
type Logger interface {
	Error(msg string, err error)
}

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger adapts a zerolog logger to the cache Logger interface.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{logger: l}
}

func (z zerologLogger) Error(msg string, err error) {
	z.logger.Error().Err(err).Msg(msg)
}
