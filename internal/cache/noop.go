package cache

import (
	"context"
	"time"

	"yt-summarizer/internal/transcript"
)

// NoOpCache is a cache implementation that does nothing.
// Used when CACHE_PROVIDER=none or Redis is unavailable (always cache miss).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// GetTranscript always returns nil (cache miss)
func (c *NoOpCache) GetTranscript(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	return nil, nil
}

// SetTranscript does nothing and always succeeds
func (c *NoOpCache) SetTranscript(ctx context.Context, t transcript.Transcript, ttl time.Duration) error {
	return nil
}

// Close does nothing and always succeeds
func (c *NoOpCache) Close() error {
	return nil
}
