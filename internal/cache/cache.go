package cache

import (
	"context"
	"time"

	"yt-summarizer/internal/transcript"
)

// Cache stores fetched transcripts so repeated requests for a video skip YouTube.
// Summaries are never cached.
type Cache interface {
	// GetTranscript retrieves a cached transcript by video ID.
	// Returns nil if not found
	GetTranscript(ctx context.Context, videoID string) (*transcript.Transcript, error)

	// SetTranscript stores a transcript with TTL
	SetTranscript(ctx context.Context, t transcript.Transcript, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}
