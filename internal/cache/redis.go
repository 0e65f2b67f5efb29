package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"yt-summarizer/internal/transcript"
)

// Key prefix for cached transcripts
const transcriptKeyPrefix = "transcript:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache client
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{
		client: client,
	}, nil
}

// GetTranscript retrieves a cached transcript by video ID
func (c *RedisCache) GetTranscript(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	data, err := c.client.Get(ctx, transcriptKeyPrefix+videoID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}

	var t transcript.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SetTranscript stores a transcript with TTL
func (c *RedisCache) SetTranscript(ctx context.Context, t transcript.Transcript, ttl time.Duration) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, transcriptKeyPrefix+t.VideoID, data, ttl).Err()
}

// Close closes the cache connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
