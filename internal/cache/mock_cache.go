package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"yt-summarizer/internal/transcript"
)

// MockCache is a mock implementation of the Cache interface for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetTranscript(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transcript.Transcript), args.Error(1)
}

func (m *MockCache) SetTranscript(ctx context.Context, t transcript.Transcript, ttl time.Duration) error {
	args := m.Called(ctx, t, ttl)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
