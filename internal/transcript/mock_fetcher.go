package transcript

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of Fetcher using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, videoID string) (Transcript, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(Transcript), args.Error(1)
}
