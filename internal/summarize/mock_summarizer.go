package summarize

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSummarizer is a mock implementation of Summarizer using testify/mock.
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, rawURL string) (Result, error) {
	args := m.Called(ctx, rawURL)
	return args.Get(0).(Result), args.Error(1)
}
