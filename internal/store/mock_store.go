package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) RecordRequest(ctx context.Context, rec RequestRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore) RecentRequests(ctx context.Context, limit int) ([]RequestRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RequestRecord), args.Error(1)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
