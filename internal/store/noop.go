package store

import "context"

// NoOpStore drops every record. Used when DB_URL is not set.
type NoOpStore struct{}

func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

func (NoOpStore) RecordRequest(context.Context, RequestRecord) error { return nil }

func (NoOpStore) RecentRequests(context.Context, int) ([]RequestRecord, error) { return nil, nil }

func (NoOpStore) Close() error { return nil }
