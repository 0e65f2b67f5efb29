package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	StatusSucceeded    RequestStatus = "succeeded"
	StatusInvalidURL   RequestStatus = "invalid_url"
	StatusNoTranscript RequestStatus = "no_transcript"
	StatusFailed       RequestStatus = "failed"
)

// RequestRecord describes one handled summarize request. The summary text itself is not kept.
type RequestRecord struct {
	ID                 uuid.UUID
	VideoID            string
	Status             RequestStatus
	TranscriptLanguage string
	AvailableLanguages []string
	TranscriptChars    int
	Cached             bool
	Duration           time.Duration
	CreatedAt          time.Time
}

// Store defines the request log contract.
type Store interface {
	RecordRequest(ctx context.Context, rec RequestRecord) error
	RecentRequests(ctx context.Context, limit int) ([]RequestRecord, error)
	Close() error
}
