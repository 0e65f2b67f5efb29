// Package transcript fetches caption text for YouTube videos.
package transcript

import (
	"context"
	"errors"
)

// ErrNoTranscript means the video has no caption track that could be read.
var ErrNoTranscript = errors.New("no transcript available")

// DefaultLanguages is the caption language priority.
var DefaultLanguages = []string{"pt-BR", "en"}

// Transcript is the caption text of one video.
type Transcript struct {
	VideoID   string   `json:"video_id"`
	Language  string   `json:"language"`
	Text      string   `json:"text"`
	Available []string `json:"available"`
}

// Fetcher retrieves transcripts.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (Transcript, error)
}
