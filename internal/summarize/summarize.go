// Package summarize turns a video URL into a summary: video ID, transcript, LLM.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"yt-summarizer/internal/cache"
	"yt-summarizer/internal/llm"
	"yt-summarizer/internal/store"
	"yt-summarizer/internal/transcript"
	"yt-summarizer/internal/youtube"
)

var (
	ErrNoURL        = errors.New("no URL provided")
	ErrInvalidURL   = errors.New("invalid YouTube URL")
	ErrNoTranscript = transcript.ErrNoTranscript
	ErrSummarize    = errors.New("summarization failed")
)

const (
	DefaultMaxTranscriptChars = 100000
	DefaultCacheTTL           = 24 * time.Hour
)

// Options tune the pipeline.
type Options struct {
	MaxTranscriptChars int
	CacheTTL           time.Duration
}

// Result is a produced summary.
type Result struct {
	VideoID  string
	Summary  string
	Language string
	Cached   bool
}

// Summarizer is the pipeline contract the HTTP layer depends on.
type Summarizer interface {
	Summarize(ctx context.Context, rawURL string) (Result, error)
}

// Service runs the summarization pipeline. Concurrent requests for the same
// video share one pipeline run.
type Service struct {
	log     *slog.Logger
	fetcher transcript.Fetcher
	cache   cache.Cache
	llm     llm.Client
	store   store.Store
	opts    Options
	group   singleflight.Group
}

func New(log *slog.Logger, fetcher transcript.Fetcher, c cache.Cache, l llm.Client, st store.Store, opts Options) *Service {
	if opts.MaxTranscriptChars <= 0 {
		opts.MaxTranscriptChars = DefaultMaxTranscriptChars
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if st == nil {
		st = store.NewNoOpStore()
	}
	return &Service{
		log:     log,
		fetcher: fetcher,
		cache:   c,
		llm:     l,
		store:   st,
		opts:    opts,
	}
}

type run struct {
	result    Result
	available []string
	chars     int
}

// Summarize produces a summary for rawURL.
func (s *Service) Summarize(ctx context.Context, rawURL string) (Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Result{}, ErrNoURL
	}

	start := time.Now()
	videoID := youtube.VideoID(rawURL)
	if videoID == "" {
		s.record(ctx, store.RequestRecord{Status: store.StatusInvalidURL, Duration: time.Since(start)})
		return Result{}, ErrInvalidURL
	}
	s.log.Info("processing video", "url", rawURL, "video_id", videoID)

	// The shared run must not die with whichever caller started it.
	v, err, shared := s.group.Do(videoID, func() (any, error) {
		return s.run(context.WithoutCancel(ctx), videoID)
	})
	r, _ := v.(*run)

	rec := store.RequestRecord{VideoID: videoID, Duration: time.Since(start)}
	if r != nil {
		rec.TranscriptLanguage = r.result.Language
		rec.AvailableLanguages = r.available
		rec.TranscriptChars = r.chars
		rec.Cached = r.result.Cached
	}
	switch {
	case err == nil:
		rec.Status = store.StatusSucceeded
	case errors.Is(err, ErrNoTranscript):
		rec.Status = store.StatusNoTranscript
	default:
		rec.Status = store.StatusFailed
	}
	s.record(ctx, rec)

	if err != nil {
		s.log.Warn("summarize failed", "video_id", videoID, "err", err, "shared", shared)
		return Result{}, err
	}
	return r.result, nil
}

func (s *Service) run(ctx context.Context, videoID string) (*run, error) {
	t, cached, err := s.transcript(ctx, videoID)
	if err != nil {
		return nil, err
	}
	r := &run{
		result:    Result{VideoID: videoID, Language: t.Language, Cached: cached},
		available: t.Available,
		chars:     len([]rune(t.Text)),
	}

	summary, err := s.llm.Summarize(ctx, Truncate(t.Text, s.opts.MaxTranscriptChars))
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrSummarize, err)
	}
	r.result.Summary = summary
	return r, nil
}

func (s *Service) transcript(ctx context.Context, videoID string) (transcript.Transcript, bool, error) {
	cachedT, err := s.cache.GetTranscript(ctx, videoID)
	if err != nil {
		s.log.Warn("transcript cache read failed", "video_id", videoID, "err", err)
	}
	if cachedT != nil {
		return *cachedT, true, nil
	}

	t, err := s.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return transcript.Transcript{}, false, err
	}
	s.log.Info("transcript found", "video_id", videoID, "language", t.Language, "chars", len(t.Text))

	if err := s.cache.SetTranscript(ctx, t, s.opts.CacheTTL); err != nil {
		s.log.Warn("transcript cache write failed", "video_id", videoID, "err", err)
	}
	return t, false, nil
}

func (s *Service) record(ctx context.Context, rec store.RequestRecord) {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()
	if err := s.store.RecordRequest(context.WithoutCancel(ctx), rec); err != nil {
		s.log.Warn("failed to record request", "video_id", rec.VideoID, "err", err)
	}
}

// Truncate caps text at limit characters, marking the cut with "...".
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + "..."
}
