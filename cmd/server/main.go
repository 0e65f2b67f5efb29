package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"yt-summarizer/internal/api"
	"yt-summarizer/internal/app"
	"yt-summarizer/internal/httputil"
	"yt-summarizer/internal/render"
	"yt-summarizer/internal/store"
	"yt-summarizer/internal/summarize"
)

const (
	maxBodyBytes = 64 << 10

	defaultRecentLimit = 20
	maxRecentLimit     = 200

	shutdownTimeout = 15 * time.Second
)

// Error messages returned to clients. The widget shows them verbatim.
const (
	msgBadJSON      = "Invalid request: JSON body expected"
	msgNoURL        = "No URL provided"
	msgInvalidURL   = "Invalid YouTube URL"
	msgNoTranscript = "Could not retrieve transcript (maybe no captions available?)"
	msgSummarize    = "Could not summarize video"
)

type requestRecord struct {
	ID                 string    `json:"id"`
	VideoID            string    `json:"video_id"`
	Status             string    `json:"status"`
	TranscriptLanguage string    `json:"transcript_language,omitempty"`
	AvailableLanguages []string  `json:"available_languages,omitempty"`
	TranscriptChars    int       `json:"transcript_chars"`
	Cached             bool      `json:"cached"`
	DurationMS         int64     `json:"duration_ms"`
	CreatedAt          time.Time `json:"created_at"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Log.Warn("failed to close dependencies", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Log.Info("summarizer listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		deps.Log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server stopped", "err", err)
	}
}

func newRouter(deps app.Deps) http.Handler {
	r := httputil.NewRouter(deps.Log)

	r.Get("/", indexHandler(deps))
	r.With(
		httputil.RateLimit(deps.Log, deps.Config.RateLimitPerMinute),
		httputil.RequireJSON(deps.Log, msgBadJSON),
	).Post(api.SummarizePath, summarizeHandler(deps))
	r.Get("/api/requests", recentRequestsHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps))

	return r
}

func indexHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := render.Index(&buf, api.SummarizePath); err != nil {
			deps.Log.Error("render index failed", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := buf.WriteTo(w); err != nil {
			deps.Log.Warn("index write failed", "err", err)
		}
	}
}

func summarizeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			httputil.Fail(deps.Log, w, msgBadJSON, err, http.StatusBadRequest)
			return
		}

		// An empty object or null counts as no body at all.
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
			httputil.Fail(deps.Log, w, msgBadJSON, err, http.StatusBadRequest)
			return
		}
		var req api.SummaryRequest
		if err := json.Unmarshal(body, &req); err != nil {
			httputil.Fail(deps.Log, w, msgBadJSON, err, http.StatusBadRequest)
			return
		}

		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		res, err := deps.Summarizer.Summarize(r.Context(), req.URL)
		if err != nil {
			status, message := errorResponse(err)
			httputil.Fail(deps.Log, w, message, err, status)
			return
		}

		deps.Log.Info("summary produced",
			"video_id", res.VideoID,
			"language", res.Language,
			"cached_transcript", res.Cached,
			"summary_chars", len(res.Summary),
		)
		httputil.WriteJSON(w, http.StatusOK, api.SummaryResponse{Summary: res.Summary})
	}
}

// errorResponse maps pipeline errors to the status and message sent to the client.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, summarize.ErrNoURL):
		return http.StatusBadRequest, msgNoURL
	case errors.Is(err, summarize.ErrInvalidURL):
		return http.StatusBadRequest, msgInvalidURL
	case errors.Is(err, summarize.ErrNoTranscript):
		return http.StatusNotFound, msgNoTranscript
	default:
		return http.StatusBadGateway, msgSummarize
	}
}

func recentRequestsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRecentLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				httputil.Fail(deps.Log, w, "Invalid limit", err, http.StatusBadRequest)
				return
			}
			limit = min(n, maxRecentLimit)
		}

		recs, err := deps.Store.RecentRequests(r.Context(), limit)
		if err != nil {
			httputil.Fail(deps.Log, w, "Could not load request log", err, http.StatusInternalServerError)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"requests": toRequestRecords(recs),
		})
	}
}

func toRequestRecords(recs []store.RequestRecord) []requestRecord {
	out := make([]requestRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, requestRecord{
			ID:                 rec.ID.String(),
			VideoID:            rec.VideoID,
			Status:             string(rec.Status),
			TranscriptLanguage: rec.TranscriptLanguage,
			AvailableLanguages: rec.AvailableLanguages,
			TranscriptChars:    rec.TranscriptChars,
			Cached:             rec.Cached,
			DurationMS:         rec.Duration.Milliseconds(),
			CreatedAt:          rec.CreatedAt,
		})
	}
	return out
}
