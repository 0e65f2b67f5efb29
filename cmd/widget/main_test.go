package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-summarizer/internal/config"
	"yt-summarizer/internal/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// summaryServer answers every request with status and body and records the requested URL.
func summaryServer(t *testing.T, status int, body string, hits *atomic.Int32, gotURL *atomic.Value) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req struct {
			URL string `json:"url"`
		}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			gotURL.Store(req.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunWidget(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		clipboard string
		status    int
		body      string
		wantHits  int32
		wantURL   string
		wantText  string
	}{
		{
			name:      "manual url wins over clipboard",
			args:      []string{"-url", "https://youtu.be/manual"},
			clipboard: "https://youtu.be/clip",
			status:    http.StatusOK,
			body:      `{"summary":"resumo manual"}`,
			wantHits:  1,
			wantURL:   "https://youtu.be/manual",
			wantText:  "resumo manual",
		},
		{
			name:     "shared text",
			args:     []string{"olha isso https://www.youtube.com/watch?v=abc&t=3 !"},
			status:   http.StatusOK,
			body:     `{"summary":"ok"}`,
			wantHits: 1,
			wantURL:  "https://www.youtube.com/watch?v=abc&t=3",
			wantText: "ok",
		},
		{
			name:      "clipboard fallback",
			clipboard: "https://youtu.be/clip\n",
			status:    http.StatusOK,
			body:      `{"summary":"do clipboard"}`,
			wantHits:  1,
			wantURL:   "https://youtu.be/clip",
			wantText:  "do clipboard",
		},
		{
			name:      "server error",
			clipboard: "https://youtu.be/clip",
			status:    http.StatusNotFound,
			body:      `{"error":"Could not retrieve transcript (maybe no captions available?)"}`,
			wantHits:  1,
			wantURL:   "https://youtu.be/clip",
			wantText:  "❌ Erro: Could not retrieve transcript (maybe no captions available?)",
		},
		{
			name:      "malformed response",
			clipboard: "https://youtu.be/clip",
			status:    http.StatusOK,
			body:      `<html>oops</html>`,
			wantHits:  1,
			wantURL:   "https://youtu.be/clip",
			wantText:  render.ConnectionFailMessage,
		},
		{
			name:      "no input makes no request",
			clipboard: "https://vimeo.com/123",
			wantHits:  0,
			wantText:  render.NoInputMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			var gotURL atomic.Value
			srv := summaryServer(t, tt.status, tt.body, &hits, &gotURL)
			cfg := config.WidgetConfig{Endpoint: srv.URL + "/summarize", Timeout: 5 * time.Second}

			var out bytes.Buffer
			err := run(context.Background(), cfg, discardLogger(), tt.args, strings.NewReader(tt.clipboard), &out)
			require.NoError(t, err)

			assert.Equal(t, tt.wantHits, hits.Load())
			if tt.wantURL != "" {
				assert.Equal(t, tt.wantURL, gotURL.Load())
			}
			assert.True(t, strings.HasPrefix(out.String(), render.Title))
			assert.Contains(t, out.String(), tt.wantText)
		})
	}
}

func TestRunWidgetUnreachable(t *testing.T) {
	cfg := config.WidgetConfig{Endpoint: "http://127.0.0.1:1/summarize", Timeout: 2 * time.Second}

	var out bytes.Buffer
	err := run(context.Background(), cfg, discardLogger(), []string{"-url", "https://youtu.be/abc"}, nil, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), render.ConnectionFailMessage)
}

func TestRunWidgetHTMLToFile(t *testing.T) {
	var hits atomic.Int32
	var gotURL atomic.Value
	srv := summaryServer(t, http.StatusOK, `{"summary":"<script>alert(1)</script>"}`, &hits, &gotURL)
	cfg := config.WidgetConfig{Endpoint: srv.URL + "/summarize", Timeout: 5 * time.Second}
	path := filepath.Join(t.TempDir(), "view.html")

	var out bytes.Buffer
	err := run(context.Background(), cfg, discardLogger(), []string{"-html", "-out", path, "https://youtu.be/abc"}, nil, &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	page, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(page), "<script>alert(1)")
	assert.Contains(t, string(page), `id="view-data"`)
}

func TestRunWidgetBadFlag(t *testing.T) {
	err := run(context.Background(), config.WidgetConfig{}, discardLogger(), []string{"-nope"}, nil, io.Discard)
	assert.Error(t, err)
}

func TestRunWidgetBadEndpoint(t *testing.T) {
	cfg := config.WidgetConfig{Endpoint: "not a url"}
	err := run(context.Background(), cfg, discardLogger(), []string{"https://youtu.be/abc"}, nil, io.Discard)
	assert.Error(t, err)
}
