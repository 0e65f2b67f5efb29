package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-summarizer/internal/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, endpoint string, timeout time.Duration) *Client {
	t.Helper()
	c, err := New(Config{Endpoint: endpoint, Timeout: timeout}, testLogger())
	require.NoError(t, err)
	return c
}

func TestNewRejectsRelativeEndpoint(t *testing.T) {
	_, err := New(Config{Endpoint: "/summarize"}, testLogger())
	assert.Error(t, err)

	c, err := New(Config{Endpoint: "http://localhost:5001/summarize"}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    Outcome
		wantErr FailureReason
	}{
		{
			name:   "summary",
			status: http.StatusOK,
			body:   `{"summary": "hello"}`,
			want:   Success{Text: "hello"},
		},
		{
			name:   "server error",
			status: http.StatusOK,
			body:   `{"error": "video too long"}`,
			want:   ServerError{Message: "video too long"},
		},
		{
			name:   "server error with error status",
			status: http.StatusNotFound,
			body:   `{"error": "Could not retrieve transcript"}`,
			want:   ServerError{Message: "Could not retrieve transcript"},
		},
		{
			name:   "empty error falls through to summary",
			status: http.StatusOK,
			body:   `{"error": "", "summary": "text"}`,
			want:   Success{Text: "text"},
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `<html>not json</html>`,
			wantErr: ReasonMalformedBody,
		},
		{
			name:    "error status without parseable body",
			status:  http.StatusBadGateway,
			body:    `Bad Gateway`,
			wantErr: ReasonBadStatus,
		},
		{
			name:    "error status with empty object",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			wantErr: ReasonBadStatus,
		},
		{
			name:    "neither field",
			status:  http.StatusOK,
			body:    `{"other": 1}`,
			wantErr: ReasonMalformedBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			got := newTestClient(t, srv.URL+api.SummarizePath, time.Second).
				Summarize(context.Background(), "https://youtu.be/abc")

			if tt.wantErr != "" {
				failure, ok := got.(TransportFailure)
				require.True(t, ok, "expected TransportFailure, got %#v", got)
				assert.Equal(t, tt.wantErr, failure.Reason)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarizeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	timeout := 100 * time.Millisecond
	start := time.Now()
	got := newTestClient(t, srv.URL, timeout).Summarize(context.Background(), "https://youtu.be/abc")
	elapsed := time.Since(start)

	failure, ok := got.(TransportFailure)
	require.True(t, ok, "expected TransportFailure, got %#v", got)
	assert.Equal(t, ReasonTimeout, failure.Reason)
	assert.Less(t, elapsed, timeout+time.Second)
}

func TestSummarizeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	got := newTestClient(t, endpoint, time.Second).Summarize(context.Background(), "https://youtu.be/abc")

	failure, ok := got.(TransportFailure)
	require.True(t, ok, "expected TransportFailure, got %#v", got)
	assert.Equal(t, ReasonUnreachable, failure.Reason)
}

func TestRequestRoundTrip(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=abc&t=42s",
		"https://youtu.be/abc?si=x&feature=share",
		"https://www.youtube.com/watch?v=ção&q=日本語",
		`https://youtu.be/a"b<c>d\e`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.SummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(api.SummaryResponse{Summary: req.URL})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			assert.Equal(t, Success{Text: u}, c.Summarize(context.Background(), u))
		})
	}
}

func TestEncodeRequest(t *testing.T) {
	body, err := EncodeRequest("https://www.youtube.com/watch?v=abc&t=1")
	require.NoError(t, err)
	assert.Equal(t, `{"url":"https://www.youtube.com/watch?v=abc&t=1"}`, string(body))
}

func TestMatch(t *testing.T) {
	label := func(o Outcome) string {
		return Match(o,
			func(s Success) string { return "ok:" + s.Text },
			func(e ServerError) string { return "server:" + e.Message },
			func(f TransportFailure) string { return "transport:" + string(f.Reason) },
		)
	}

	assert.Equal(t, "ok:hi", label(Success{Text: "hi"}))
	assert.Equal(t, "server:boom", label(ServerError{Message: "boom"}))
	assert.Equal(t, "transport:timeout", label(TransportFailure{Reason: ReasonTimeout}))
}
