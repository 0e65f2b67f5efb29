package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-summarizer/internal/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body api.SummaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestFailWritesJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(discardLogger(), rec, "Invalid YouTube URL", nil, http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Invalid YouTube URL", decodeError(t, rec))

	rec = httptest.NewRecorder()
	Fail(discardLogger(), rec, "boom", nil, 0)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestValidationErrorUsesJSONFieldNames(t *testing.T) {
	err := Validator.Struct(&api.SummaryRequest{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	ValidationError(discardLogger(), rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No URL provided", decodeError(t, rec))
}

func TestRecovererReturnsJSON(t *testing.T) {
	h := Recoverer(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeError(t, rec))
}

func TestRequireJSON(t *testing.T) {
	h := RequireJSON(discardLogger(), "JSON expected")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name        string
		contentType string
		wantStatus  int
	}{
		{"json", "application/json", http.StatusNoContent},
		{"json with charset", "application/json; charset=utf-8", http.StatusNoContent},
		{"form", "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"missing", "", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnsupportedMediaType {
				assert.Equal(t, "JSON expected", decodeError(t, rec))
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(discardLogger(), 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, TooManyRequestsMessage, decodeError(t, rec))
		}
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
