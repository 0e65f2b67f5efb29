package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"yt-summarizer/internal/api"
)

const (
	// DefaultTimeout bounds one request/response round-trip.
	DefaultTimeout = 60 * time.Second

	maxResponseBytes = 4 << 20
)

// Config configures a Client. Endpoint is the absolute URL of the summarization service.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client posts video URLs to the summarization service. It holds no per-request state.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	log      *slog.Logger
}

// New validates cfg and builds a client.
func New(cfg Config, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("endpoint must be an absolute URL: %q", cfg.Endpoint)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		endpoint: u.String(),
		timeout:  timeout,
		http:     httpClient,
		log:      log,
	}, nil
}

// Summarize sends videoURL to the endpoint once and classifies the result.
func (c *Client) Summarize(ctx context.Context, videoURL string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out := c.do(ctx, videoURL)
	if f, ok := out.(TransportFailure); ok {
		c.log.Warn("summarize request failed", "endpoint", c.endpoint, "reason", f.Reason, "err", f.Err)
	}
	return out
}

func (c *Client) do(ctx context.Context, videoURL string) Outcome {
	body, err := EncodeRequest(videoURL)
	if err != nil {
		return TransportFailure{Reason: ReasonMalformedBody, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return TransportFailure{Reason: ReasonUnreachable, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return TransportFailure{Reason: classify(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return TransportFailure{Reason: classify(ctx, err), Err: fmt.Errorf("read response: %w", err)}
	}

	var decoded struct {
		Summary *string `json:"summary"`
		Error   string  `json:"error"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		reason := ReasonMalformedBody
		if !isSuccessStatus(resp.StatusCode) {
			reason = ReasonBadStatus
		}
		return TransportFailure{Reason: reason, Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}

	switch {
	case decoded.Error != "":
		return ServerError{Message: decoded.Error}
	case !isSuccessStatus(resp.StatusCode):
		return TransportFailure{Reason: ReasonBadStatus, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	case decoded.Summary != nil:
		return Success{Text: *decoded.Summary}
	default:
		return TransportFailure{Reason: ReasonMalformedBody, Err: errors.New("response has neither summary nor error")}
	}
}

// EncodeRequest renders the wire body {"url": ...}. HTML characters are left
// unescaped so the bytes match a plain JSON.stringify of the same value.
func EncodeRequest(videoURL string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(api.SummaryRequest{URL: videoURL}); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func classify(ctx context.Context, err error) FailureReason {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonUnreachable
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}
