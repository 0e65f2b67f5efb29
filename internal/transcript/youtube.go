package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultWatchURL  = "https://www.youtube.com/watch"
	defaultPlayerURL = "https://www.youtube.com/youtubei/v1/player"

	androidVersion = "20.10.38"
	androidUA      = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
	browserUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	playerResponseMarker = "ytInitialPlayerResponse = "

	maxWatchPageBytes = 6 << 20
	maxCaptionBytes   = 2 << 20
)

// YouTubeFetcher reads caption tracks the way the YouTube web and Android clients do.
// Primary:  watch page ytInitialPlayerResponse → captionTracks → timedtext XML.
// Fallback: ANDROID Innertube /player → captionTracks.
type YouTubeFetcher struct {
	log       *slog.Logger
	http      *http.Client
	languages []string
	watchURL  string
	playerURL string
}

// YouTubeOption customises a YouTubeFetcher.
type YouTubeOption func(*YouTubeFetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) YouTubeOption {
	return func(f *YouTubeFetcher) { f.http = c }
}

// WithEndpoints points the fetcher at alternative watch and player URLs.
func WithEndpoints(watchURL, playerURL string) YouTubeOption {
	return func(f *YouTubeFetcher) {
		f.watchURL = watchURL
		f.playerURL = playerURL
	}
}

// NewYouTubeFetcher builds a fetcher preferring the given caption languages in order.
func NewYouTubeFetcher(log *slog.Logger, languages []string, opts ...YouTubeOption) *YouTubeFetcher {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	f := &YouTubeFetcher{
		log:       log,
		http:      &http.Client{Timeout: 30 * time.Second},
		languages: languages,
		watchURL:  defaultWatchURL,
		playerURL: defaultPlayerURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
	Paragraphs []struct {
		Text string `xml:",chardata"`
	} `xml:"body>p"`
}

// Fetch returns the best transcript for videoID. Every failure wraps ErrNoTranscript.
func (f *YouTubeFetcher) Fetch(ctx context.Context, videoID string) (Transcript, error) {
	tracks, err := f.tracksFromWatchPage(ctx, videoID)
	track, ok := pickTrack(tracks, f.languages)
	if err == nil && !ok {
		err = errors.New("watch page caption tracks require a PoToken")
	}
	if err != nil {
		f.log.Warn("watch page captions unavailable, trying player", "video_id", videoID, "err", err)
		tracks, err = f.tracksFromPlayer(ctx, videoID)
		if err != nil {
			return Transcript{}, fmt.Errorf("%w: %v", ErrNoTranscript, err)
		}
		if track, ok = pickTrack(tracks, f.languages); !ok {
			return Transcript{}, fmt.Errorf("%w: all caption tracks require a PoToken", ErrNoTranscript)
		}
	}
	if track.LanguageCode != "" && !containsFold(f.languages, track.LanguageCode) {
		f.log.Info("fallback transcript used", "video_id", videoID, "language", track.LanguageCode)
	}

	text, err := f.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %v", ErrNoTranscript, err)
	}
	if text == "" {
		return Transcript{}, fmt.Errorf("%w: empty caption track", ErrNoTranscript)
	}

	available := make([]string, 0, len(tracks))
	for _, t := range tracks {
		available = append(available, t.LanguageCode)
	}
	return Transcript{
		VideoID:   videoID,
		Language:  track.LanguageCode,
		Text:      text,
		Available: available,
	}, nil
}

func (f *YouTubeFetcher) tracksFromWatchPage(ctx context.Context, videoID string) ([]captionTrack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.watchURL+"?v="+url.QueryEscape(videoID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	data := extractJSON(body[idx+len(playerResponseMarker):])
	if data == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var pr playerResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return pr.tracks()
}

func (f *YouTubeFetcher) tracksFromPlayer(ctx context.Context, videoID string) ([]captionTrack, error) {
	payload, err := json.Marshal(map[string]any{
		"videoId": videoID,
		"context": map[string]any{
			"client": map[string]any{
				"clientName":        "ANDROID",
				"clientVersion":     androidVersion,
				"androidSdkVersion": 30,
				"hl":                "en",
				"gl":                "US",
			},
		},
		"racyCheckOk":    true,
		"contentCheckOk": true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.playerURL+"?prettyPrint=false", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("android player: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("android player: status %d", resp.StatusCode)
	}

	var pr playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return pr.tracks()
}

func (pr playerResponse) tracks() ([]captionTrack, error) {
	if pr.Captions == nil {
		if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", pr.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}
	return tracks, nil
}

func (f *YouTubeFetcher) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch timedtext: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
	if err != nil {
		return "", err
	}
	return parseTimedText(body)
}

func parseTimedText(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	add := func(s string) {
		s = strings.Join(strings.Fields(html.UnescapeString(s)), " ")
		if s == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s)
	}
	for _, line := range tt.Lines {
		add(line.Text)
	}
	for _, p := range tt.Paragraphs {
		add(p.Text)
	}
	return sb.String(), nil
}

// needsPoToken reports whether a caption URL can only be fetched by a browser.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack walks the priority languages in order, taking a manual track before an
// auto-generated one of the same language, then falls back to the first usable track.
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if strings.EqualFold(t.LanguageCode, lang) && t.Kind != "asr" {
				return t, true
			}
		}
		for _, t := range usable {
			if strings.EqualFold(t.LanguageCode, lang) {
				return t, true
			}
		}
	}
	return usable[0], true
}

// extractJSON returns the balanced JSON object at the start of data.
func extractJSON(data []byte) []byte {
	start := bytes.IndexByte(data, '{')
	if start < 0 {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return data[start : i+1]
			}
		}
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
