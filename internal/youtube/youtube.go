package youtube

import (
	"net/url"
	"strings"
)

// Hosts recognised by the client-side pre-check.
var hostMarkers = []string{"youtube.com", "youtu.be"}

// IsVideoURL reports whether s looks like a YouTube link.
// It is a cheap pre-check only; the server decides what is actually valid.
func IsVideoURL(s string) bool {
	for _, marker := range hostMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// VideoID extracts the video identifier from a YouTube URL.
// Returns "" when no identifier can be found.
func VideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || !IsVideoURL(u.Hostname()) {
		return ""
	}
	if id := strings.TrimSpace(u.Query().Get("v")); id != "" {
		return id
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if strings.TrimPrefix(u.Hostname(), "www.") == "youtu.be" {
		return segments[0]
	}
	if len(segments) >= 2 {
		switch segments[0] {
		case "shorts", "embed", "live":
			return segments[1]
		}
	}
	return ""
}
