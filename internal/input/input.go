// Package input finds the video URL the user meant to summarize.
package input

import (
	"errors"
	"strings"

	"mvdan.cc/xurls/v2"

	"yt-summarizer/internal/youtube"
)

// ErrNoInputDetected means no source held a recognisable video URL.
var ErrNoInputDetected = errors.New("no YouTube URL detected")

// Sources are the places a URL can come from, consulted in field order.
type Sources struct {
	// Manual is text typed by the user.
	Manual string
	// Shared are share-sheet arguments.
	Shared []string
	// Clipboard is the current clipboard text.
	Clipboard string
}

// Resolve returns the first video URL found across sources.
func Resolve(src Sources) (string, error) {
	candidates := make([]string, 0, len(src.Shared)+2)
	candidates = append(candidates, src.Manual)
	candidates = append(candidates, src.Shared...)
	candidates = append(candidates, src.Clipboard)

	for _, text := range candidates {
		if u, ok := FindVideoURL(text); ok {
			return u, nil
		}
	}
	return "", ErrNoInputDetected
}

// FindVideoURL scans free text for a YouTube link.
func FindVideoURL(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, u := range xurls.Relaxed().FindAllString(text, -1) {
		if youtube.IsVideoURL(u) {
			return u, true
		}
	}
	if !strings.ContainsAny(text, " \t\n") && youtube.IsVideoURL(text) {
		return text, true
	}
	return "", false
}
