package llm

import (
	"context"
	"fmt"
)

// Client is a minimal LLM interface to allow pluggable providers.
type Client interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// DefaultSummaryLanguage is the language summaries are written in.
const DefaultSummaryLanguage = "Brazilian Portuguese (Português do Brasil)"

// buildPrompt asks for a structured summary in language, whatever the transcript's language.
func buildPrompt(language, transcript string) string {
	if language == "" {
		language = DefaultSummaryLanguage
	}
	return fmt.Sprintf(
		"Analyze the following YouTube video transcript (which may be in any language). "+
			"Ignore any intro/outro fluff. "+
			"Write a detailed and structured summary in **%[1]s**. "+
			"Ensure the output is entirely in %[1]s, even if the source is in another language.\n\n"+
			"Transcript Text: \n\n%[2]s",
		language, transcript,
	)
}
