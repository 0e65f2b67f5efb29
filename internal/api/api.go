// Package api holds the JSON wire types shared by the summarization server and its client.
package api

// SummarizePath is the route the server exposes and the default endpoint path.
const SummarizePath = "/summarize"

// SummaryRequest is the body of POST /summarize.
type SummaryRequest struct {
	URL string `json:"url" validate:"required"`
}

// SummaryResponse carries exactly one of Summary or Error.
type SummaryResponse struct {
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}
