// Package render turns a summarization outcome into widget text or a web view page.
package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"yt-summarizer/internal/client"
)

const (
	Title = "📺 YouTube Resumo"

	NoInputMessage        = "⚠️ Copie um link do YouTube primeiro."
	ConnectionFailMessage = "❌ Falha na conexão. O servidor está rodando?"
	serverErrorPrefix     = "❌ Erro: "
)

// View is what a surface displays for one invocation.
type View struct {
	URL  string `json:"url,omitempty"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

const (
	KindSummary = "summary"
	KindError   = "error"
	KindNoInput = "no_input"
)

// NoInput is the view shown when no URL was detected; no request was made.
func NoInput() View {
	return View{Kind: KindNoInput, Text: NoInputMessage}
}

// FromOutcome maps an outcome to its view.
func FromOutcome(videoURL string, o client.Outcome) View {
	return client.Match(o,
		func(s client.Success) View {
			return View{URL: videoURL, Kind: KindSummary, Text: s.Text}
		},
		func(e client.ServerError) View {
			return View{URL: videoURL, Kind: KindError, Text: serverErrorPrefix + e.Message}
		},
		func(client.TransportFailure) View {
			return View{URL: videoURL, Kind: KindError, Text: ConnectionFailMessage}
		},
	)
}

// Widget writes the compact text rendering.
func Widget(w io.Writer, v View) error {
	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n\n")
	if v.URL != "" {
		fmt.Fprintf(&b, "🔄 %s\n\n", shorten(v.URL, 25))
	}
	b.WriteString(strings.TrimSpace(v.Text))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// The page script is static. View data only reaches it through the
// application/json block (JSON-escaped by html/template) and is written with textContent.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { background: #1c1c1e; color: #fff; font-family: -apple-system, sans-serif; padding: 16px; }
h1 { color: #ff0000; font-size: 18px; }
#source { color: #8e8e93; font-size: 12px; word-break: break-all; }
#content { white-space: pre-wrap; line-height: 1.4; }
.error { color: #ff453a; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="source"></div>
<div id="content"></div>
<script id="view-data" type="application/json">{{.View}}</script>
<script>
(function () {
  var view = JSON.parse(document.getElementById("view-data").textContent);
  document.getElementById("source").textContent = view.url || "";
  var content = document.getElementById("content");
  content.textContent = view.text;
  if (view.kind !== "summary") { content.className = "error"; }
})();
</script>
</body>
</html>
`))

// Page writes the web view rendering.
func Page(w io.Writer, v View) error {
	err := pageTmpl.Execute(w, struct {
		Title string
		View  View
	}{
		Title: Title,
		View:  v,
	})
	if err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
