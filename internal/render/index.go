package render

import (
	"fmt"
	"html/template"
	"io"
)

// The form page posts {"url"} to the summarize endpoint and shows the answer
// with textContent, so nothing returned by the server is parsed as HTML.
var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { background: #1c1c1e; color: #fff; font-family: -apple-system, sans-serif; padding: 16px; max-width: 720px; margin: auto; }
h1 { color: #ff0000; font-size: 20px; }
input { width: 100%; padding: 8px; box-sizing: border-box; }
button { margin-top: 8px; padding: 8px 16px; }
#status { color: #8e8e93; font-size: 12px; margin-top: 12px; }
#content { white-space: pre-wrap; line-height: 1.4; margin-top: 12px; }
.error { color: #ff453a; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form id="form">
<input id="url" type="url" placeholder="https://www.youtube.com/watch?v=..." required>
<button type="submit">Resumir</button>
</form>
<div id="status"></div>
<div id="content"></div>
<script id="page-config" type="application/json">{{.Config}}</script>
<script>
(function () {
  var cfg = JSON.parse(document.getElementById("page-config").textContent);
  var status = document.getElementById("status");
  var content = document.getElementById("content");
  document.getElementById("form").addEventListener("submit", function (ev) {
    ev.preventDefault();
    var url = document.getElementById("url").value;
    content.textContent = "";
    content.className = "";
    status.textContent = cfg.loading;
    fetch(cfg.endpoint, {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ url: url })
    }).then(function (res) { return res.json(); }).then(function (data) {
      status.textContent = "";
      if (data.error) {
        content.className = "error";
        content.textContent = cfg.errorPrefix + data.error;
      } else {
        content.textContent = data.summary;
      }
    }).catch(function () {
      status.textContent = "";
      content.className = "error";
      content.textContent = cfg.connectionFail;
    });
  });
})();
</script>
</body>
</html>
`))

type indexConfig struct {
	Endpoint       string `json:"endpoint"`
	Loading        string `json:"loading"`
	ErrorPrefix    string `json:"errorPrefix"`
	ConnectionFail string `json:"connectionFail"`
}

// Index writes the web form that calls endpoint from the browser.
func Index(w io.Writer, endpoint string) error {
	err := indexTmpl.Execute(w, struct {
		Title  string
		Config indexConfig
	}{
		Title: Title,
		Config: indexConfig{
			Endpoint:       endpoint,
			Loading:        "🔄 Processando...",
			ErrorPrefix:    serverErrorPrefix,
			ConnectionFail: ConnectionFailMessage,
		},
	})
	if err != nil {
		return fmt.Errorf("execute index template: %w", err)
	}
	return nil
}
