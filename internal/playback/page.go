package playback

import (
	"fmt"
	"html/template"
	"io"
)

// watchPage is the local stand-in for the watch view: a full-viewport
// iframe configured exactly per the embedding policy.
var watchPage = template.Must(template.New("watch").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  html, body { margin: 0; height: 100%; background: #000; }
  iframe { width: 100%; height: 100%; border: 0; }
</style>
</head>
<body>
<iframe src="{{.Src}}"{{if .HasSandbox}} sandbox="{{.Sandbox}}"{{end}}{{if .AllowFullscreen}} allowfullscreen{{end}} referrerpolicy="{{.ReferrerPolicy}}"></iframe>
</body>
</html>
`))

type pageData struct {
	Title string
	IframeConfig
}

// WritePage renders the watch page for a selection. Unavailable selections
// fail before anything is written; the caller shows the fallback state.
func WritePage(w io.Writer, title string, sel Selection) error {
	cfg, err := IframeFor(sel)
	if err != nil {
		return err
	}
	if err := watchPage.Execute(w, pageData{Title: title, IframeConfig: cfg}); err != nil {
		return fmt.Errorf("rendering watch page: %w", err)
	}
	return nil
}
