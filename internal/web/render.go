package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/yuin/goldmark"
)

// Renderer holds parsed templates and the build version.
type Renderer struct {
	tmpl    *template.Template
	version string
}

// NewRenderer parses all templates from files.
func NewRenderer(files fs.FS, version string) *Renderer {
	tmpl := template.Must(template.New("").ParseFS(files, "*.html"))
	return &Renderer{tmpl: tmpl, version: version}
}

// renderPage executes the named template into a buffer first so a template
// error never produces a half-written response.
func (r *Renderer) renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML using goldmark. An empty
// input renders as nothing; a conversion failure falls back to escaped text.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
