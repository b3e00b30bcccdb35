// Package web provides the embedded HTML templates for the form UI and a
// renderer over them.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/kestrelworks/tasklist-api/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// IndexData is the data rendered into the todo list page.
type IndexData struct {
	Todos []domain.Todo
}

// ErrorData is the data rendered into the generic error page.
type ErrorData struct {
	Message string
}

// Renderer renders the embedded HTML pages.
type Renderer struct {
	index    *template.Template
	errorTpl *template.Template
}

// NewRenderer parses the embedded templates. Parsing happens once here so a
// broken template surfaces at boot rather than on the first request.
func NewRenderer() (*Renderer, error) {
	index, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	errorTpl, err := template.ParseFS(templateFS, "templates/error.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse error template: %w", err)
	}

	return &Renderer{
		index:    index,
		errorTpl: errorTpl,
	}, nil
}

// RenderIndex writes the todo list page to w. The page is rendered to a
// buffer first so a template failure never sends a partial body.
func (r *Renderer) RenderIndex(w io.Writer, data IndexData) error {
	return render(w, r.index, data)
}

// RenderError writes the generic error page to w.
func (r *Renderer) RenderError(w io.Writer, data ErrorData) error {
	return render(w, r.errorTpl, data)
}

func render(w io.Writer, tpl *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %q: %w", tpl.Name(), err)
	}

	_, err := buf.WriteTo(w)
	return err
}
