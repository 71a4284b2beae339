// Package views holds the server-rendered pages of the console.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Page is the data every template receives. Data carries the page-specific
// payload.
type Page struct {
	Title    string
	Operator string
	Notice   string
	Error    string
	Fields   map[string]string
	Data     any
}

// Renderer implements echo.Renderer over the embedded templates. Every page
// is parsed together with the shared layout and partials.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// NewRenderer parses all pages. It fails if any template is malformed.
func NewRenderer() (*Renderer, error) {
	entries, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, entry := range entries {
		name := strings.TrimSuffix(path.Base(entry), ".html")
		if name == "layout" || name == "partials" {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/partials.html", entry)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// MustRenderer is NewRenderer that panics on error.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
