// Package view renders the server-side HTML pages
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/skillup/backend/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	PageIndex         = "index"
	PageDashboard     = "dashboard"
	PageMockTest      = "mock-test"
	PageQuestionBank  = "question-bank"
	PageDSAQuestions  = "dsa-questions"
	PagePrepare       = "prepare"
	PageInterviewPrep = "interview-prep"
)

// PageData is the data every page template receives
type PageData struct {
	Title       string
	UserName    string
	Error       string
	ActiveUsers string

	// prepare
	Topic   string
	Content models.TopicContent

	// interview prep
	Role       string
	Skills     string
	Experience string
	Questions  []models.Question

	Topics []string
}

// Renderer holds one parsed template set per page, each combined with the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"title": models.SlugTitle,
	// field reads key from a decoded JSON object and yields nil for anything else
	"field": func(v any, key string) any {
		switch m := v.(type) {
		case models.TopicContent:
			return m[key]
		case map[string]any:
			return m[key]
		}
		return nil
	},
	// list yields v when it is a decoded JSON array and nil otherwise
	"list": func(v any) []any {
		items, _ := v.([]any)
		return items
	},
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == "layout" {
			continue
		}

		tmpl, err := template.Must(layout.Clone()).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render executes a page into w. The output is buffered so a template error never leaves a half-written page.
func (r *Renderer) Render(w io.Writer, name string, data PageData) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
