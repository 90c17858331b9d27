package http

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/domain"
)

// Renderer executes the server-side page templates. Every page template is
// defined against the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"join": strings.Join,
		"stars": func(rating int) string {
			return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		},
		"avg": func(rating *float64) string {
			if rating == nil {
				return "New"
			}
			return fmt.Sprintf("%.1f", *rating)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"coords": func(l *domain.Listing) [2]float64 {
			return l.MapCoordinates()
		},
	}

	templates := make(map[string]*template.Template)
	for name, body := range pageTemplates {
		t, err := template.New("layout").Funcs(funcs).Parse(layoutTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if _, err := t.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// PageData is the envelope every template receives.
type PageData struct {
	Title       string
	CurrentUser *domain.User
	Flash       *Flash
	MapToken    string
	Data        interface{}
}
