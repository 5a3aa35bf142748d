// Package render adapts html/template to echo's Renderer interface. All
// pages share one parsed template set; each page template is named after its
// file.
package render

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fixer-market/fixer-web/internal/core/domain"
)

type Renderer struct {
	templates *template.Template
}

// New parses every template under dir. Fails fast: a broken template is a
// deploy error, not a runtime one. assetBase is the backend host that file
// and image paths returned by the API are relative to.
func New(dir, assetBase string) (*Renderer, error) {
	t, err := template.New("").Funcs(funcMap(assetBase)).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func funcMap(assetBase string) template.FuncMap {
	assetBase = strings.TrimSuffix(assetBase, "/")
	return template.FuncMap{
		"money": func(amount float64) string {
			return fmt.Sprintf("%.2f DT", amount)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006 15:04")
		},
		"statuses": func() []domain.PublicationStatus {
			return domain.Statuses
		},
		"types": func() []string {
			return domain.Types
		},
		// asset resolves a backend-relative path (/api/files/x.jpg) against
		// the backend host. Absolute URLs pass through untouched.
		"asset": func(path string) string {
			if path == "" || strings.Contains(path, "://") {
				return path
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			return assetBase + path
		},
		"assetBase": func() string {
			return assetBase
		},
	}
}
