package webui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the envelope every template renders from. Data carries the
// page-specific view model.
type Page struct {
	Title string
	Nav   Nav
	Flash string
	Error string
	Data  any
}

var pageNames = []string{
	"courses",
	"course_detail",
	"course_form",
	"packages",
	"package_detail",
	"package_form",
	"my_courses",
	"my_packages",
	"login",
	"register",
	"restoring",
	"error",
	"not_found",
}

// Renderer holds one parsed template set per page, each sharing the layout
// and partials.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		r.logger.Error("page render failed",
			"event", "webui.render_failed",
			"page", page,
			"error", err,
		)
		return err
	}
	return nil
}
