// Package handler contains the HTTP request handlers of the booking site.
//
// Handlers parse the request, call a service and render the result. They
// never touch the database and never contain business rules; everything
// they show arrives as plain model records.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sakif/booking/internal/model"
	"github.com/sakif/booking/internal/validation"
)

// Template directories holding renderable pages. Everything under
// layouts/ and partials/ is shared by every page.
var pageDirs = []string{"pages", "forms", "errors"}

// page is the value every template is executed with.
type page struct {
	Title   string
	Flashes []string
	Data    any
}

// View renders pages and owns the flash cookie. It is safe for concurrent
// use; templates are parsed once in NewView and only read afterwards.
type View struct {
	pages   map[string]*template.Template
	flashes *FlashStore
	logger  *slog.Logger
}

// NewView parses every page under templates. Each page is parsed together
// with the layouts and partials so it can fill the "content" block of base.
func NewView(templates fs.FS, flashes *FlashStore, logger *slog.Logger) (*View, error) {
	v := &View{
		pages:   make(map[string]*template.Template),
		flashes: flashes,
		logger:  logger,
	}

	for _, dir := range pageDirs {
		files, err := fs.Glob(templates, dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			tmpl, err := template.New(path.Base(file)).
				Funcs(templateFuncs()).
				ParseFS(templates, "layouts/*.html", "partials/*.html", file)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", file, err)
			}
			v.pages[strings.TrimSuffix(file, ".html")] = tmpl
		}
	}

	for _, required := range []string{"errors/404", "errors/500", "errors/error"} {
		if _, ok := v.pages[required]; !ok {
			return nil, fmt.Errorf("missing template %s", required)
		}
	}
	return v, nil
}

// Render executes the named page with data and writes it with status.
// Pending flash messages are consumed and shown, followed by notices.
//
// The page is rendered into a buffer first: a template error must still be
// able to send a 500 instead of half a page.
func (v *View) Render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any, notices ...string) {
	tmpl, ok := v.pages[name]
	if !ok {
		v.logger.Error("unknown template", slog.String("template", name))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p := page{
		Title:   title,
		Flashes: append(v.flashes.Pop(w, r), notices...),
		Data:    data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", p); err != nil {
		v.logger.Error("failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		v.logger.Debug("client went away", slog.String("error", err.Error()))
	}
}

// Redirect queues notice (if any) as a flash and sends a 303 to url.
func (v *View) Redirect(w http.ResponseWriter, r *http.Request, url, notice string) {
	if notice != "" {
		v.flashes.Add(w, r, notice)
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// NotFound renders the 404 page. It doubles as the router's NotFound handler.
func (v *View) NotFound(w http.ResponseWriter, r *http.Request) {
	v.Render(w, r, http.StatusNotFound, "errors/404", "Not found", nil)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"datetime": formatDateTime,
		"ago":      ago,
		"hasGenre": validation.HasGenre,
		"join":     strings.Join,
		"states":   func() []string { return validation.States },
		"genres":   func() []string { return validation.Genres },
	}
}

// Display layouts for start times: "medium" on listings, "full" on
// detail pages.
const (
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
)

// formatDateTime renders a stored start time for display. Values it
// cannot parse are shown as they are.
func formatDateTime(value, format string) string {
	t, err := time.Parse(model.StartTimeLayout, value)
	if err != nil {
		return value
	}
	if format == "full" {
		return t.Format(fullLayout)
	}
	return t.Format(mediumLayout)
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "some time ago"
	}
	return humanize.Time(t)
}
