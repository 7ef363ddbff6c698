package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/j-veylop/covid-dashboard/internal/dashboard"
	"github.com/j-veylop/covid-dashboard/internal/logger"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageTitle is the heading of the dashboard page.
const pageTitle = "COVID-19 Dashboard"

// Documents is the read side of a built dashboard.
type Documents interface {
	Document(key string) (template.JS, error)
	Info() dashboard.Info
}

type indexPage struct {
	Title    string
	Span     string
	Treemap  template.JS
	GeoMap   template.JS
	BarChart template.JS
	CaseVacc template.JS
	Scatter  template.JS
}

// indexHandler renders the page once at construction. The documents never
// change, so every request writes the same bytes.
type indexHandler struct {
	page []byte
}

func newIndexHandler(docs Documents) (*indexHandler, error) {
	all := make(map[string]template.JS, len(dashboard.Keys()))
	for _, key := range dashboard.Keys() {
		doc, err := docs.Document(key)
		if err != nil {
			return nil, err
		}
		all[key] = doc
	}

	data := indexPage{
		Title:    pageTitle,
		Treemap:  all[dashboard.KeyTreemap],
		GeoMap:   all[dashboard.KeyGeoMap],
		BarChart: all[dashboard.KeyBarChart],
		CaseVacc: all[dashboard.KeyCaseVacc],
		Scatter:  all[dashboard.KeyScatter],
	}
	if info := docs.Info(); info.HasDates {
		data.Span = fmt.Sprintf("%s to %s", info.FirstDate, info.LastDate)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render index: %w", err)
	}
	return &indexHandler{page: buf.Bytes()}, nil
}

func (h *indexHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.page); err != nil {
		logger.Warn("failed to write index", "error", err)
	}
}
