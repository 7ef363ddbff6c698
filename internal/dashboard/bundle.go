// Package dashboard assembles the chart documents served by the dashboard.
package dashboard

import (
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/j-veylop/covid-dashboard/internal/charts"
	"github.com/j-veylop/covid-dashboard/internal/config"
	"github.com/j-veylop/covid-dashboard/internal/dataset"
	"github.com/j-veylop/covid-dashboard/internal/db"
	"github.com/j-veylop/covid-dashboard/internal/logger"
	"github.com/j-veylop/covid-dashboard/internal/models"
)

// Document keys, in page order.
const (
	KeyTreemap  = "treemap"
	KeyGeoMap   = "geo_map"
	KeyBarChart = "barchart"
	KeyCaseVacc = "case_vacc"
	KeyScatter  = "scatter"
)

// ErrUnknownDocument is returned when a key names no document.
var ErrUnknownDocument = errors.New("unknown document")

var keys = []string{KeyTreemap, KeyGeoMap, KeyBarChart, KeyCaseVacc, KeyScatter}

// Keys returns the document keys in page order.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Info summarizes the data a bundle was built from.
type Info struct {
	Countries    int
	DailyRows    int
	Vaccinations int
	FirstDate    models.Date
	LastDate     models.Date
	HasDates     bool
	FocusCountry string
	TopN         int
	BuiltAt      time.Time
	BuildTime    time.Duration
}

// Bundle holds the five chart documents. It is immutable once built and safe
// for concurrent readers.
type Bundle struct {
	figures map[string]*charts.Figure
	docs    map[string]template.JS
	info    Info
}

type builder struct {
	key   string
	build func(charts.Source) (*charts.Figure, error)
}

// Build loads the dataset, builds every document and returns the bundle.
// Any failure aborts the build.
func Build(cfg *config.Config) (*Bundle, error) {
	start := time.Now()

	ds, err := dataset.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	store, err := db.NewMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	if err := store.Ingest(ds); err != nil {
		return nil, fmt.Errorf("failed to ingest dataset: %w", err)
	}

	b, err := FromSource(store, cfg)
	if err != nil {
		return nil, err
	}

	b.info.Countries = len(ds.Summaries)
	b.info.DailyRows = len(ds.DailyCases)
	b.info.Vaccinations = len(ds.Vaccinations)
	b.info.BuildTime = time.Since(start)

	logger.Info("dashboard built",
		"documents", len(b.docs),
		"countries", b.info.Countries,
		"duration", b.info.BuildTime,
	)
	return b, nil
}

// FromSource builds every document from an already populated source.
func FromSource(src charts.Source, cfg *config.Config) (*Bundle, error) {
	builders := []builder{
		{KeyTreemap, charts.Treemap},
		{KeyGeoMap, charts.GeoAnimation},
		{KeyBarChart, func(s charts.Source) (*charts.Figure, error) { return charts.RankedBar(s, cfg.TopN) }},
		{KeyCaseVacc, func(s charts.Source) (*charts.Figure, error) { return charts.CaseVsVaccination(s, cfg.FocusCountry) }},
		{KeyScatter, charts.ScatterGeo},
	}

	b := &Bundle{
		figures: make(map[string]*charts.Figure, len(builders)),
		docs:    make(map[string]template.JS, len(builders)),
		info: Info{
			FocusCountry: cfg.FocusCountry,
			TopN:         cfg.TopN,
			BuiltAt:      time.Now(),
		},
	}

	for _, bl := range builders {
		fig, err := bl.build(src)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", bl.key, err)
		}
		raw, err := fig.JSON()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", bl.key, err)
		}
		b.figures[bl.key] = fig
		// Marshalled JSON is a valid JS expression.
		b.docs[bl.key] = template.JS(raw)
		logger.Debug("document built", "key", bl.key, "traces", len(fig.Data), "bytes", len(raw))
	}

	first, last, ok, err := src.GetDateRange()
	if err != nil {
		return nil, fmt.Errorf("failed to read date range: %w", err)
	}
	b.info.FirstDate, b.info.LastDate, b.info.HasDates = first, last, ok

	return b, nil
}

// Figure returns the document model stored under key.
func (b *Bundle) Figure(key string) (*charts.Figure, error) {
	fig, ok := b.figures[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, key)
	}
	return fig, nil
}

// Document returns the serialized document stored under key.
func (b *Bundle) Document(key string) (template.JS, error) {
	doc, ok := b.docs[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocument, key)
	}
	return doc, nil
}

// Info returns the build summary.
func (b *Bundle) Info() Info {
	return b.info
}
