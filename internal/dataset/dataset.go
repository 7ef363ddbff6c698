// Package dataset loads the three CSV snapshots the dashboard is built from.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/j-veylop/covid-dashboard/internal/config"
	"github.com/j-veylop/covid-dashboard/internal/logger"
	"github.com/j-veylop/covid-dashboard/internal/models"
)

// ErrMissingColumn is returned when a file lacks a required header.
var ErrMissingColumn = errors.New("missing column")

// Dataset holds the loaded tables. It is not modified after Load returns.
type Dataset struct {
	Summaries    []models.CountrySummary
	DailyCases   []models.DailyCase
	Vaccinations []models.Vaccination
}

// Load reads the summary, daily and vaccination files named by cfg.
// Any missing file, missing column or malformed cell fails the whole load.
func Load(cfg *config.Config) (*Dataset, error) {
	ds := &Dataset{}

	if err := readFile(cfg.SummaryPath(), models.SummaryColumns, &ds.Summaries); err != nil {
		return nil, fmt.Errorf("failed to load country summary: %w", err)
	}
	complete := 0
	for i := range ds.Summaries {
		ds.Summaries[i].Derive()
		if ds.Summaries[i].Complete() {
			complete++
		}
	}

	if err := readFile(cfg.DailyPath(), models.DailyColumns, &ds.DailyCases); err != nil {
		return nil, fmt.Errorf("failed to load daily series: %w", err)
	}

	if err := readFile(cfg.VaccinationPath(), models.VaccinationColumns, &ds.Vaccinations); err != nil {
		return nil, fmt.Errorf("failed to load vaccination series: %w", err)
	}

	logger.Info("dataset loaded",
		"dir", cfg.DataDir,
		"countries", len(ds.Summaries),
		"complete_countries", complete,
		"daily_rows", len(ds.DailyCases),
		"vaccination_rows", len(ds.Vaccinations),
	)

	return ds, nil
}

// readFile checks the header for the required columns, then decodes every row into out.
func readFile(path string, required []string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := checkHeader(f, required); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := Decode(f, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Decode unmarshals CSV rows from r into out, a pointer to a slice of row structs.
func Decode(r io.Reader, out any) error {
	if err := gocsv.Unmarshal(r, out); err != nil {
		return fmt.Errorf("failed to decode rows: %w", err)
	}
	return nil
}

func checkHeader(r io.Reader, required []string) error {
	header, err := csv.NewReader(r).Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = true
	}

	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
