package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/covid-dashboard/internal/config"
	"github.com/j-veylop/covid-dashboard/internal/dataset"
	"github.com/j-veylop/covid-dashboard/internal/models"
)

func TestNewMemory(t *testing.T) {
	db, err := NewMemory()
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.PingContext(context.Background()))
}

func TestNewMemory_Private(t *testing.T) {
	a := newSeededDB(t)
	defer a.Close()
	b := newTestDB(t)
	defer b.Close()

	rows, err := b.GetSummaries()
	require.NoError(t, err)
	assert.Empty(t, rows, "a second in-memory database should not see the first one's rows")
}

func TestSchema_TablesExist(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	for _, table := range []string{"country_summary", "daily_cases", "vaccinations"} {
		var name string
		err := db.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestClose(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Close())

	assert.Error(t, db.PingContext(context.Background()), "closed database should not answer")
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewMemory()
	require.NoError(t, err)
	return db
}

// newSeededDB returns a database holding the shared CSV fixtures.
func newSeededDB(t *testing.T) *DB {
	t.Helper()
	ds := loadFixtures(t)
	db := newTestDB(t)
	require.NoError(t, db.Ingest(ds))
	return db
}

func loadFixtures(t *testing.T) *dataset.Dataset {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = filepath.Join("..", "dataset", "testdata")
	ds, err := dataset.Load(cfg)
	require.NoError(t, err)
	return ds
}

func summary(country, continent string, confirmed, population float64) models.CountrySummary {
	c := models.CountrySummary{
		Country:        country,
		Continent:      continent,
		TotalConfirmed: models.Some(confirmed),
		Population:     models.Some(population),
	}
	c.Derive()
	return c
}
