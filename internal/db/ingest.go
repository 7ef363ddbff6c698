package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/j-veylop/covid-dashboard/internal/dataset"
	"github.com/j-veylop/covid-dashboard/internal/logger"
	"github.com/j-veylop/covid-dashboard/internal/models"
)

// Ingest copies the loaded tables into the database in one transaction.
// Row ids follow file order so ties sort the way the files list them.
func (db *DB) Ingest(ds *dataset.Dataset) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertSummaries(tx, ds); err != nil {
		return err
	}
	if err := insertDailyCases(tx, ds); err != nil {
		return err
	}
	if err := insertVaccinations(tx, ds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ingest: %w", err)
	}

	logger.Debug("dataset ingested",
		"summaries", len(ds.Summaries),
		"daily_cases", len(ds.DailyCases),
		"vaccinations", len(ds.Vaccinations),
	)
	return nil
}

func insertSummaries(tx *sql.Tx, ds *dataset.Dataset) error {
	stmt, err := tx.PrepareContext(context.Background(), `
		INSERT INTO country_summary (`+summaryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare summary insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range ds.Summaries {
		c := &ds.Summaries[i]
		_, err := stmt.ExecContext(context.Background(),
			c.Country,
			c.Continent,
			nullFloat(c.TotalConfirmed),
			nullFloat(c.ConfirmedPerMillion),
			nullFloat(c.TotalDeaths),
			nullFloat(c.DeathsPerMillion),
			nullFloat(c.Population),
			nullFloat(c.TotalVaccinations),
			nullFloat(c.PeopleFullyVaccinated),
			nullFloat(c.PercentageVaccinated),
			nullFloat(c.ConfirmedRate),
			nullFloat(c.DeathRate),
			nullFloat(c.FullyVaccinatedRate),
		)
		if err != nil {
			return fmt.Errorf("failed to insert summary for %s: %w", c.Country, err)
		}
	}
	return nil
}

func insertDailyCases(tx *sql.Tx, ds *dataset.Dataset) error {
	stmt, err := tx.PrepareContext(context.Background(), `
		INSERT INTO daily_cases (date, country, daily_new_cases, daily_new_deaths)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare daily insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, d := range ds.DailyCases {
		if _, err := stmt.ExecContext(context.Background(),
			d.Date.String(), d.Country, nullFloat(d.DailyNewCases), nullFloat(d.DailyNewDeaths),
		); err != nil {
			return fmt.Errorf("failed to insert daily row %s/%s: %w", d.Country, d.Date, err)
		}
	}
	return nil
}

func insertVaccinations(tx *sql.Tx, ds *dataset.Dataset) error {
	stmt, err := tx.PrepareContext(context.Background(), `
		INSERT INTO vaccinations (date, country, daily_vaccinations, daily_vaccinations_per_million)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare vaccination insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, v := range ds.Vaccinations {
		if _, err := stmt.ExecContext(context.Background(),
			v.Date.String(), v.Country, nullFloat(v.DailyVaccinations), nullFloat(v.DailyVaccinationsPerMillion),
		); err != nil {
			return fmt.Errorf("failed to insert vaccination row %s/%s: %w", v.Country, v.Date, err)
		}
	}
	return nil
}

// nullFloat converts a missing value to NULL.
func nullFloat(f models.Float) any {
	if !f.Valid {
		return nil
	}
	return f.Float64
}
