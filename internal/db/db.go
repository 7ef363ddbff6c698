// Package db manages the in-memory SQLite database the chart builders query.
package db

import (
	"context"
	"database/sql"
	"fmt"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// memoryDSN opens a private in-memory database.
const memoryDSN = ":memory:"

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
}

// NewMemory creates an in-memory database with the dashboard schema.
func NewMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// configure sets up database pragmas for a load-once, read-many workload.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA synchronous=OFF",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createCountrySummaryTable(); err != nil {
		return err
	}
	if err := db.createDailyCasesTable(); err != nil {
		return err
	}
	return db.createVaccinationsTable()
}

func (db *DB) createCountrySummaryTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS country_summary (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		country TEXT NOT NULL,
		continent TEXT NOT NULL DEFAULT '',
		total_confirmed REAL,
		confirmed_per_million REAL,
		total_deaths REAL,
		deaths_per_million REAL,
		population REAL,
		total_vaccinations REAL,
		people_fully_vaccinated REAL,
		percentage_vaccinated REAL,
		confirmed_rate REAL,
		death_rate REAL,
		fully_vaccinated_rate REAL
	);
	CREATE INDEX IF NOT EXISTS idx_country_summary_country ON country_summary(country);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createDailyCasesTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS daily_cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		country TEXT NOT NULL,
		daily_new_cases REAL,
		daily_new_deaths REAL
	);
	CREATE INDEX IF NOT EXISTS idx_daily_cases_date ON daily_cases(date);
	CREATE INDEX IF NOT EXISTS idx_daily_cases_country_date ON daily_cases(country, date);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createVaccinationsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS vaccinations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		country TEXT NOT NULL,
		daily_vaccinations REAL,
		daily_vaccinations_per_million REAL
	);
	CREATE INDEX IF NOT EXISTS idx_vaccinations_country_date ON vaccinations(country, date);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
