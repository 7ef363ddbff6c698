package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/j-veylop/covid-dashboard/internal/logger"
	"github.com/j-veylop/covid-dashboard/internal/models"
)

// GetSummaries returns every summary row in file order.
func (db *DB) GetSummaries() ([]models.CountrySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM country_summary ORDER BY id`
	return db.querySummaries(query)
}

// GetTopCountries returns at most n rows with the measure present, sorted descending.
func (db *DB) GetTopCountries(m models.Measure, n int) ([]models.CountrySummary, error) {
	if !m.Known() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownMeasure, m.Column)
	}
	if n <= 0 {
		return nil, nil
	}

	// m.Column is one of the fixed schema columns, checked by Known above.
	query := fmt.Sprintf(`
		SELECT %s FROM country_summary
		WHERE %s IS NOT NULL
		ORDER BY %s DESC, id ASC
		LIMIT ?
	`, summaryColumns, m.Column, m.Column)

	return db.querySummaries(query, n)
}

// GetCompleteSummaries returns rows with every source and derived column present.
func (db *DB) GetCompleteSummaries() ([]models.CountrySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM country_summary WHERE ` +
		sqlCompleteSummaryClause + ` ORDER BY id`
	return db.querySummaries(query)
}

func (db *DB) querySummaries(query string, args ...any) ([]models.CountrySummary, error) {
	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query country summary: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var result []models.CountrySummary
	for rows.Next() {
		var c models.CountrySummary
		err := rows.Scan(
			&c.Country,
			&c.Continent,
			&c.TotalConfirmed,
			&c.ConfirmedPerMillion,
			&c.TotalDeaths,
			&c.DeathsPerMillion,
			&c.Population,
			&c.TotalVaccinations,
			&c.PeopleFullyVaccinated,
			&c.PercentageVaccinated,
			&c.ConfirmedRate,
			&c.DeathRate,
			&c.FullyVaccinatedRate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan country summary: %w", err)
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

// GetDailyCasesByDate returns every daily row ordered by date, then file order.
func (db *DB) GetDailyCasesByDate() ([]models.DailyCase, error) {
	query := `
		SELECT date, country, daily_new_cases, daily_new_deaths
		FROM daily_cases
		ORDER BY date ASC, id ASC
	`

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily cases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.DailyCase
	for rows.Next() {
		var d models.DailyCase
		if err := rows.Scan(&d.Date, &d.Country, &d.DailyNewCases, &d.DailyNewDeaths); err != nil {
			return nil, fmt.Errorf("failed to scan daily case: %w", err)
		}
		result = append(result, d)
	}

	return result, rows.Err()
}

// GetDistinctDates returns the sorted distinct dates of the daily series.
func (db *DB) GetDistinctDates() ([]models.Date, error) {
	rows, err := db.QueryContext(context.Background(),
		`SELECT DISTINCT date FROM daily_cases ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []models.Date
	for rows.Next() {
		var d models.Date
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

// GetDateRange returns the first and last date of the daily series.
// ok is false when the series is empty.
func (db *DB) GetDateRange() (first, last models.Date, ok bool, err error) {
	var minStr, maxStr sql.NullString
	err = db.QueryRowContext(context.Background(),
		`SELECT MIN(date), MAX(date) FROM daily_cases`).Scan(&minStr, &maxStr)
	if err != nil {
		return first, last, false, fmt.Errorf("failed to query date range: %w", err)
	}
	if !minStr.Valid || !maxStr.Valid {
		return first, last, false, nil
	}

	if first, err = models.ParseDate(minStr.String); err != nil {
		return first, last, false, err
	}
	if last, err = models.ParseDate(maxStr.String); err != nil {
		return first, last, false, err
	}
	return first, last, true, nil
}

// GetCaseVsVaccination joins the daily and vaccination series of one country on date.
// Only days present in both series with both values present are returned.
func (db *DB) GetCaseVsVaccination(country string) ([]models.CaseVaccination, error) {
	query := `
		SELECT d.date, d.daily_new_cases, v.daily_vaccinations
		FROM daily_cases d
		INNER JOIN vaccinations v ON v.country = d.country AND v.date = d.date
		WHERE d.country = ?
		  AND d.daily_new_cases IS NOT NULL
		  AND v.daily_vaccinations IS NOT NULL
		ORDER BY d.date ASC, d.id ASC
	`

	rows, err := db.QueryContext(context.Background(), query, country)
	if err != nil {
		return nil, fmt.Errorf("failed to query case vs vaccination: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.CaseVaccination
	for rows.Next() {
		var p models.CaseVaccination
		if err := rows.Scan(&p.Date, &p.NewCases, &p.Vaccinations); err != nil {
			return nil, fmt.Errorf("failed to scan case vs vaccination: %w", err)
		}
		result = append(result, p)
	}

	return result, rows.Err()
}
