package db

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/covid-dashboard/internal/dataset"
	"github.com/j-veylop/covid-dashboard/internal/models"
)

func countries(rows []models.CountrySummary) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Country
	}
	return out
}

func TestIngest_RoundTrip(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	rows, err := db.GetSummaries()
	require.NoError(t, err)

	want := []string{"USA", "India", "Brazil", "France", "Korea", "Greenland"}
	assert.Empty(t, cmp.Diff(want, countries(rows)), "GetSummaries() order (-want +got)")

	greenland := rows[5]
	assert.False(t, greenland.TotalDeaths.Valid, "missing cell should come back as missing")
	assert.Equal(t, models.Some(50), greenland.TotalConfirmed)
}

func TestGetTopCountries(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	rows, err := db.GetTopCountries(models.MeasureTotalVaccinations, 3)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff([]string{"USA", "India", "Brazil"}, countries(rows)))
}

func TestGetTopCountries_DropsMissing(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	rows, err := db.GetTopCountries(models.MeasureFullyVaccinatedRate, 20)
	require.NoError(t, err)

	// Greenland has no fully vaccinated count.
	require.Len(t, rows, 5)
	values := make([]float64, len(rows))
	for i, r := range rows {
		assert.True(t, r.FullyVaccinatedRate.Valid, "%s has missing measure", r.Country)
		values[i] = r.FullyVaccinatedRate.Float64
	}
	assert.True(t, sort.SliceIsSorted(values, func(i, j int) bool { return values[i] > values[j] }),
		"values not sorted descending: %v", values)
}

func TestGetTopCountries_UnknownMeasure(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	_, err := db.GetTopCountries(models.Measure{Column: "id; DROP TABLE country_summary"}, 5)
	assert.ErrorIs(t, err, models.ErrUnknownMeasure)
}

func TestGetCompleteSummaries(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	a := summary("A", "Asia", 10, 100)
	a.TotalDeaths = models.Some(1)
	a.ConfirmedPerMillion = models.Some(1)
	a.DeathsPerMillion = models.Some(1)
	a.TotalVaccinations = models.Some(1)
	a.PeopleFullyVaccinated = models.Some(1)
	a.PercentageVaccinated = models.Some(1)
	a.Derive()

	b := a
	b.Country = "B"
	b.TotalConfirmed = models.Missing()
	b.Population = models.Some(200)
	b.Derive()

	require.NoError(t, db.Ingest(&dataset.Dataset{Summaries: []models.CountrySummary{a, b}}))

	rows, err := db.GetCompleteSummaries()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]string{"A"}, countries(rows)))
}

func TestGetDailyCasesByDate(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	rows, err := db.GetDailyCasesByDate()
	require.NoError(t, err)
	require.Len(t, rows, 7)

	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].Date.Before(rows[i-1].Date.Time),
			"row %d (%s) before row %d (%s)", i, rows[i].Date, i-1, rows[i-1].Date)
	}
}

func TestGetDistinctDates(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	dates, err := db.GetDistinctDates()
	require.NoError(t, err)

	got := make([]string, len(dates))
	for i, d := range dates {
		got[i] = d.String()
	}
	assert.Equal(t, []string{"2021-01-01", "2021-01-02", "2021-01-03"}, got)
}

func TestGetDateRange(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	first, last, ok, err := db.GetDateRange()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2021-01-01", first.String())
	assert.Equal(t, "2021-01-03", last.String())
}

func TestGetDateRange_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	_, _, ok, err := db.GetDateRange()
	require.NoError(t, err)
	assert.False(t, ok, "GetDateRange() should report no range on an empty series")
}

func TestGetCaseVsVaccination(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	points, err := db.GetCaseVsVaccination("USA")
	require.NoError(t, err)

	// 2021-01-01 has no vaccination row, 2021-01-03 has an empty one,
	// 2021-01-04 has no daily row.
	require.Len(t, points, 1)
	p := points[0]
	assert.Equal(t, "2021-01-02", p.Date.String())
	assert.Equal(t, 190000.0, p.NewCases)
	assert.Equal(t, 300000.0, p.Vaccinations)
}

func TestGetCaseVsVaccination_UnknownCountry(t *testing.T) {
	db := newSeededDB(t)
	defer db.Close()

	points, err := db.GetCaseVsVaccination("Atlantis")
	require.NoError(t, err)
	assert.Empty(t, points)
}
