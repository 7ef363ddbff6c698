package db

// SQL fragments used across multiple functions
const (
	// summaryColumns is the column list shared by summary inserts and selects.
	summaryColumns = `country, continent, total_confirmed, confirmed_per_million,
		total_deaths, deaths_per_million, population, total_vaccinations,
		people_fully_vaccinated, percentage_vaccinated, confirmed_rate,
		death_rate, fully_vaccinated_rate`

	// sqlCompleteSummaryClause keeps rows with every source and derived column present.
	sqlCompleteSummaryClause = `continent <> ''
		AND total_confirmed IS NOT NULL AND confirmed_per_million IS NOT NULL
		AND total_deaths IS NOT NULL AND deaths_per_million IS NOT NULL
		AND population IS NOT NULL AND total_vaccinations IS NOT NULL
		AND people_fully_vaccinated IS NOT NULL AND percentage_vaccinated IS NOT NULL
		AND confirmed_rate IS NOT NULL AND death_rate IS NOT NULL
		AND fully_vaccinated_rate IS NOT NULL`
)
