package models

// CountrySummary is one row of the per-country summary snapshot.
type CountrySummary struct {
	Country               string `csv:"country"`
	Continent             string `csv:"continent"`
	TotalConfirmed        Float  `csv:"total_confirmed"`
	ConfirmedPerMillion   Float  `csv:"total_cases_per_1m_population"`
	TotalDeaths           Float  `csv:"total_deaths"`
	DeathsPerMillion      Float  `csv:"total_deaths_per_1m_population"`
	Population            Float  `csv:"population"`
	TotalVaccinations     Float  `csv:"total_vaccinations"`
	PeopleFullyVaccinated Float  `csv:"people_fully_vaccinated"`
	PercentageVaccinated  Float  `csv:"percentage_vaccinated"`

	// Derived at load time, in percent.
	ConfirmedRate       Float `csv:"-"`
	DeathRate           Float `csv:"-"`
	FullyVaccinatedRate Float `csv:"-"`
}

// SummaryColumns lists the header names a summary file must carry.
var SummaryColumns = []string{
	"country",
	"continent",
	"total_confirmed",
	"total_cases_per_1m_population",
	"total_deaths",
	"total_deaths_per_1m_population",
	"population",
	"total_vaccinations",
	"people_fully_vaccinated",
	"percentage_vaccinated",
}

// Derive computes the ratio columns from the base fields.
// A zero or missing denominator leaves the ratio missing.
func (c *CountrySummary) Derive() {
	c.ConfirmedRate = c.TotalConfirmed.Scale(100).Div(c.Population)
	c.DeathRate = c.TotalDeaths.Scale(100).Div(c.TotalConfirmed)
	c.FullyVaccinatedRate = c.PeopleFullyVaccinated.Scale(100).Div(c.Population)
}

// Complete reports whether every source and derived column is present.
func (c *CountrySummary) Complete() bool {
	if c.Country == "" || c.Continent == "" {
		return false
	}
	for _, f := range []Float{
		c.TotalConfirmed, c.ConfirmedPerMillion, c.TotalDeaths, c.DeathsPerMillion,
		c.Population, c.TotalVaccinations, c.PeopleFullyVaccinated, c.PercentageVaccinated,
		c.ConfirmedRate, c.DeathRate, c.FullyVaccinatedRate,
	} {
		if !f.Valid {
			return false
		}
	}
	return true
}
