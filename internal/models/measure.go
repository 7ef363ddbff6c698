package models

import (
	"errors"
	"fmt"
)

// ErrUnknownMeasure is returned when a measure does not name a summary column.
var ErrUnknownMeasure = errors.New("unknown measure")

// Measure is a named numeric column of the country summary.
type Measure struct {
	// Column is the storage column name.
	Column string
	// Label is the display name.
	Label string
}

// Summary measures.
var (
	MeasureTotalConfirmed      = Measure{Column: "total_confirmed", Label: "Total confirmed"}
	MeasureConfirmedPerMillion = Measure{Column: "confirmed_per_million", Label: "Confirmed per million"}
	MeasureTotalDeaths         = Measure{Column: "total_deaths", Label: "Total deaths"}
	MeasureDeathsPerMillion    = Measure{Column: "deaths_per_million", Label: "Deaths per million"}
	MeasureDeathRate           = Measure{Column: "death_rate", Label: "Deaths among confirmed (%)"}
	MeasurePopulation          = Measure{Column: "population", Label: "Population"}
	MeasureTotalVaccinations   = Measure{Column: "total_vaccinations", Label: "Vaccinations"}
	MeasurePercentVaccinated   = Measure{Column: "percentage_vaccinated", Label: "Vaccinations per population (%)"}
	MeasureFullyVaccinatedRate = Measure{Column: "fully_vaccinated_rate", Label: "Fully vaccinated population (%)"}
	MeasureConfirmedRate       = Measure{Column: "confirmed_rate", Label: "Confirmed per population (%)"}
	MeasurePeopleFullyVacc     = Measure{Column: "people_fully_vaccinated", Label: "People fully vaccinated"}
)

// String returns the display label.
func (m Measure) String() string {
	return m.Label
}

// Of returns the measure's value for a summary row.
func (m Measure) Of(c *CountrySummary) (Float, error) {
	switch m.Column {
	case MeasureTotalConfirmed.Column:
		return c.TotalConfirmed, nil
	case MeasureConfirmedPerMillion.Column:
		return c.ConfirmedPerMillion, nil
	case MeasureTotalDeaths.Column:
		return c.TotalDeaths, nil
	case MeasureDeathsPerMillion.Column:
		return c.DeathsPerMillion, nil
	case MeasureDeathRate.Column:
		return c.DeathRate, nil
	case MeasurePopulation.Column:
		return c.Population, nil
	case MeasureTotalVaccinations.Column:
		return c.TotalVaccinations, nil
	case MeasurePercentVaccinated.Column:
		return c.PercentageVaccinated, nil
	case MeasureFullyVaccinatedRate.Column:
		return c.FullyVaccinatedRate, nil
	case MeasureConfirmedRate.Column:
		return c.ConfirmedRate, nil
	case MeasurePeopleFullyVacc.Column:
		return c.PeopleFullyVaccinated, nil
	default:
		return Float{}, fmt.Errorf("%w: %q", ErrUnknownMeasure, m.Column)
	}
}

// Known reports whether the measure names a summary column.
func (m Measure) Known() bool {
	_, err := m.Of(&CountrySummary{})
	return err == nil
}
