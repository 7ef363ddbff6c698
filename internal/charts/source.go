package charts

import (
	"github.com/j-veylop/covid-dashboard/internal/models"
)

// Source is the table view the builders read from. *db.DB implements it.
type Source interface {
	GetSummaries() ([]models.CountrySummary, error)
	GetTopCountries(m models.Measure, n int) ([]models.CountrySummary, error)
	GetCompleteSummaries() ([]models.CountrySummary, error)
	GetDailyCasesByDate() ([]models.DailyCase, error)
	GetDistinctDates() ([]models.Date, error)
	GetDateRange() (first, last models.Date, ok bool, err error)
	GetCaseVsVaccination(country string) ([]models.CaseVaccination, error)
}

// Measure groups offered by the toggle documents, first entry shown by default.
var (
	TreemapMeasures = []models.Measure{
		models.MeasureTotalConfirmed,
		models.MeasureConfirmedPerMillion,
		models.MeasureTotalDeaths,
		models.MeasureDeathsPerMillion,
		models.MeasureDeathRate,
		models.MeasurePopulation,
	}

	VaccinationMeasures = []models.Measure{
		models.MeasureTotalVaccinations,
		models.MeasurePercentVaccinated,
		models.MeasureFullyVaccinatedRate,
	}

	ScatterMeasures = []models.Measure{
		models.MeasureConfirmedRate,
		models.MeasureDeathRate,
		models.MeasurePercentVaccinated,
		models.MeasureFullyVaccinatedRate,
	}
)

// measureMenu builds the single-choice toggle over groups of traces.
// groups[i] is the number of consecutive traces measure i owns.
func measureMenu(labels, titles []string, groups []int) UpdateMenu {
	total := 0
	for _, n := range groups {
		total += n
	}

	buttons := make([]Button, len(labels))
	offset := 0
	for i, label := range labels {
		mask := make([]bool, total)
		for j := offset; j < offset+groups[i]; j++ {
			mask[j] = true
		}
		offset += groups[i]

		buttons[i] = Button{
			Label:  label,
			Method: "update",
			Args:   []any{TraceUpdate{Visible: mask}, LayoutUpdate{Title: titles[i]}},
		}
	}

	return UpdateMenu{
		Type:       "dropdown",
		Direction:  "down",
		Active:     0,
		ShowActive: true,
		X:          0,
		Y:          1.15,
		XAnchor:    "left",
		YAnchor:    "top",
		Buttons:    buttons,
	}
}

func bold(s string) string {
	return "<b>" + s + "</b>"
}
