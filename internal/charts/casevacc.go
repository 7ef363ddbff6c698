package charts

import (
	"fmt"
)

const transparent = "rgba(0,0,0,0)"

// Trace colors of the case-vs-vaccination chart.
const (
	newCasesColor    = "crimson"
	vaccinationColor = "lightseagreen"
)

// CaseVsVaccination builds two stacked bar traces for one country over the
// dates present in both the daily and vaccination series.
func CaseVsVaccination(src Source, country string) (*Figure, error) {
	rows, err := src.GetCaseVsVaccination(country)
	if err != nil {
		return nil, fmt.Errorf("case vs vaccination: %w", err)
	}

	cases := Trace{
		Type:   "bar",
		Name:   "New Cases",
		X:      make([]string, 0, len(rows)),
		Y:      make([]float64, 0, len(rows)),
		Marker: &Marker{Color: newCasesColor},
	}
	vacc := Trace{
		Type:   "bar",
		Name:   "Vaccinated",
		X:      make([]string, 0, len(rows)),
		Y:      make([]float64, 0, len(rows)),
		Marker: &Marker{Color: vaccinationColor},
	}
	for _, r := range rows {
		day := r.Date.String()
		cases.X = append(cases.X, day)
		cases.Y = append(cases.Y, r.NewCases)
		vacc.X = append(vacc.X, day)
		vacc.Y = append(vacc.Y, r.Vaccinations)
	}

	return &Figure{
		Data: []Trace{cases, vacc},
		Layout: Layout{
			Title:       &Title{Text: fmt.Sprintf("%s daily vaccinations and new cases", country)},
			XAxis:       &Axis{Title: &Title{Text: "Date"}},
			YAxis:       &Axis{Title: &Title{Text: "Count"}},
			PlotBgColor: transparent,
			BarMode:     "stack",
			HoverMode:   "x",
		},
	}, nil
}
