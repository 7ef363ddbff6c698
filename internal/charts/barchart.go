package charts

import (
	"errors"
	"fmt"
)

// ErrInvalidTopN is returned when a ranked chart is asked for fewer than one row.
var ErrInvalidTopN = errors.New("top n must be positive")

// RankedBar builds one bar trace per VaccinationMeasures entry. Each trace is
// ranked independently: rows missing the measure are dropped, the rest sorted
// descending and cut to topN.
func RankedBar(src Source, topN int) (*Figure, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("ranked bar: %w: %d", ErrInvalidTopN, topN)
	}

	fig := &Figure{}
	labels := make([]string, len(VaccinationMeasures))
	titles := make([]string, len(VaccinationMeasures))
	groups := make([]int, len(VaccinationMeasures))

	for i, m := range VaccinationMeasures {
		rows, err := src.GetTopCountries(m, topN)
		if err != nil {
			return nil, fmt.Errorf("ranked bar %s: %w", m.Column, err)
		}

		trace := Trace{
			Type:      "bar",
			Name:      m.Label,
			Visible:   boolPtr(i == 0),
			HoverInfo: "skip",
			X:         make([]string, 0, len(rows)),
			Y:         make([]float64, 0, len(rows)),
		}
		for j := range rows {
			v, err := m.Of(&rows[j])
			if err != nil {
				return nil, fmt.Errorf("ranked bar: %w", err)
			}
			trace.X = append(trace.X, rows[j].Country)
			trace.Y = append(trace.Y, v.Float64)
		}

		fig.Data = append(fig.Data, trace)
		labels[i] = m.Label
		titles[i] = bold(fmt.Sprintf("%s top %d countries", m.Label, topN))
		groups[i] = 1
	}

	fig.Layout = Layout{
		Title:       &Title{Text: bold(fmt.Sprintf("Vaccination top %d countries", topN))},
		UpdateMenus: []UpdateMenu{measureMenu(labels, titles, groups)},
		XAxis:       &Axis{Title: &Title{Text: fmt.Sprintf("Top %d Countries", topN)}},
		YAxis:       &Axis{Title: &Title{Text: VaccinationMeasures[0].Label}},
		PlotBgColor: transparent,
		HoverMode:   "x",
	}

	return fig, nil
}
