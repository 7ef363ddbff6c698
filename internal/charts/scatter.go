package charts

import (
	"fmt"
)

// continentPalette is the default qualitative palette, assigned to continents
// in order of first appearance.
var continentPalette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// maxMarkerSize is the diameter in pixels of the largest scatter marker.
const maxMarkerSize = 20

// ScatterGeo builds the bubble map. Only rows with every column present are
// plotted. Each measure owns one trace per continent; the measure menu shows
// one measure's traces at a time.
func ScatterGeo(src Source) (*Figure, error) {
	rows, err := src.GetCompleteSummaries()
	if err != nil {
		return nil, fmt.Errorf("scatter geo: %w", err)
	}

	var continents []string
	byContinent := make(map[string][]int)
	for i, r := range rows {
		if _, ok := byContinent[r.Continent]; !ok {
			continents = append(continents, r.Continent)
		}
		byContinent[r.Continent] = append(byContinent[r.Continent], i)
	}

	fig := &Figure{}
	labels := make([]string, len(ScatterMeasures))
	titles := make([]string, len(ScatterMeasures))
	groups := make([]int, len(ScatterMeasures))

	for i, m := range ScatterMeasures {
		largest := 0.0
		for j := range rows {
			v, err := m.Of(&rows[j])
			if err != nil {
				return nil, fmt.Errorf("scatter geo: %w", err)
			}
			largest = max(largest, v.Float64)
		}
		sizeRef := 0.0
		if largest > 0 {
			sizeRef = 2 * largest / (maxMarkerSize * maxMarkerSize)
		}

		for c, continent := range continents {
			trace := Trace{
				Type:         "scattergeo",
				Name:         continent,
				LegendGroup:  continent,
				Visible:      boolPtr(i == 0),
				Mode:         "markers",
				LocationMode: "country names",
				Geo:          "geo",
				Marker: &Marker{
					Color:    continentPalette[c%len(continentPalette)],
					SizeMode: "area",
					SizeRef:  sizeRef,
				},
			}
			for _, j := range byContinent[continent] {
				v, _ := m.Of(&rows[j])
				trace.Locations = append(trace.Locations, rows[j].Country)
				trace.HoverText = append(trace.HoverText, rows[j].Country)
				trace.Marker.Size = append(trace.Marker.Size, v.Float64)
			}
			fig.Data = append(fig.Data, trace)
		}

		labels[i] = m.Label
		titles[i] = m.Label
		groups[i] = len(continents)
	}

	fig.Layout = Layout{
		Title:       &Title{Text: ScatterMeasures[0].Label, X: 0.45},
		Geo:         &Geo{Projection: &Projection{Type: "natural earth"}, ShowCoastline: true},
		Legend:      &Legend{Title: &Title{Text: "continent"}},
		UpdateMenus: []UpdateMenu{measureMenu(labels, titles, groups)},
	}

	return fig, nil
}
