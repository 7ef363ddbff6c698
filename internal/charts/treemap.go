package charts

import (
	"fmt"
)

// treemapRoot is the parent every country hangs from.
const treemapRoot = "country"

// Treemap builds one treemap layer per TreemapMeasures entry. Countries with
// the measure missing are left out of that layer. Only the first layer is visible.
func Treemap(src Source) (*Figure, error) {
	rows, err := src.GetSummaries()
	if err != nil {
		return nil, fmt.Errorf("treemap: %w", err)
	}

	span := ""
	if first, last, ok, err := src.GetDateRange(); err != nil {
		return nil, fmt.Errorf("treemap: %w", err)
	} else if ok {
		span = first.Format("2006.01.02") + " ~ " + last.Format("2006.01.02") + " "
	}

	fig := &Figure{}
	labels := make([]string, len(TreemapMeasures))
	titles := make([]string, len(TreemapMeasures))
	groups := make([]int, len(TreemapMeasures))

	for i, m := range TreemapMeasures {
		trace := Trace{
			Type:      "treemap",
			Name:      m.Label,
			Visible:   boolPtr(i == 0),
			Labels:    []string{treemapRoot},
			Parents:   []string{""},
			Values:    []float64{0},
			HoverInfo: "label+value+percent root",
		}
		for j := range rows {
			v, err := m.Of(&rows[j])
			if err != nil {
				return nil, fmt.Errorf("treemap: %w", err)
			}
			if !v.Valid {
				continue
			}
			trace.Labels = append(trace.Labels, rows[j].Country)
			trace.Parents = append(trace.Parents, treemapRoot)
			trace.Values = append(trace.Values, v.Float64)
		}

		fig.Data = append(fig.Data, trace)
		labels[i] = m.Label
		titles[i] = bold(m.Label)
		groups[i] = 1
	}

	fig.Layout = Layout{
		Title:       &Title{Text: fmt.Sprintf("%s%s by country", span, bold(TreemapMeasures[0].Label))},
		UpdateMenus: []UpdateMenu{measureMenu(labels, titles, groups)},
	}

	return fig, nil
}
