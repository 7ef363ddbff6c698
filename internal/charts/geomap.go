package charts

import (
	"fmt"
	"math"

	"github.com/j-veylop/covid-dashboard/internal/models"
)

// matterScale is the cmocean "matter" sequential scale.
var matterScale = []string{
	"rgb(253, 237, 176)", "rgb(250, 205, 145)", "rgb(246, 173, 119)",
	"rgb(240, 142, 98)", "rgb(231, 109, 84)", "rgb(216, 80, 83)",
	"rgb(195, 56, 90)", "rgb(168, 40, 96)", "rgb(138, 29, 99)",
	"rgb(107, 24, 93)", "rgb(76, 21, 80)", "rgb(47, 15, 61)",
}

// frameDuration is the playback time per animation frame in milliseconds.
const frameDuration = 200

// GeoAnimation builds a choropleth of daily new cases with one frame per date.
// Frames follow the sorted distinct dates of the daily series; rows with
// missing case counts are omitted from their frame.
func GeoAnimation(src Source) (*Figure, error) {
	dates, err := src.GetDistinctDates()
	if err != nil {
		return nil, fmt.Errorf("geo animation: %w", err)
	}
	rows, err := src.GetDailyCasesByDate()
	if err != nil {
		return nil, fmt.Errorf("geo animation: %w", err)
	}

	byDate := make(map[string][]models.DailyCase, len(dates))
	cmin, cmax := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		if !r.DailyNewCases.Valid {
			continue
		}
		key := r.Date.String()
		byDate[key] = append(byDate[key], r)
		cmin = math.Min(cmin, r.DailyNewCases.Float64)
		cmax = math.Max(cmax, r.DailyNewCases.Float64)
	}
	if math.IsInf(cmin, 1) {
		cmin, cmax = 0, 0
	}

	fig := &Figure{}
	steps := make([]SliderStep, 0, len(dates))
	for _, d := range dates {
		name := d.String()
		fig.Frames = append(fig.Frames, Frame{
			Name: name,
			Data: []Trace{choroplethTrace(byDate[name])},
		})
		steps = append(steps, SliderStep{
			Label:  name,
			Method: "animate",
			Args: []any{
				[]string{name},
				FrameOptions{
					Frame:      FrameTiming{Duration: 0, Redraw: true},
					Mode:       "immediate",
					Transition: map[string]int{"duration": 0},
				},
			},
		})
	}

	if len(fig.Frames) > 0 {
		fig.Data = append(fig.Data, fig.Frames[0].Data...)
	} else {
		fig.Data = append(fig.Data, choroplethTrace(nil))
	}

	stops := make(ColorScale, len(matterScale))
	for i, c := range matterScale {
		stops[i] = [2]any{float64(i) / float64(len(matterScale)-1), c}
	}

	fig.Layout = Layout{
		Title: &Title{Text: bold("Daily new cases by country")},
		Geo: &Geo{
			Projection:    &Projection{Type: "equirectangular"},
			ShowFrame:     false,
			ShowCoastline: true,
		},
		ColorAxis: &ColorAxis{
			ColorScale: stops,
			CMin:       cmin,
			CMax:       cmax,
			ColorBar:   &ColorBar{Title: &Title{Text: "daily_new_cases"}},
		},
		UpdateMenus: []UpdateMenu{playMenu()},
		Sliders: []Slider{{
			Active:       0,
			CurrentValue: &CurrentValue{Prefix: "date="},
			Pad:          map[string]int{"b": 10, "t": 60},
			Steps:        steps,
		}},
	}

	return fig, nil
}

func choroplethTrace(rows []models.DailyCase) Trace {
	t := Trace{
		Type:         "choropleth",
		LocationMode: "country names",
		ColorAxis:    "coloraxis",
		Geo:          "geo",
		Locations:    make([]string, 0, len(rows)),
		Z:            make([]float64, 0, len(rows)),
		HoverText:    make([]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Locations = append(t.Locations, r.Country)
		t.Z = append(t.Z, r.DailyNewCases.Float64)
		t.HoverText = append(t.HoverText, r.Country)
	}
	return t
}

func playMenu() UpdateMenu {
	return UpdateMenu{
		Type:       "buttons",
		Direction:  "left",
		ShowActive: false,
		X:          0.1,
		Y:          0,
		XAnchor:    "right",
		YAnchor:    "top",
		Buttons: []Button{
			{
				Label:  "&#9654;",
				Method: "animate",
				Args: []any{nil, FrameOptions{
					Frame:       FrameTiming{Duration: frameDuration, Redraw: true},
					FromCurrent: true,
					Transition:  map[string]int{"duration": frameDuration / 2},
				}},
			},
			{
				Label:  "&#9724;",
				Method: "animate",
				Args: []any{[]any{nil}, FrameOptions{
					Frame:      FrameTiming{Duration: 0, Redraw: false},
					Mode:       "immediate",
					Transition: map[string]int{"duration": 0},
				}},
			},
		},
	}
}
