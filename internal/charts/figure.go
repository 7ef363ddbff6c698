// Package charts builds the dashboard's chart documents.
//
// A document is a Plotly figure: traces, layout and, for animations, frames.
// Documents with several measures carry one update-menu button per measure
// whose first argument is a visibility mask over every trace.
package charts

import (
	"encoding/json"
	"fmt"
)

// Figure is a Plotly figure.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames,omitempty"`
}

// Trace is one visual series. Only the fields the builders use are modelled.
type Trace struct {
	Type         string    `json:"type"`
	Name         string    `json:"name,omitempty"`
	Visible      *bool     `json:"visible,omitempty"`
	ShowLegend   *bool     `json:"showlegend,omitempty"`
	LegendGroup  string    `json:"legendgroup,omitempty"`
	Labels       []string  `json:"labels,omitempty"`
	Parents      []string  `json:"parents,omitempty"`
	Values       []float64 `json:"values,omitempty"`
	X            []string  `json:"x,omitempty"`
	Y            []float64 `json:"y,omitempty"`
	Locations    []string  `json:"locations,omitempty"`
	LocationMode string    `json:"locationmode,omitempty"`
	Z            []float64 `json:"z,omitempty"`
	HoverText    []string  `json:"hovertext,omitempty"`
	HoverInfo    string    `json:"hoverinfo,omitempty"`
	Mode         string    `json:"mode,omitempty"`
	Geo          string    `json:"geo,omitempty"`
	ColorAxis    string    `json:"coloraxis,omitempty"`
	Marker       *Marker   `json:"marker,omitempty"`
}

// Marker styles bars and scatter points.
type Marker struct {
	Color    string    `json:"color,omitempty"`
	Size     []float64 `json:"size,omitempty"`
	SizeMode string    `json:"sizemode,omitempty"`
	SizeRef  float64   `json:"sizeref,omitempty"`
	Opacity  float64   `json:"opacity,omitempty"`
}

// Layout is the figure layout.
type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
	Sliders     []Slider     `json:"sliders,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	PlotBgColor string       `json:"plot_bgcolor,omitempty"`
	Geo         *Geo         `json:"geo,omitempty"`
	ColorAxis   *ColorAxis   `json:"coloraxis,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
}

// Title is a layout or axis title.
type Title struct {
	Text string  `json:"text"`
	X    float64 `json:"x,omitempty"`
}

// Axis is a cartesian axis.
type Axis struct {
	Title *Title `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Geo configures the map subplot.
type Geo struct {
	Projection    *Projection `json:"projection,omitempty"`
	ShowFrame     bool        `json:"showframe"`
	ShowCoastline bool        `json:"showcoastlines"`
}

// Projection names a map projection.
type Projection struct {
	Type string `json:"type"`
}

// ColorAxis is a shared continuous color scale.
type ColorAxis struct {
	ColorScale ColorScale `json:"colorscale"`
	CMin       float64    `json:"cmin"`
	CMax       float64    `json:"cmax"`
	ColorBar   *ColorBar  `json:"colorbar,omitempty"`
}

// ColorBar labels a color axis.
type ColorBar struct {
	Title *Title `json:"title,omitempty"`
}

// Legend configures the legend.
type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// ColorScale is a list of [position, color] stops.
type ColorScale [][2]any

// UpdateMenu is a dropdown or button row.
type UpdateMenu struct {
	Type       string   `json:"type,omitempty"`
	Direction  string   `json:"direction,omitempty"`
	Active     int      `json:"active"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x,omitempty"`
	Y          float64  `json:"y,omitempty"`
	XAnchor    string   `json:"xanchor,omitempty"`
	YAnchor    string   `json:"yanchor,omitempty"`
	Buttons    []Button `json:"buttons"`
}

// Button is one update-menu entry.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// TraceUpdate is the restyle argument of a measure button.
type TraceUpdate struct {
	Visible []bool `json:"visible"`
}

// LayoutUpdate is the relayout argument of a measure button.
type LayoutUpdate struct {
	Title string `json:"title"`
}

// Slider steps through animation frames.
type Slider struct {
	Active       int            `json:"active"`
	CurrentValue *CurrentValue  `json:"currentvalue,omitempty"`
	Pad          map[string]int `json:"pad,omitempty"`
	Steps        []SliderStep   `json:"steps"`
}

// CurrentValue labels the slider position.
type CurrentValue struct {
	Prefix string `json:"prefix"`
}

// SliderStep jumps to one frame.
type SliderStep struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// Frame is one animation frame.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

// FrameOptions is the animate argument of sliders and play buttons.
type FrameOptions struct {
	Frame       FrameTiming    `json:"frame"`
	Mode        string         `json:"mode,omitempty"`
	FromCurrent bool           `json:"fromcurrent,omitempty"`
	Transition  map[string]int `json:"transition"`
}

// FrameTiming sets the frame duration.
type FrameTiming struct {
	Duration int  `json:"duration"`
	Redraw   bool `json:"redraw"`
}

// JSON serializes the figure.
func (f *Figure) JSON() ([]byte, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize figure: %w", err)
	}
	return b, nil
}

// TitleText returns the layout title or "".
func (f *Figure) TitleText() string {
	if f.Layout.Title == nil {
		return ""
	}
	return f.Layout.Title.Text
}

// VisibleTraces returns the indexes of traces that are shown.
// A trace without an explicit visibility is shown.
func (f *Figure) VisibleTraces() []int {
	var idx []int
	for i, t := range f.Data {
		if t.Visible == nil || *t.Visible {
			idx = append(idx, i)
		}
	}
	return idx
}

// MeasureButtons returns the buttons of the measure toggle menu, if any.
func (f *Figure) MeasureButtons() []Button {
	for _, m := range f.Layout.UpdateMenus {
		if len(m.Buttons) > 0 && m.Buttons[0].Method == "update" {
			return m.Buttons
		}
	}
	return nil
}

// Mask returns the visibility mask of an update button.
func (b Button) Mask() ([]bool, bool) {
	if b.Method != "update" || len(b.Args) == 0 {
		return nil, false
	}
	u, ok := b.Args[0].(TraceUpdate)
	if !ok {
		return nil, false
	}
	return u.Visible, true
}

// Apply returns a copy of the figure with the button's mask and title applied.
// The receiver is not modified.
func (f *Figure) Apply(b Button) *Figure {
	mask, ok := b.Mask()
	if !ok {
		return f
	}

	out := *f
	out.Data = make([]Trace, len(f.Data))
	copy(out.Data, f.Data)
	for i := range out.Data {
		if i < len(mask) {
			out.Data[i].Visible = boolPtr(mask[i])
		}
	}

	if len(b.Args) > 1 {
		if lu, ok := b.Args[1].(LayoutUpdate); ok {
			out.Layout.Title = &Title{Text: lu.Title}
			if f.Layout.Title != nil {
				out.Layout.Title.X = f.Layout.Title.X
			}
		}
	}
	return &out
}

func boolPtr(b bool) *bool {
	return &b
}
