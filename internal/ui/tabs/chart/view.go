package chart

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/covid-dashboard/internal/charts"
	"github.com/j-veylop/covid-dashboard/internal/ui/components"
	"github.com/j-veylop/covid-dashboard/internal/ui/styles"
)

// maxRows caps ranked lists.
const maxRows = 15

var traceColors = map[string]asciigraph.AnsiColor{
	"crimson":       asciigraph.Crimson,
	"lightseagreen": asciigraph.LightSeaGreen,
}

var legendColors = map[string]lipgloss.Color{
	"crimson":       styles.Cases,
	"lightseagreen": styles.Vaccinated,
}

// View renders the chart tab.
func (m *Model) View() string {
	if m.state.Bundle() == nil {
		l := m.loading
		if err := m.state.LoadError(); err != nil {
			l.Fail(err)
		}
		return l.ViewCentered(m.width, m.height)
	}

	fig := m.figure()
	if fig == nil {
		return styles.ErrorTextStyle.Render(fmt.Sprintf("No document %q", m.docKey))
	}

	m.viewport.SetContent(Render(fig, m.measure, m.frame, max(m.width-6, 20)))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// Render draws a document in the terminal. Toggle documents are expected to
// have their measure applied already; measure only marks the active button.
func Render(fig *charts.Figure, measure, frame, width int) string {
	sections := []string{styles.TitleStyle.Render(plainText(fig.TitleText()))}

	if buttons := fig.MeasureButtons(); len(buttons) > 0 {
		labels := make([]string, len(buttons))
		for i, b := range buttons {
			labels[i] = b.Label
		}
		sections = append(sections, components.RenderButtonRow(labels, measure, width), "")
	}

	sections = append(sections, renderBody(fig, frame, width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderBody(fig *charts.Figure, frame, width int) string {
	visible := fig.VisibleTraces()
	if len(visible) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	first := fig.Data[visible[0]]
	switch first.Type {
	case "treemap":
		return renderTreemap(first, width)
	case "bar":
		if fig.Layout.BarMode == "stack" {
			return renderStacked(fig, visible, width)
		}
		return components.RenderBarChart(first.Y, first.X, width, styles.BarFill)
	case "choropleth":
		return renderFrames(fig, frame, width)
	case "scattergeo":
		return renderGroups(fig, visible)
	default:
		return styles.HelpStyle.Render(fmt.Sprintf("Cannot preview %s traces", first.Type))
	}
}

type entry struct {
	label string
	value float64
}

// ranked sorts entries by value, largest first, and keeps the first maxRows.
func ranked(entries []entry) (labels []string, values []float64) {
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Compare(b.value, a.value)
	})
	for _, e := range entries[:min(len(entries), maxRows)] {
		labels = append(labels, e.label)
		values = append(values, e.value)
	}
	return labels, values
}

func footer(shown, total int) string {
	if total <= shown {
		return ""
	}
	return styles.HelpStyle.Render(fmt.Sprintf("showing %d of %d", shown, total))
}

func renderTreemap(tr charts.Trace, width int) string {
	var entries []entry
	for i, label := range tr.Labels {
		if i >= len(tr.Parents) || tr.Parents[i] == "" || i >= len(tr.Values) {
			continue
		}
		entries = append(entries, entry{label, tr.Values[i]})
	}

	total := len(entries)
	labels, values := ranked(entries)
	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderBarChart(values, labels, width, styles.BarFill),
		footer(len(values), total),
	)
}

func renderStacked(fig *charts.Figure, visible []int, width int) string {
	var series [][]float64
	var colors []asciigraph.AnsiColor
	var legend []components.LegendItem
	var dates []string

	for _, i := range visible {
		tr := fig.Data[i]
		series = append(series, tr.Y)
		color := ""
		if tr.Marker != nil {
			color = strings.ToLower(tr.Marker.Color)
		}
		colors = append(colors, traceColors[color])
		legend = append(legend, components.LegendItem{Label: tr.Name, Color: legendColors[color]})
		if len(tr.X) > len(dates) {
			dates = tr.X
		}
	}

	// A single day has no line to draw.
	if len(dates) < 2 {
		labels := make([]string, len(series))
		values := make([]float64, len(series))
		for i, s := range series {
			labels[i] = legend[i].Label
			for _, v := range s {
				values[i] += v
			}
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.InfoTextStyle.Render(strings.Join(dates, "")),
			components.RenderBarChart(values, labels, width, styles.BarFill),
		)
	}

	caption := dates[0] + " .. " + dates[len(dates)-1]

	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderSeriesChart(series, colors, width-12, 12, caption),
		"",
		components.RenderLegend(legend),
	)
}

func renderFrames(fig *charts.Figure, frame, width int) string {
	if len(fig.Frames) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	frame = min(max(frame, 0), len(fig.Frames)-1)

	totals := make([]float64, len(fig.Frames))
	for i, f := range fig.Frames {
		for _, tr := range f.Data {
			for _, z := range tr.Z {
				totals[i] += z
			}
		}
	}

	current := fig.Frames[frame]
	var entries []entry
	for _, tr := range current.Data {
		for i, loc := range tr.Locations {
			if i < len(tr.Z) {
				entries = append(entries, entry{loc, tr.Z[i]})
			}
		}
	}

	total := len(entries)
	labels, values := ranked(entries)

	header := fmt.Sprintf("date=%s  frame %d/%d  total %s",
		current.Name, frame+1, len(fig.Frames), components.FormatValue(totals[frame]))

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.InfoTextStyle.Render(header),
		components.RenderSparkline(totals, width, frame),
		"",
		components.RenderBarChart(values, labels, width, styles.Cases),
		footer(len(values), total),
	)
}

func renderGroups(fig *charts.Figure, visible []int) string {
	header := fmt.Sprintf("%-16s %9s %9s  %s", "Continent", "Countries", "Mean", "Largest")
	rows := []string{styles.TableHeaderStyle.Render(header)}

	for n, i := range visible {
		tr := fig.Data[i]
		if tr.Marker == nil || len(tr.Marker.Size) == 0 {
			continue
		}

		sum, best := 0.0, 0
		for j, v := range tr.Marker.Size {
			sum += v
			if v > tr.Marker.Size[best] {
				best = j
			}
		}

		largest := ""
		if best < len(tr.Locations) {
			largest = fmt.Sprintf("%s (%s)", tr.Locations[best], components.FormatValue(tr.Marker.Size[best]))
		}

		swatch := lipgloss.NewStyle().Foreground(styles.SeriesColor(n)).Render("■")
		name := ansi.Truncate(tr.Name, 14, "…")
		rows = append(rows, styles.TableCellStyle.Render(fmt.Sprintf("%s %-14s %9d %9s  %s",
			swatch, name, len(tr.Marker.Size), components.FormatValue(sum/float64(len(tr.Marker.Size))), largest)))
	}

	return strings.Join(rows, "\n")
}

// plainText strips the HTML markup Plotly titles carry.
func plainText(s string) string {
	r := strings.NewReplacer("<b>", "", "</b>", "", "<br>", " ")
	return r.Replace(s)
}
