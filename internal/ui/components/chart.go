// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/covid-dashboard/internal/ui/styles"
)

// maxLabelWidth caps bar chart labels; longer labels are truncated.
const maxLabelWidth = 18

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSeriesChart plots several series on one axis. Shorter series are
// padded with zeros; colors may be nil.
func RenderSeriesChart(series [][]float64, colors []asciigraph.AnsiColor, width, height int, caption string) string {
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s))
	}
	if maxLen == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	width = max(width, 20)
	height = max(height, 3)

	padded := make([][]float64, len(series))
	for i, s := range series {
		padded[i] = make([]float64, maxLen)
		copy(padded[i], s)
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	}
	if len(colors) > 0 {
		opts = append(opts, asciigraph.SeriesColors(colors...))
	}

	return asciigraph.PlotMany(padded, opts...)
}

// RenderBarChart creates a horizontal bar chart, one row per value.
func RenderBarChart(values []float64, labels []string, width int, color lipgloss.Color) string {
	if len(values) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, min(ansi.StringWidth(l), maxLabelWidth))
	}

	barWidth := max(width-labelWidth-12, 10)
	barStyle := lipgloss.NewStyle().Foreground(color)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = ansi.Truncate(labels[i], maxLabelWidth, "…")
		}
		pad := strings.Repeat(" ", labelWidth-ansi.StringWidth(label))

		barLen := max(int((v/maxVal)*float64(barWidth)), 0)
		bar := barStyle.Render(strings.Repeat("█", barLen))

		lines = append(lines, pad+label+" │"+bar+" "+FormatValue(v))
	}

	return strings.Join(lines, "\n")
}

// RenderSparkline creates a compact inline sparkline chart. The value at
// marker, if in range, is highlighted.
func RenderSparkline(values []float64, width, marker int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	step := max(float64(len(values))/float64(width), 1)
	markStyle := lipgloss.NewStyle().Foreground(styles.FrameMarker)

	var result strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		idx := int(float64(i) * step)
		level := int((values[idx] / maxVal) * float64(len(sparkChars)-1))
		level = min(max(level, 0), len(sparkChars)-1)

		ch := string(sparkChars[level])
		next := int(float64(i+1) * step)
		if marker >= idx && marker < max(next, idx+1) {
			ch = markStyle.Render(ch)
		}
		result.WriteString(ch)
	}

	return result.String()
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}
