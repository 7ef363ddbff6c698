package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/covid-dashboard/internal/ui/styles"
)

// maxButtonWidth caps a single button label.
const maxButtonWidth = 32

// RenderButtonRow renders a row of selectable buttons with one active.
// Buttons that do not fit width are wrapped onto following rows.
func RenderButtonRow(labels []string, active, width int) string {
	if len(labels) == 0 {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0

	for i, label := range labels {
		style := styles.ButtonInactiveStyle
		if i == active {
			style = styles.ButtonActiveStyle
		}
		button := style.Render(ansi.Truncate(label, maxButtonWidth, "…"))
		w := lipgloss.Width(button)

		if width > 0 && rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, button)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
