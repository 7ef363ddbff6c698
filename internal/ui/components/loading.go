package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/covid-dashboard/internal/ui/styles"
)

// Loading shows a spinner with a label until it fails or is replaced by content.
type Loading struct {
	spinner spinner.Model
	label   string
	err     error
}

// NewLoading creates a loading indicator with the given label.
func NewLoading(label string) Loading {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return Loading{spinner: s, label: label}
}

// Tick returns the command that starts the spinner.
func (l Loading) Tick() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l Loading) Update(msg tea.Msg) (Loading, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// Fail switches the indicator to an error message.
func (l *Loading) Fail(err error) {
	l.err = err
}

// View renders the spinner and label, or the error after Fail.
func (l Loading) View() string {
	if l.err != nil {
		return styles.ErrorTextStyle.Render("Error: " + l.err.Error())
	}
	return l.spinner.View() + " " + lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(l.label)
}

// ViewCentered renders View centered in a box of the given size.
func (l Loading) ViewCentered(width, height int) string {
	return styles.CenterBoth(l.View(), width, height)
}
