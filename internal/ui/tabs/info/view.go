package info

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/covid-dashboard/internal/ui/styles"
	"github.com/j-veylop/covid-dashboard/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderDatasetCard(),
		m.renderAboutCard(),
	)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.SubTitleStyle.Render("Configuration, dataset and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config != nil {
		rows = append(rows,
			m.renderConfigRow("Summary", filepath.Join(m.config.DataDir, m.config.SummaryFile)),
			m.renderConfigRow("Daily Series", filepath.Join(m.config.DataDir, m.config.DailyFile)),
			m.renderConfigRow("Vaccinations", filepath.Join(m.config.DataDir, m.config.VaccinationFile)),
			m.renderConfigRow("Listen Address", m.config.ListenAddr),
			m.renderConfigRow("Log Level", m.config.LogLevel),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderDatasetCard renders what the current bundle was built from.
func (m *Model) renderDatasetCard() string {
	rows := []string{styles.CardTitleStyle.Render("Dataset"), ""}

	b := m.state.Bundle()
	if b == nil {
		msg := "Building charts..."
		if err := m.state.LoadError(); err != nil {
			msg = "Load failed: " + err.Error()
			rows = append(rows, styles.ErrorTextStyle.Render(msg))
		} else {
			rows = append(rows, styles.HelpStyle.Render(msg))
		}
		return styles.CardStyle.Width(m.cardWidth()).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	info := b.Info()
	span := "no dated rows"
	if info.HasDates {
		span = fmt.Sprintf("%s to %s", info.FirstDate, info.LastDate)
	}

	rows = append(rows,
		styles.SuccessTextStyle.Render("Charts ready"),
		"",
		m.renderConfigRow("Countries", strconv.Itoa(info.Countries)),
		m.renderConfigRow("Daily Rows", strconv.Itoa(info.DailyRows)),
		m.renderConfigRow("Vaccination Rows", strconv.Itoa(info.Vaccinations)),
		m.renderConfigRow("Date Span", span),
		m.renderConfigRow("Focus Country", info.FocusCountry),
		m.renderConfigRow("Top N", strconv.Itoa(info.TopN)),
		m.renderConfigRow("Built", info.BuiltAt.Format(time.DateTime)),
		m.renderConfigRow("Build Time", info.BuildTime.Round(time.Millisecond).String()),
		m.renderConfigRow("Loaded", m.state.LoadedAt().Format(time.DateTime)),
	)

	if err := m.state.LoadError(); err != nil {
		rows = append(rows, "", styles.WarningTextStyle.Render("Last reload failed: "+err.Error()))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About COVID-19 Dashboard"),
		"",
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
