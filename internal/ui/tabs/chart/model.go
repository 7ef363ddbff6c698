// Package chart provides the tab that previews one dashboard document.
package chart

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/covid-dashboard/internal/app"
	"github.com/j-veylop/covid-dashboard/internal/charts"
	"github.com/j-veylop/covid-dashboard/internal/ui/components"
)

// keyMap defines the key bindings specific to the chart tab.
type keyMap struct {
	NextMeasure key.Binding
	PrevMeasure key.Binding
	NextFrame   key.Binding
	PrevFrame   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextMeasure: key.NewBinding(
			key.WithKeys("right", "l", "m"),
			key.WithHelp("→/m", "next measure"),
		),
		PrevMeasure: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev measure"),
		),
		NextFrame: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next frame"),
		),
		PrevFrame: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev frame"),
		),
	}
}

// Model renders the document stored under one bundle key.
type Model struct {
	state    *app.State
	docKey   string
	keys     keyMap
	loading  components.Loading
	viewport viewport.Model
	width    int
	height   int

	// selected measure button and animation frame
	measure int
	frame   int
}

// New creates a tab for the document stored under docKey.
func New(state *app.State, docKey string) *Model {
	return &Model{
		state:    state,
		docKey:   docKey,
		keys:     defaultKeyMap(),
		loading:  components.NewLoading("Building charts..."),
		viewport: viewport.New(0, 0),
	}
}

// Init starts the loading spinner.
func (m *Model) Init() tea.Cmd {
	return m.loading.Tick()
}

// Update handles messages for the chart tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd

	case app.BundleLoadedMsg:
		if msg.Err == nil {
			m.measure, m.frame = 0, 0
		}

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	fig := m.figure()
	if fig == nil {
		return nil
	}

	buttons := len(fig.MeasureButtons())
	frames := len(fig.Frames)

	switch {
	case key.Matches(msg, m.keys.NextMeasure) && buttons > 0:
		m.measure = (m.measure + 1) % buttons
	case key.Matches(msg, m.keys.PrevMeasure) && buttons > 0:
		m.measure = (m.measure - 1 + buttons) % buttons
	case key.Matches(msg, m.keys.NextFrame) && frames > 0:
		m.frame = min(m.frame+1, frames-1)
	case key.Matches(msg, m.keys.PrevFrame) && frames > 0:
		m.frame = max(m.frame-1, 0)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// figure returns the document with the selected measure applied, or nil
// before a bundle is available.
func (m *Model) figure() *charts.Figure {
	b := m.state.Bundle()
	if b == nil {
		return nil
	}
	fig, err := b.Figure(m.docKey)
	if err != nil {
		return nil
	}
	if buttons := fig.MeasureButtons(); len(buttons) > 0 {
		return fig.Apply(buttons[m.measure%len(buttons)])
	}
	return fig
}

// Measure returns the index of the selected measure button.
func (m *Model) Measure() int {
	return m.measure
}

// Frame returns the index of the selected animation frame.
func (m *Model) Frame() int {
	return m.frame
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.NextMeasure, m.keys.PrevMeasure, m.keys.NextFrame, m.keys.PrevFrame}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextMeasure, m.keys.PrevMeasure},
		{m.keys.NextFrame, m.keys.PrevFrame},
	}
}
