package info

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/covid-dashboard/internal/app"
	"github.com/j-veylop/covid-dashboard/internal/config"
	"github.com/j-veylop/covid-dashboard/internal/dashboard"
	"github.com/j-veylop/covid-dashboard/internal/version"
)

func init() {
	version.Version, version.Commit, version.Date = "test", "test", "test"
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.DataDir = filepath.Join("..", "..", "..", "dataset", "testdata")
	return cfg
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), testConfig())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), testConfig())

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_ViewLoading(t *testing.T) {
	m := New(app.NewState(), testConfig())
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"Configuration", "summary.csv", "Building charts"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ViewLoaded(t *testing.T) {
	cfg := testConfig()
	b, err := dashboard.Build(cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	state := app.NewState()
	state.SetBundle(b)

	m := New(state, cfg)
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"2021-01-01 to 2021-01-03", "USA", "Charts ready", "Loaded:"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ViewLoadError(t *testing.T) {
	state := app.NewState()
	state.SetLoadError(errors.New("missing column"))

	m := New(state, nil)
	m.SetSize(100, 60)

	view := m.View()
	if !strings.Contains(view, "Configuration not loaded") {
		t.Error("View() should note missing configuration")
	}
	if !strings.Contains(view, "missing column") {
		t.Error("View() should show the load error")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), testConfig())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp should list scroll keys")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp should list scroll keys")
	}
}
