// Package main is the entry point for the COVID-19 dashboard.
// It loads the dataset, builds the chart documents and serves them over HTTP,
// or previews them in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/j-veylop/covid-dashboard/internal/app"
	"github.com/j-veylop/covid-dashboard/internal/config"
	"github.com/j-veylop/covid-dashboard/internal/dashboard"
	"github.com/j-veylop/covid-dashboard/internal/logger"
	"github.com/j-veylop/covid-dashboard/internal/ui/tabs/chart"
	"github.com/j-veylop/covid-dashboard/internal/ui/tabs/info"
	"github.com/j-veylop/covid-dashboard/internal/version"
	"github.com/j-veylop/covid-dashboard/internal/web"
)

// overrides holds command-line values that take precedence over the environment.
type overrides struct {
	dataDir string
	addr    string
	focus   string
	topN    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o overrides

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the charts and serve the dashboard page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, &o)
		},
	}

	rootCmd := &cobra.Command{
		Use:   "covidash",
		Short: "COVID-19 dashboard",
		Long: `covidash loads the country summary, the daily case series and the
vaccination series from CSV files, builds five interactive Plotly charts and
serves them on a single page.

Run without a subcommand to serve the dashboard.

Configuration is read from the environment and from the first .env file found
in the current directory, ~/.config/covid-dashboard or the parent directory:

  DATA_DIR          directory holding the CSV files (default: static/data)
  SUMMARY_FILE      country summary file name (default: summary.csv)
  DAILY_FILE        daily series file name (default: daily.csv)
  VACCINATION_FILE  vaccination series file name (default: vacc.csv)
  LISTEN_ADDR       HTTP listen address (default: 127.0.0.1:5000)
  FOCUS_COUNTRY     country of the cases vs vaccinations chart (default: USA)
  TOP_N             countries in the vaccination ranking (default: 20)
  LOG_LEVEL         debug, info, warn or error (default: info)
  LOG_FILE          write logs to this file instead of stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}

	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&o.addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	}
	rootCmd.PersistentFlags().StringVar(&o.dataDir, "data-dir", "", "CSV directory (overrides DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&o.focus, "focus", "", "focus country (overrides FOCUS_COUNTRY)")
	rootCmd.PersistentFlags().IntVar(&o.topN, "top", 0, "ranking length (overrides TOP_N)")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse the charts in the terminal",
		Long: `preview builds the same chart documents the server serves and renders
them in the terminal.

Keyboard Shortcuts:
  1-6             Switch between tabs
  Tab/Shift+Tab   Navigate between tabs
  ←/→, m          Cycle the chart measure
  [ / ]           Step through animation frames
  r               Rebuild the charts
  ?               Toggle help
  q, Ctrl+C       Quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(&o)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}

	rootCmd.AddCommand(serveCmd, previewCmd, versionCmd)
	return rootCmd
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig(o *overrides) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.addr != "" {
		cfg.ListenAddr = o.addr
	}
	if o.focus != "" {
		cfg.FocusCountry = o.focus
	}
	if o.topN != 0 {
		cfg.TopN = o.topN
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, o *overrides) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting", "version", version.GetVersion(), "data_dir", cfg.DataDir)

	bundle, err := dashboard.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	srv, err := web.New(cfg, bundle)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func runPreview(o *overrides) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	// Log lines on stderr would corrupt the alternate screen.
	if cfg.LogFile != "" {
		if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	} else {
		logger.Logger = zap.NewNop()
	}
	defer logger.Sync()

	model := app.NewModel(func() (*dashboard.Bundle, error) {
		return dashboard.Build(cfg)
	})

	state := model.GetState()
	titles := map[string]string{
		dashboard.KeyTreemap:  "Treemap",
		dashboard.KeyGeoMap:   "Daily Cases",
		dashboard.KeyBarChart: "Vaccinations",
		dashboard.KeyCaseVacc: "Cases vs Vaccinations",
		dashboard.KeyScatter:  "Scatter",
	}
	for _, key := range dashboard.Keys() {
		model.AddTab(titles[key], chart.New(state, key))
	}
	model.AddTab("Info", info.New(state, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
