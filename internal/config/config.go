// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when a configured value cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	DataDir         string
	SummaryFile     string
	DailyFile       string
	VaccinationFile string

	ListenAddr      string
	ShutdownTimeout time.Duration

	FocusCountry string
	TopN         int

	LogLevel string
	LogFile  string
}

// Default values
const (
	defaultDataDir         = "static/data"
	defaultSummaryFile     = "summary.csv"
	defaultDailyFile       = "daily.csv"
	defaultVaccinationFile = "vacc.csv"
	defaultListenAddr      = "127.0.0.1:5000"
	defaultShutdownTimeout = 10 * time.Second
	defaultFocusCountry    = "USA"
	defaultTopN            = 20
	defaultLogLevel        = "info"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// First .env found wins; real environment variables are never overridden.
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DataDir:         getEnvString("DATA_DIR", defaultDataDir),
		SummaryFile:     getEnvString("SUMMARY_FILE", defaultSummaryFile),
		DailyFile:       getEnvString("DAILY_FILE", defaultDailyFile),
		VaccinationFile: getEnvString("VACCINATION_FILE", defaultVaccinationFile),
		ListenAddr:      getEnvString("LISTEN_ADDR", defaultListenAddr),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		FocusCountry:    getEnvString("FOCUS_COUNTRY", defaultFocusCountry),
		TopN:            getEnvInt("TOP_N", defaultTopN),
		LogLevel:        strings.ToLower(getEnvString("LOG_LEVEL", defaultLogLevel)),
		LogFile:         getEnvString("LOG_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("%w: TOP_N must be positive, got %d", ErrInvalidConfig, c.TopN)
	}
	if strings.TrimSpace(c.FocusCountry) == "" {
		return fmt.Errorf("%w: FOCUS_COUNTRY is empty", ErrInvalidConfig)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: DATA_DIR is empty", ErrInvalidConfig)
	}
	return nil
}

// SummaryPath returns the full path of the country summary file.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.DataDir, c.SummaryFile)
}

// DailyPath returns the full path of the daily series file.
func (c *Config) DailyPath() string {
	return filepath.Join(c.DataDir, c.DailyFile)
}

// VaccinationPath returns the full path of the vaccination series file.
func (c *Config) VaccinationPath() string {
	return filepath.Join(c.DataDir, c.VaccinationFile)
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	return &Config{
		DataDir:         defaultDataDir,
		SummaryFile:     defaultSummaryFile,
		DailyFile:       defaultDailyFile,
		VaccinationFile: defaultVaccinationFile,
		ListenAddr:      defaultListenAddr,
		ShutdownTimeout: defaultShutdownTimeout,
		FocusCountry:    defaultFocusCountry,
		TopN:            defaultTopN,
		LogLevel:        defaultLogLevel,
	}
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "covid-dashboard", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
// A value that does not parse is passed through as 0 so Validate reports it.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
