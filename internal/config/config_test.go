package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolateEnv moves the test into an empty directory with an empty HOME so no
// real .env file is picked up.
func isolateEnv(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", tmpDir)
	for _, key := range []string{
		"DATA_DIR", "SUMMARY_FILE", "DAILY_FILE", "VACCINATION_FILE", "LISTEN_ADDR",
		"SHUTDOWN_TIMEOUT", "FOCUS_COUNTRY", "TOP_N", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	os.Setenv(key, val)
	defer os.Unsetenv(key)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_ENV_INT"

	tests := []struct {
		name   string
		envVal string
		want   int
	}{
		{"Valid", "15", 15},
		{"Padded", " 7 ", 7},
		{"Invalid", "many", 0},
		{"Empty", "", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvInt(key, 20); got != tt.want {
				t.Errorf("getEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DataDir != defaultDataDir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, defaultDataDir)
	}
	if cfg.FocusCountry != "USA" {
		t.Errorf("FocusCountry = %q, want USA", cfg.FocusCountry)
	}
	if cfg.TopN != 20 {
		t.Errorf("TopN = %d, want 20", cfg.TopN)
	}
	if cfg.SummaryPath() != filepath.Join(defaultDataDir, "summary.csv") {
		t.Errorf("SummaryPath() = %q", cfg.SummaryPath())
	}
}

func TestLoad_DotEnv(t *testing.T) {
	tmpDir := isolateEnv(t)
	os.Unsetenv("DATA_DIR")
	os.Unsetenv("FOCUS_COUNTRY")

	content := "DATA_DIR=/srv/covid\nFOCUS_COUNTRY=Korea\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("DATA_DIR")
		os.Unsetenv("FOCUS_COUNTRY")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DataDir != "/srv/covid" {
		t.Errorf("DataDir = %q, want /srv/covid", cfg.DataDir)
	}
	if cfg.FocusCountry != "Korea" {
		t.Errorf("FocusCountry = %q, want Korea", cfg.FocusCountry)
	}
}

func TestLoad_InvalidTopN(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TOP_N", "-3")

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_CreatesLogDir(t *testing.T) {
	tmpDir := isolateEnv(t)
	logFile := filepath.Join(tmpDir, "logs", "nested", "covidash.log")
	t.Setenv("LOG_FILE", logFile)

	if _, err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(logFile)); os.IsNotExist(err) {
		t.Error("log directory was not created")
	}
}

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
