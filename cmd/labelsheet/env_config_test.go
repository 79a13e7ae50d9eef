package main

// Notes:
// - Every test here sets process environment variables with t.Setenv and
//   therefore cannot run in parallel.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-labelsheet/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("LABELSHEET_CONFIG", "lab")
	t.Setenv("LABELSHEET_INPUT_FILE", "names.csv")
	t.Setenv("LABELSHEET_OUTPUT_DIR", "/out")
	t.Setenv("LABELSHEET_DATE", "none")
	t.Setenv("LABELSHEET_DATE_FORMAT", "long")
	t.Setenv("LABELSHEET_SKIP", "4")
	t.Setenv("LABELSHEET_TYPESETTER", "lualatex")
	t.Setenv("LABELSHEET_TIMEOUT", "90s")
	t.Setenv("LABELSHEET_NO_OPEN", "true")
	t.Setenv("LABELSHEET_ASSET_PATH", "/assets")
	t.Setenv("LABELSHEET_PREAMBLE", "custom")

	want := &envConfig{
		ConfigPath: "lab",
		InputFile:  "names.csv",
		OutputDir:  "/out",
		Date:       "none",
		DateFormat: "long",
		Skip:       4,
		HasSkip:    true,
		Typesetter: "lualatex",
		Timeout:    90 * time.Second,
		NoOpen:     true,
		AssetPath:  "/assets",
		Preamble:   "custom",
	}
	if diff := cmp.Diff(want, loadEnvConfig()); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvConfig_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("LABELSHEET_SKIP", "-3")
	t.Setenv("LABELSHEET_TIMEOUT", "forever")
	t.Setenv("LABELSHEET_NO_OPEN", "sometimes")

	got := loadEnvConfig()
	if got.HasSkip || got.Timeout != 0 || got.NoOpen {
		t.Errorf("loadEnvConfig() = %+v, want malformed values ignored", got)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Labels.Date = "from-file"
	cfg.Labels.Skip = 2
	cfg.Typesetter.Command = "pdflatex"

	applyEnvConfig(&envConfig{Date: "from-env", Timeout: 90 * time.Second, NoOpen: true}, cfg)

	if cfg.Labels.Date != "from-env" {
		t.Errorf("Date = %q, want env value", cfg.Labels.Date)
	}
	if cfg.Labels.Skip != 2 || cfg.Typesetter.Command != "pdflatex" {
		t.Errorf("unset env values changed config: %+v", cfg)
	}
	if cfg.Typesetter.Timeout != "1m30s" || !cfg.Viewer.Disabled {
		t.Errorf("Typesetter = %+v, Viewer = %+v", cfg.Typesetter, cfg.Viewer)
	}

	applyEnvConfig(&envConfig{Skip: 0, HasSkip: true}, cfg)
	if cfg.Labels.Skip != 0 {
		t.Errorf("LABELSHEET_SKIP=0 should override, got %d", cfg.Labels.Skip)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("LABELSHEET_SKP", "1")
	t.Setenv("LABELSHEET_DATE", "none")
	t.Setenv("LABELSHEET_AAA", "x")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	want := "warning: unknown environment variable LABELSHEET_AAA (typo?)\n" +
		"warning: unknown environment variable LABELSHEET_SKP (typo?)\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("warnUnknownEnvVars() = %q, want %q", buf.String(), want)
	}
	if strings.Contains(buf.String(), "LABELSHEET_DATE") {
		t.Error("known variable reported as unknown")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "LABELSHEET_DATE=from-dotenv\nLABELSHEET_SKIP=7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Already set variables win over the file.
	t.Setenv("LABELSHEET_SKIP", "1")
	t.Setenv("LABELSHEET_DATE", "")
	os.Unsetenv("LABELSHEET_DATE")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() error: %v", err)
	}
	if got := os.Getenv("LABELSHEET_DATE"); got != "from-dotenv" {
		t.Errorf("LABELSHEET_DATE = %q, want from-dotenv", got)
	}
	if got := os.Getenv("LABELSHEET_SKIP"); got != "1" {
		t.Errorf("LABELSHEET_SKIP = %q, want 1", got)
	}

	if err := loadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("loadDotEnv(missing) error: %v, want nil", err)
	}
}
