package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-labelsheet/internal/config"
)

// envPrefix marks the environment variables labelsheet reads.
const envPrefix = "LABELSHEET_"

// dotEnvFile is loaded from the working directory before anything else.
const dotEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	// Files
	ConfigPath string // LABELSHEET_CONFIG: config name or path
	InputFile  string // LABELSHEET_INPUT_FILE: names file
	OutputDir  string // LABELSHEET_OUTPUT_DIR: directory for .tex/.pdf

	// Labels
	Date       string // LABELSHEET_DATE: today, today:FORMAT, none or literal
	DateFormat string // LABELSHEET_DATE_FORMAT: re-render literal dates
	Skip       int    // LABELSHEET_SKIP: labels already used
	HasSkip    bool

	// Typesetting
	Typesetter string        // LABELSHEET_TYPESETTER: LaTeX engine
	Timeout    time.Duration // LABELSHEET_TIMEOUT: typesetting timeout
	NoOpen     bool          // LABELSHEET_NO_OPEN: do not open the PDF
	AssetPath  string        // LABELSHEET_ASSET_PATH: custom preamble directory
	Preamble   string        // LABELSHEET_PREAMBLE: preamble name
}

// knownEnvVars lists valid LABELSHEET_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"LABELSHEET_CONFIG":      true,
	"LABELSHEET_INPUT_FILE":  true,
	"LABELSHEET_OUTPUT_DIR":  true,
	"LABELSHEET_DATE":        true,
	"LABELSHEET_DATE_FORMAT": true,
	"LABELSHEET_SKIP":        true,
	"LABELSHEET_TYPESETTER":  true,
	"LABELSHEET_TIMEOUT":     true,
	"LABELSHEET_NO_OPEN":     true,
	"LABELSHEET_ASSET_PATH":  true,
	"LABELSHEET_PREAMBLE":    true,
	"LABELSHEET_CONTAINER":   true, // read by doctor
}

// loadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers, durations and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("LABELSHEET_CONFIG"),
		InputFile:  os.Getenv("LABELSHEET_INPUT_FILE"),
		OutputDir:  os.Getenv("LABELSHEET_OUTPUT_DIR"),
		Date:       os.Getenv("LABELSHEET_DATE"),
		DateFormat: os.Getenv("LABELSHEET_DATE_FORMAT"),
		Typesetter: os.Getenv("LABELSHEET_TYPESETTER"),
		AssetPath:  os.Getenv("LABELSHEET_ASSET_PATH"),
		Preamble:   os.Getenv("LABELSHEET_PREAMBLE"),
	}

	if skip := os.Getenv("LABELSHEET_SKIP"); skip != "" {
		if n, err := strconv.Atoi(skip); err == nil && n >= 0 {
			cfg.Skip = n
			cfg.HasSkip = true
		}
	}

	if timeout := os.Getenv("LABELSHEET_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if noOpen := os.Getenv("LABELSHEET_NO_OPEN"); noOpen != "" {
		if b, err := strconv.ParseBool(noOpen); err == nil {
			cfg.NoOpen = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized LABELSHEET_* variables.
// Helps catch typos like LABELSHEET_SKP instead of LABELSHEET_SKIP.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				unknown = append(unknown, name)
			}
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; flags are applied later by
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputFile != "" {
		cfg.Input.File = env.InputFile
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}

	if env.Date != "" {
		cfg.Labels.Date = env.Date
	}
	if env.DateFormat != "" {
		cfg.Labels.DateFormat = env.DateFormat
	}
	if env.HasSkip {
		cfg.Labels.Skip = env.Skip
	}

	if env.Typesetter != "" {
		cfg.Typesetter.Command = env.Typesetter
	}
	if env.Timeout > 0 {
		cfg.Typesetter.Timeout = env.Timeout.String()
	}
	if env.NoOpen {
		cfg.Viewer.Disabled = true
	}

	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Preamble != "" {
		cfg.Assets.Preamble = env.Preamble
	}
}
