package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-labelsheet/internal/dateutil"
	"github.com/alnah/go-labelsheet/internal/fileutil"
	"github.com/alnah/go-labelsheet/internal/yamlutil"
)

// AppName names the user config directory (~/.config/labelsheet).
const AppName = "labelsheet"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength       = 4096
	MaxDateLength       = 40 // "today:DD MMMM YYYY" or a literal date
	MaxDateFormatLength = 40
	MaxCommandLength    = 256
	MaxSuffixLength     = 200 // one space-separated group
	MaxSuffixGroups     = 8
	MaxPreambleLength   = 64
)

// DefaultTypesetter is the LaTeX engine used when none is configured.
const DefaultTypesetter = "xelatex"

// DefaultTimeout bounds a single typesetting run.
const DefaultTimeout = 2 * time.Minute

// Config holds all configuration for label sheet generation.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Labels     LabelsConfig     `yaml:"labels"`
	Typesetter TypesetterConfig `yaml:"typesetter"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// InputConfig defines where names are read from.
type InputConfig struct {
	File string `yaml:"file"` // Names file used when --input-file is absent
}

// OutputConfig defines where the sheet is written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Directory for .tex/.pdf (empty = next to the name)
}

// LabelsConfig defines label content defaults.
type LabelsConfig struct {
	Date          string   `yaml:"date"`          // today, today:FORMAT, none or literal
	DateFormat    string   `yaml:"dateFormat"`    // re-render literal dates
	Skip          int      `yaml:"skip"`          // labels already used on the first sheet
	MaxNameLength int      `yaml:"maxNameLength"` // warning threshold (0 = default 30)
	Suffixes      []string `yaml:"suffixes"`      // groups, e.g. ["CTRL T1", "R1 R2"]
}

// TypesetterConfig defines the LaTeX engine invocation.
type TypesetterConfig struct {
	Command string `yaml:"command"` // binary name or path (default xelatex)
	Timeout string `yaml:"timeout"` // Go duration, e.g. "90s"
	TeXOnly bool   `yaml:"texOnly"` // write the .tex file only
}

// ViewerConfig defines how the finished PDF is shown.
type ViewerConfig struct {
	Disabled bool `yaml:"disabled"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Preamble string `yaml:"preamble"` // Preamble name without .tex (default l7871)
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for callers that build a
// Config from flags or environment variables.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.file", c.Input.File, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"labels.date", c.Labels.Date, MaxDateLength},
		{"labels.dateFormat", c.Labels.DateFormat, MaxDateFormatLength},
		{"typesetter.command", c.Typesetter.Command, MaxCommandLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.preamble", c.Assets.Preamble, MaxPreambleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Labels.Skip < 0 {
		return fmt.Errorf("%w: labels.skip must be >= 0, got %d", ErrInvalidValue, c.Labels.Skip)
	}
	if c.Labels.MaxNameLength < 0 {
		return fmt.Errorf("%w: labels.maxNameLength must be >= 0, got %d", ErrInvalidValue, c.Labels.MaxNameLength)
	}

	if c.Labels.DateFormat != "" {
		if _, err := dateutil.ParseDateFormat(dateutil.ExpandPreset(c.Labels.DateFormat)); err != nil {
			return fmt.Errorf("%w: labels.dateFormat: %v", ErrInvalidValue, err)
		}
	}

	if len(c.Labels.Suffixes) > MaxSuffixGroups {
		return fmt.Errorf("%w: labels.suffixes has %d groups (max %d)", ErrInvalidValue, len(c.Labels.Suffixes), MaxSuffixGroups)
	}
	for i, group := range c.Labels.Suffixes {
		if err := validateFieldLength(fmt.Sprintf("labels.suffixes[%d]", i), group, MaxSuffixLength); err != nil {
			return err
		}
	}

	if c.Typesetter.Timeout != "" {
		d, err := time.ParseDuration(c.Typesetter.Timeout)
		if err != nil {
			return fmt.Errorf("%w: typesetter.timeout: %v", ErrInvalidValue, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: typesetter.timeout must be positive, got %s", ErrInvalidValue, d)
		}
	}

	return nil
}

// TimeoutOrDefault returns the typesetting timeout. Call after Validate.
func (c *Config) TimeoutOrDefault() time.Duration {
	if c.Typesetter.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Typesetter.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// today's date, no skip, xelatex, PDF opened when done.
func DefaultConfig() *Config {
	return &Config{
		Labels:     LabelsConfig{Date: "today"},
		Typesetter: TypesetterConfig{Command: DefaultTypesetter},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Dump renders cfg as YAML in the same shape LoadConfig reads.
func Dump(cfg *Config) ([]byte, error) {
	return yamlutil.Encode(cfg)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/labelsheet/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
