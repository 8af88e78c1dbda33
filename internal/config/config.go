package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name used under the user config directory.
const AppDir = "mdpdf"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxCommandLength  = 512
	MaxDurationLength = 20 // "1m30s", "500ms"
)

// Export strategy names.
const (
	StrategyIsolatedPrint  = "isolated-print"
	StrategyDirectDownload = "direct-download"
	StrategyInPagePrint    = "in-page-print"
)

// Storage driver names.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.0
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// DefaultTimeout bounds a single PDF generation or print job.
const DefaultTimeout = 30 * time.Second

// Config holds all runtime configuration.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Print   PrintConfig   `yaml:"print"`
	PDF     PDFConfig     `yaml:"pdf"`
	Storage StorageConfig `yaml:"storage"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// ExportConfig selects how documents leave the editor.
type ExportConfig struct {
	Strategy  string `yaml:"strategy"`  // isolated-print, direct-download, in-page-print
	OutputDir string `yaml:"outputDir"` // PDF destination (empty = current directory)
}

// PrintConfig defines the platform print boundary.
type PrintConfig struct {
	Command     string `yaml:"command"`     // spool command, e.g. "lp" (empty with spoolDir set = write files)
	SpoolDir    string `yaml:"spoolDir"`    // directory receiving print jobs when no command is set
	SettleDelay string `yaml:"settleDelay"` // empty = strategy default
}

// PDFConfig defines the direct download profile.
type PDFConfig struct {
	Margin  float64 `yaml:"margin"`  // inches, all four sides
	Timeout string  `yaml:"timeout"` // e.g. "30s"
}

// StorageConfig defines where theme and content are persisted.
type StorageConfig struct {
	Driver string `yaml:"driver"` // file, sqlite, memory
	Path   string `yaml:"path"`   // empty = default location for the driver
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// SettleDelayDuration parses print.settleDelay. Zero means "use the
// strategy default".
func (p PrintConfig) SettleDelayDuration() (time.Duration, error) {
	return parseDuration("print.settleDelay", p.SettleDelay)
}

// TimeoutDuration parses pdf.timeout, falling back to DefaultTimeout.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	d, err := parseDuration("pdf.timeout", p.Timeout)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return DefaultTimeout, nil
	}
	return d, nil
}

// Validate checks every field. Called automatically by LoadConfig, but
// available for configurations assembled from flags and environment.
func (c *Config) Validate() error {
	switch c.Export.Strategy {
	case "", StrategyIsolatedPrint, StrategyDirectDownload, StrategyInPagePrint:
	default:
		return fmt.Errorf("%w: export.strategy %q (must be %s, %s or %s)", ErrInvalidValue,
			c.Export.Strategy, StrategyIsolatedPrint, StrategyDirectDownload, StrategyInPagePrint)
	}

	switch c.Storage.Driver {
	case "", DriverFile, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver %q (must be %s, %s or %s)", ErrInvalidValue,
			c.Storage.Driver, DriverFile, DriverSQLite, DriverMemory)
	}

	if c.PDF.Margin < MinMargin || c.PDF.Margin > MaxMargin {
		return fmt.Errorf("%w: pdf.margin %.2f (must be between %.2f and %.2f)", ErrInvalidValue, c.PDF.Margin, MinMargin, MaxMargin)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"export.outputDir", c.Export.OutputDir, MaxPathLength},
		{"print.command", c.Print.Command, MaxCommandLength},
		{"print.spoolDir", c.Print.SpoolDir, MaxPathLength},
		{"print.settleDelay", c.Print.SettleDelay, MaxDurationLength},
		{"pdf.timeout", c.PDF.Timeout, MaxDurationLength},
		{"storage.path", c.Storage.Path, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if _, err := c.Print.SettleDelayDuration(); err != nil {
		return err
	}
	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, field, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Export:  ExportConfig{Strategy: StrategyIsolatedPrint},
		Print:   PrintConfig{Command: "lp"},
		PDF:     PDFConfig{Margin: DefaultMargin, Timeout: DefaultTimeout.String()},
		Storage: StorageConfig{Driver: DriverFile},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
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
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UserDir returns the per-user directory holding config and state,
// typically ~/.config/mdpdf.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDir), nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions .yaml then .yml, in the current directory and then UserDir.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userDir, err := UserDir(); err == nil {
		dirs = append(dirs, userDir)
	}

	tried := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, name+ext)
			if fileutil.FileExists(candidate) {
				return candidate, nil
			}
			tried = append(tried, candidate)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
