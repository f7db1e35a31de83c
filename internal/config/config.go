// Package config loads CarbonRoots settings from
// $CARBONROOTS_HOME/config.yaml, environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/internal/logging"
	"github.com/carbonroots/carbonroots/internal/usagelog"
)

// Environment variables that override file settings.
const (
	EnvHome       = "CARBONROOTS_HOME"
	EnvDataset    = "CARBONROOTS_DATASET"
	EnvUsageLog   = "CARBONROOTS_USAGE_LOG"
	EnvLogLevel   = "CARBONROOTS_LOG_LEVEL"
	EnvLogFormat  = "CARBONROOTS_LOG_FORMAT"
	EnvLogLock    = "CARBONROOTS_USAGE_LOG_LOCK"
	configFile    = "config.yaml"
	configDirName = ".carbonroots"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full CarbonRoots configuration.
type Config struct {
	Dataset    DatasetConfig    `yaml:"dataset"`
	UsageLog   UsageLogConfig   `yaml:"usage_log"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`

	// path is the file the config was loaded from, if any.
	path string
}

// DatasetConfig locates the species dataset. An empty Path uses the dataset
// compiled into the binary.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// UsageLogConfig locates the usage log. The extension picks the backend.
type UsageLogConfig struct {
	Path string `yaml:"path"`
	Lock bool   `yaml:"lock"`
}

// CalculatorConfig holds the input defaults of the calculator screen.
type CalculatorConfig struct {
	DefaultTrees    int `yaml:"default_trees"`
	DefaultYears    int `yaml:"default_years"`
	LeaderboardSize int `yaml:"leaderboard_size"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// MetricsConfig configures the prometheus textfile output.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UsageLog: UsageLogConfig{
			Path: usagelog.DefaultPath,
			Lock: true,
		},
		Calculator: CalculatorConfig{
			DefaultTrees:    engine.DefaultTrees,
			DefaultYears:    engine.DefaultYears,
			LeaderboardSize: engine.DefaultLeaderboardSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// New returns the default configuration overlaid with the config file in the
// config directory, if present, and then with environment overrides. A
// broken config file is reported as an error alongside the usable result.
func New() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		// No home directory: defaults and environment only.
		cfg := Default()
		cfg.ApplyEnv()
		return cfg, nil
	}
	return Load(path)
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	var loadErr error
	if _, statErr := os.Stat(path); statErr == nil {
		loadErr = ShallowMergeYAML(cfg, path)
	}

	cfg.ApplyEnv()
	return cfg, loadErr
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// ApplyEnv applies CARBONROOTS_* environment overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataset); v != "" {
		c.Dataset.Path = v
	}
	if v := os.Getenv(EnvUsageLog); v != "" {
		c.UsageLog.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogLock); v != "" {
		if lock, err := strconv.ParseBool(v); err == nil {
			c.UsageLog.Lock = lock
		}
	}
}

// Validate checks the configuration for values the calculator cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Calculator.DefaultTrees < engine.MinTrees {
		errs = append(errs, fmt.Errorf("calculator.default_trees must be at least %d", engine.MinTrees))
	}
	if c.Calculator.DefaultYears < engine.MinYears {
		errs = append(errs, fmt.Errorf("calculator.default_years must be at least %d", engine.MinYears))
	}
	if c.Calculator.LeaderboardSize < 1 {
		errs = append(errs, errors.New("calculator.leaderboard_size must be at least 1"))
	}
	if strings.TrimSpace(c.UsageLog.Path) == "" {
		errs = append(errs, errors.New("usage_log.path must not be empty"))
	}
	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format must be %q or %q", logging.FormatConsole, logging.FormatJSON))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// UsageLogOptions converts the usage_log section for usagelog.Open.
func (c *Config) UsageLogOptions() usagelog.Options {
	return usagelog.Options{Lock: c.UsageLog.Lock}
}

// ToLoggingConfig converts the logging section for logging.NewLogger.
// A configured file sends output there; otherwise stderr is used.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
