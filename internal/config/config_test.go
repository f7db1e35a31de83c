package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonroots/carbonroots/internal/config"
	"github.com/carbonroots/carbonroots/internal/logging"
	"github.com/carbonroots/carbonroots/internal/usagelog"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, key := range []string{
		config.EnvDataset, config.EnvUsageLog, config.EnvLogLevel,
		config.EnvLogFormat, config.EnvLogLock,
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Empty(t, cfg.Dataset.Path)
	assert.Equal(t, usagelog.DefaultPath, cfg.UsageLog.Path)
	assert.True(t, cfg.UsageLog.Lock)
	assert.Equal(t, 100, cfg.Calculator.DefaultTrees)
	assert.Equal(t, 10, cfg.Calculator.DefaultYears)
	assert.Equal(t, 10, cfg.Calculator.LeaderboardSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, logging.FormatConsole, cfg.Logging.Format)
	require.NoError(t, cfg.Validate())
}

func TestNew_NoFile(t *testing.T) {
	home := isolateEnv(t)

	cfg, err := config.New()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.Path())
	assert.Equal(t, usagelog.DefaultPath, cfg.UsageLog.Path)
}

func TestSaveAndLoad(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.Dataset.Path = "dataset.xlsx"
	cfg.UsageLog.Path = "CarbonRoots_User_Data.xlsx"
	cfg.UsageLog.Lock = false
	cfg.Metrics.Textfile = "carbonroots.prom"
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dataset.xlsx", loaded.Dataset.Path)
	assert.Equal(t, "CarbonRoots_User_Data.xlsx", loaded.UsageLog.Path)
	assert.False(t, loaded.UsageLog.Lock)
	assert.Equal(t, "carbonroots.prom", loaded.Metrics.Textfile)
	assert.Equal(t, path, loaded.Path())
}

func TestLoad_BrokenFileStillReturnsDefaults(t *testing.T) {
	isolateEnv(t)
	path := writeOverlay(t, "logging: [oops")

	cfg, err := config.Load(path)
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvDataset, "/srv/species.csv")
	t.Setenv(config.EnvUsageLog, "/srv/log.sqlite")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvLogFormat, "json")
	t.Setenv(config.EnvLogLock, "false")

	cfg, err := config.Load(writeOverlay(t, "dataset:\n  path: file.csv\n"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/species.csv", cfg.Dataset.Path, "env beats file")
	assert.Equal(t, "/srv/log.sqlite", cfg.UsageLog.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.UsageLogOptions().Lock)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"zero trees", func(c *config.Config) { c.Calculator.DefaultTrees = 0 }, "default_trees"},
		{"negative years", func(c *config.Config) { c.Calculator.DefaultYears = -1 }, "default_years"},
		{"no leaderboard", func(c *config.Config) { c.Calculator.LeaderboardSize = 0 }, "leaderboard_size"},
		{"blank log path", func(c *config.Config) { c.UsageLog.Path = "  " }, "usage_log.path"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestToLoggingConfig(t *testing.T) {
	stderr := config.LoggingConfig{Level: "warn", Format: "json"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, stderr.Output)
	assert.Equal(t, "warn", stderr.Level)

	file := config.LoggingConfig{Level: "info", File: "/tmp/cr.log"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, file.Output)
	assert.Equal(t, "/tmp/cr.log", file.File)
}

func TestGetConfigDir(t *testing.T) {
	home := isolateEnv(t)
	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	require.NoError(t, config.EnsureConfigDir())
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(home, "logs", "carbonroots.log")
	require.NoError(t, config.EnsureLogDir(cfg))
	assert.DirExists(t, filepath.Join(home, "logs"))
}
