package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonroots/carbonroots/internal/config"
)

// newCustomTarget returns a Config with non-default values so tests can
// verify that absent overlay keys leave them intact.
func newCustomTarget() *config.Config {
	cfg := config.Default()
	cfg.Dataset.Path = "/data/species.xlsx"
	cfg.UsageLog.Path = "/var/lib/carbonroots/log.db"
	cfg.Calculator.DefaultTrees = 500
	cfg.Logging.Level = "debug"
	cfg.Metrics.Textfile = "/var/lib/node_exporter/carbonroots.prom"
	return cfg
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleSection(t *testing.T) {
	target := newCustomTarget()
	overlay := writeOverlay(t, `
dataset:
  path: ./species.csv
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "./species.csv", target.Dataset.Path)
	assert.Equal(t, "/var/lib/carbonroots/log.db", target.UsageLog.Path)
	assert.Equal(t, 500, target.Calculator.DefaultTrees)
	assert.Equal(t, "debug", target.Logging.Level)
}

func TestShallowMergeYAML_SectionReplacedOverDefaults(t *testing.T) {
	target := newCustomTarget()
	overlay := writeOverlay(t, `
calculator:
  default_years: 25
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 25, target.Calculator.DefaultYears)
	assert.Equal(t, 100, target.Calculator.DefaultTrees, "custom value replaced by section default")
	assert.Equal(t, 10, target.Calculator.LeaderboardSize)
}

func TestShallowMergeYAML_UsageLogLockDefaultsOn(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
usage_log:
  path: shared.xlsx
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "shared.xlsx", target.UsageLog.Path)
	assert.True(t, target.UsageLog.Lock)
}

func TestShallowMergeYAML_EmptyAndUnknown(t *testing.T) {
	for name, content := range map[string]string{
		"empty":        "",
		"comment only": "# nothing here\n",
		"unknown key":  "plugins:\n  aws: {}\n",
	} {
		t.Run(name, func(t *testing.T) {
			target := newCustomTarget()
			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
			assert.Equal(t, newCustomTarget(), target)
		})
	}
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(nil, "x.yaml"))
	})
	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "reading overlay file")
	})
	t.Run("malformed yaml", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.Default(), writeOverlay(t, "dataset: [unterminated"))
		require.ErrorContains(t, err, "parsing overlay YAML")
	})
	t.Run("wrong section type", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.Default(), writeOverlay(t, "calculator:\n  default_trees: many\n"))
		require.ErrorContains(t, err, `applying overlay section "calculator"`)
	})
}
