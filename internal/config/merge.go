package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyDataset    = "dataset"
	keyUsageLog   = "usage_log"
	keyCalculator = "calculator"
	keyLogging    = "logging"
	keyMetrics    = "metrics"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the file replaces the whole section in
// target; absent sections are left unchanged. Unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = applySection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// applySection decodes node onto the section's defaults so a file section
// replaces whatever target held, while fields the file omits keep their
// built-in values.
func applySection(target *Config, key string, node *yaml.Node) error {
	defaults := Default()
	switch key {
	case keyDataset:
		v := defaults.Dataset
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Dataset = v
	case keyUsageLog:
		v := defaults.UsageLog
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.UsageLog = v
	case keyCalculator:
		v := defaults.Calculator
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Calculator = v
	case keyLogging:
		v := defaults.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyMetrics:
		v := defaults.Metrics
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Metrics = v
	}
	return nil
}
