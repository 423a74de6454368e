// Package config loads the study configuration: dataset location, the
// three service label definitions with their seeds, split sizes and the
// cross-validation parameters. Values come from an optional YAML file with
// environment-variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dkruze/CS-Capstone-CC/pipelines/Input"
	"github.com/dkruze/CS-Capstone-CC/pipelines/ML"
)

// ServiceConfig defines one modeled service: its synthetic label
// prevalence and the explicit seeds for each random-dependent stage.
type ServiceConfig struct {
	Name          string `yaml:"name"`
	PositiveCount int    `yaml:"positive_count"`
	LabelSeed     int64  `yaml:"label_seed"`
	SplitSeed     int64  `yaml:"split_seed"`
	TrainSeed     int64  `yaml:"train_seed"`
}

// StudyConfig is the complete configuration for one study run.
type StudyConfig struct {
	DataPath     string              `yaml:"data_path"`
	DatabasePath string              `yaml:"database_path"`
	LogLevel     string              `yaml:"log_level"`
	LogFormat    string              `yaml:"log_format"`
	TrainSize    int                 `yaml:"train_size"`
	TestSize     int                 `yaml:"test_size"`
	CV           ml.CVConfig         `yaml:"cv"`
	Services     []ServiceConfig     `yaml:"services"`
	Columns      input.ColumnMapping `yaml:"columns"`
}

// Default returns the production study configuration: 6676 institutions,
// three services, a 5007/1669 resample and a 10-fold x 3-repeat sweep of
// length 10.
func Default() *StudyConfig {
	return &StudyConfig{
		DatabasePath: "adoption_runs.db",
		LogLevel:     "info",
		LogFormat:    "text",
		TrainSize:    5007,
		TestSize:     1669,
		CV: ml.CVConfig{
			Folds:      10,
			Repeats:    3,
			TuneLength: 10,
			Seed:       3333,
		},
		Services: []ServiceConfig{
			{Name: "github", PositiveCount: 555, LabelSeed: 1, SplitSeed: 935, TrainSeed: 3333},
			{Name: "google", PositiveCount: 1042, LabelSeed: 2, SplitSeed: 936, TrainSeed: 3334},
			{Name: "outlook", PositiveCount: 1594, LabelSeed: 3, SplitSeed: 937, TrainSeed: 3335},
		},
		Columns: input.DefaultColumnMapping(),
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, then validates it.
func Load(path string) (*StudyConfig, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *StudyConfig) applyEnv() {
	c.DataPath = getEnv("ADOPTION_DATA", c.DataPath)
	c.DatabasePath = getEnv("ADOPTION_DB", c.DatabasePath)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.TrainSize = getEnvAsInt("ADOPTION_TRAIN_SIZE", c.TrainSize)
	c.TestSize = getEnvAsInt("ADOPTION_TEST_SIZE", c.TestSize)
}

// Validate checks the configuration before the study starts.
func (c *StudyConfig) Validate() error {
	if c.TrainSize < 0 || c.TestSize < 0 {
		return &ml.ConfigurationError{Reason: fmt.Sprintf("negative split sizes %d/%d", c.TrainSize, c.TestSize)}
	}
	if err := c.CV.Validate(); err != nil {
		return err
	}
	if len(c.Services) == 0 {
		return &ml.ConfigurationError{Reason: "no services configured"}
	}
	seen := make(map[string]struct{}, len(c.Services))
	for _, svc := range c.Services {
		if svc.Name == "" {
			return &ml.ConfigurationError{Reason: "service with empty name"}
		}
		if _, dup := seen[svc.Name]; dup {
			return &ml.ConfigurationError{Reason: fmt.Sprintf("duplicate service %q", svc.Name)}
		}
		seen[svc.Name] = struct{}{}
		if svc.PositiveCount < 0 {
			return &ml.ConfigurationError{Reason: fmt.Sprintf("service %q has negative positive count", svc.Name)}
		}
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a
// default value
func getEnvAsInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
