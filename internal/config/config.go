package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a label tally run.
type Config struct {
	Roots        []string `yaml:"roots"`
	Limit        int      `yaml:"limit"`
	Passes       int      `yaml:"passes"`
	BatchSize    int      `yaml:"batch_size"`
	NumWorkers   int      `yaml:"num_workers"`
	CountWorkers int      `yaml:"count_workers"`
	Seed         int64    `yaml:"seed"`
	LogEvery     int      `yaml:"log_every"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
	MetricsFile  string   `yaml:"metrics_file"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Roots        []string
	Limit        int
	Passes       int
	BatchSize    int
	NumWorkers   int
	CountWorkers int
	Seed         int64
	LogEvery     int
	MetricsFile  string
}

// Load reads a Config from YAML. It does not validate or fill defaults;
// call Validate after ApplyOverrides so flags take part in defaulting.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML from r. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if len(o.Roots) > 0 {
		c.Roots = append([]string(nil), o.Roots...)
	}
	if o.Limit > 0 {
		c.Limit = o.Limit
	}
	if o.Passes > 0 {
		c.Passes = o.Passes
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.NumWorkers > 0 {
		c.NumWorkers = o.NumWorkers
	}
	if o.CountWorkers > 0 {
		c.CountWorkers = o.CountWorkers
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.MetricsFile != "" {
		c.MetricsFile = o.MetricsFile
	}
}

// Validate verifies the config is runnable and fills defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Roots) == 0 {
		return errors.New("at least one dataset root must be set")
	}
	for i, root := range c.Roots {
		if strings.TrimSpace(root) == "" {
			return fmt.Errorf("roots[%d] is empty", i)
		}
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0 (got %d)", c.Limit)
	}
	if c.Passes < 0 {
		return fmt.Errorf("passes must be >= 0 (got %d)", c.Passes)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("num_workers must be > 0 (got %d)", c.NumWorkers)
	}
	if c.CountWorkers < 0 {
		return fmt.Errorf("count_workers must be > 0 (got %d)", c.CountWorkers)
	}
	if c.Passes == 0 && c.Limit == 0 {
		c.Passes = 1
	}
	if c.BatchSize == 0 {
		c.BatchSize = 64
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = 1
	}
	if c.CountWorkers == 0 {
		c.CountWorkers = 1
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json (got %q)", c.LogFormat)
	}
	return nil
}
