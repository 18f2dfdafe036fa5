// Package config loads the settings shared by every branchcut command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Search SearchConfig `yaml:"search"`
}

type LogConfig struct {
	// Level is any level understood by logrus.ParseLevel.
	Level string `yaml:"level"`
	// Format is either "text" or "json".
	Format string `yaml:"format"`
}

type SearchConfig struct {
	// Limit is the maximum number of results to print, 0 for all.
	Limit int `yaml:"limit"`
	// StepLimit bounds the work of a single pull, 0 for unbounded.
	StepLimit int `yaml:"stepLimit"`
	// Timeout bounds a whole run, 0 for none.
	Timeout time.Duration `yaml:"timeout"`
	// Trace logs every push and pop of the search.
	Trace           bool `yaml:"trace"`
	UndoAppliedOnly bool `yaml:"undoAppliedOnly"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file (%s): %w", path, err)
	}
	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("error parsing config file (%s): %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format (%s): want text or json", c.Log.Format)
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("search limit must not be negative, got %d", c.Search.Limit)
	}
	if c.Search.StepLimit < 0 {
		return fmt.Errorf("search step limit must not be negative, got %d", c.Search.StepLimit)
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("search timeout must not be negative, got %s", c.Search.Timeout)
	}
	return nil
}

// Logger returns a logger writing to w with the configured level and
// format. The configuration must be valid.
func (c Config) Logger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if level, err := logrus.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
