package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ChuLiYu/attgen/internal/export"
	"github.com/ChuLiYu/attgen/internal/generator"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTimestamp timestamp in a flag or config file could not be parsed
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// timestampLayouts accepted input forms, all read as UTC unless an offset is
// given
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// Config represents the config file structure
// Maps config file fields through YAML tags
type Config struct {
	Output string `yaml:"output"`

	Window struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"window"`

	Seed        uint64 `yaml:"seed"`
	MetricsFile string `yaml:"metrics_file"`
}

// defaultConfig values used when neither the config file nor flags set them
func defaultConfig() *Config {
	cfg := &Config{Output: export.DefaultPath}
	cfg.Window.Start = generator.DefaultStart.Format(timestampLayouts[0])
	cfg.Window.End = generator.DefaultEnd.Format(timestampLayouts[0])
	return cfg
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// parseTimestamp parses s in one of timestampLayouts, defaulting to UTC
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// window converts the configured window into instants
func (c *Config) window() (start, end time.Time, err error) {
	start, err = parseTimestamp(c.Window.Start)
	if err != nil {
		return start, end, fmt.Errorf("window start: %w", err)
	}
	end, err = parseTimestamp(c.Window.End)
	if err != nil {
		return start, end, fmt.Errorf("window end: %w", err)
	}
	return start, end, nil
}
