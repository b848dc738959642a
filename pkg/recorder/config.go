// Package recorder wires the interception layer together: it records live
// HTTP traffic to a tape directory or answers requests purely from
// previously recorded transactions.
package recorder

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/httptape/httptape/pkg/headers"
	"github.com/httptape/httptape/pkg/redact"
)

// Mode selects how the transport treats outbound calls.
type Mode string

const (
	// ModeRecord executes real network calls and persists them.
	ModeRecord Mode = "record"
	// ModeReplay answers exclusively from persisted transactions.
	ModeReplay Mode = "replay"
)

// IsValid checks if the mode is valid.
func (m Mode) IsValid() bool {
	switch m {
	case ModeRecord, ModeReplay:
		return true
	default:
		return false
	}
}

// Config is constructed once per process and read-only thereafter.
type Config struct {
	// Path is the tape directory. Required.
	Path string

	// Mode is record or replay. Required.
	Mode Mode

	// ExcludedHeaders are header names dropped from recordings, merged
	// with the built-in security list.
	ExcludedHeaders []string

	// Redactor is applied to both sides of every transaction before
	// persistence. Optional; without it only header exclusion runs.
	Redactor redact.Redactor

	// Headers are dynamically-resolved values merged under request
	// headers on the interception path. Request values win.
	Headers map[string]headers.Source

	// Logger receives non-fatal recording warnings. Defaults to a no-op
	// logger.
	Logger *slog.Logger
}

// Validate checks the required fields.
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.New("recorder: path is required")
	}
	if !c.Mode.IsValid() {
		return fmt.Errorf("recorder: invalid mode %q", c.Mode)
	}
	return nil
}

// fileConfig is the YAML form of Config.
type fileConfig struct {
	Path            string                     `yaml:"path"`
	Mode            string                     `yaml:"mode"`
	ExcludedHeaders []string                   `yaml:"excludedHeaders"`
	Headers         map[string]fileHeaderValue `yaml:"headers"`
}

// fileHeaderValue resolves from an environment variable or a fixed value.
type fileHeaderValue struct {
	Env   string `yaml:"env"`
	Value string `yaml:"value"`
}

// LoadConfig reads a recorder configuration from a YAML file. Header values
// are declared as {env: NAME} or {value: X}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recorder: reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("recorder: parsing config: %w", err)
	}

	cfg := &Config{
		Path:            fc.Path,
		Mode:            Mode(fc.Mode),
		ExcludedHeaders: fc.ExcludedHeaders,
	}
	if len(fc.Headers) > 0 {
		cfg.Headers = make(map[string]headers.Source, len(fc.Headers))
		for name, hv := range fc.Headers {
			switch {
			case hv.Env != "":
				cfg.Headers[name] = headers.Env(hv.Env)
			default:
				cfg.Headers[name] = headers.Static(hv.Value)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
