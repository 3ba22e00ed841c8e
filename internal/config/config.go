// Package config loads the tool configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/strataworks/erssgen/internal/logger"
	"github.com/strataworks/erssgen/internal/plaxis"
)

// Duration wraps time.Duration so YAML values like "90s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Modeler configures the connection to the external finite-element modeler.
type Modeler struct {
	ExePath        string            `yaml:"exe_path"`
	Host           string            `yaml:"host"`
	Port           int               `yaml:"port"`
	Password       string            `yaml:"password"`
	Generation     plaxis.Generation `yaml:"generation"`
	ConnectTimeout Duration          `yaml:"connect_timeout"`
	PollInterval   Duration          `yaml:"poll_interval"`
	CallTimeout    Duration          `yaml:"call_timeout"`
}

// Config is the root configuration.
type Config struct {
	Modeler Modeler       `yaml:"modeler"`
	Logging logger.Config `yaml:"logging"`
	// OutputDir receives the provenance workbook, report and drawing.
	OutputDir string `yaml:"output_dir"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Modeler: Modeler{
			Host:           "localhost",
			Port:           10000,
			Generation:     plaxis.GenerationV22,
			ConnectTimeout: Duration(60 * time.Second),
			PollInterval:   Duration(500 * time.Millisecond),
			CallTimeout:    Duration(30 * time.Second),
		},
		Logging:   logger.Config{Level: "info", Console: true},
		OutputDir: ".",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Modeler.Port <= 0 || cfg.Modeler.Port > 65535 {
		return cfg, fmt.Errorf("invalid modeler port %d", cfg.Modeler.Port)
	}
	if _, err := plaxis.AdapterFor(cfg.Modeler.Generation); err != nil {
		return cfg, err
	}
	return cfg, nil
}
