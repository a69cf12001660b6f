// Package config loads the daemon configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vhostd/hostlog/core"
)

// Config is the top-level daemon configuration.
type Config struct {
	// InstanceID identifies this process in every log line. Generated
	// when left empty.
	InstanceID string       `yaml:"instance_id"`
	Logger     LoggerConfig `yaml:"logger"`
	API        APIConfig    `yaml:"api"`
}

// LoggerConfig mirrors the administrative logger options. LogPath may
// be empty: the sink is then configured later through the API.
type LoggerConfig struct {
	LogPath       string `yaml:"log_path"`
	Level         string `yaml:"level"`
	ShowLevel     *bool  `yaml:"show_level"`
	ShowLogOrigin *bool  `yaml:"show_log_origin"`
	// QueueSize enables the async emit queue when positive.
	QueueSize int `yaml:"queue_size"`
}

// APIConfig configures the administrative HTTP endpoint.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Threshold(); err != nil {
		return nil, fmt.Errorf("config logger.level: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Logger: LoggerConfig{Level: "Info"},
		API:    APIConfig{ListenAddr: "127.0.0.1:8645"},
	}
}

// Threshold parses the configured level name.
func (c *Config) Threshold() (core.Severity, error) {
	if c.Logger.Level == "" {
		return core.InfoSeverity, nil
	}
	return core.ParseSeverity(c.Logger.Level)
}

// ShowLevel returns the level toggle, defaulting to true.
func (c *Config) ShowLevel() bool {
	if c.Logger.ShowLevel == nil {
		return true
	}
	return *c.Logger.ShowLevel
}

// ShowLogOrigin returns the origin toggle, defaulting to true.
func (c *Config) ShowLogOrigin() bool {
	if c.Logger.ShowLogOrigin == nil {
		return true
	}
	return *c.Logger.ShowLogOrigin
}
