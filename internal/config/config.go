// Package config loads the optional flownote.yaml (or .json) workspace
// configuration. A missing file yields defaults, never an error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store backend names accepted in the config file.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// RedisConfig holds connection settings for the redis-backed store.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	// TTL is the document lifetime in seconds; zero means no expiry.
	TTL int `yaml:"ttl" json:"ttl"`
}

// Config represents the structure of flownote.yaml.
type Config struct {
	// Root is the workspace directory new notebooks are created under.
	Root  string      `yaml:"root" json:"root"`
	Store string      `yaml:"store" json:"store"`
	Redis RedisConfig `yaml:"redis" json:"redis"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`
	// Renderers overrides the rank of a registered MIME type; lower wins.
	Renderers map[string]int `yaml:"renderers" json:"renderers"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Root:     ".",
		Store:    StoreFile,
		LogLevel: "info",
		Redis:    RedisConfig{Addr: "localhost:6379"},
	}
}

// Load reads a configuration file (YAML or JSON). A missing file is not an
// error: defaults are returned so the CLI works in an unconfigured workspace.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store {
	case StoreFile, StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
