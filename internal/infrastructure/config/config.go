// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	limit := cfg.Matcher.MaxCharges
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Matcher       MatcherConfig       `yaml:"matcher"`
	Storage       StorageConfig       `yaml:"storage"`
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// MatcherConfig holds search limits for the reconciliation engine
type MatcherConfig struct {
	MaxCharges   int `yaml:"max_charges"`   // 0 = unlimited
	MaxSolutions int `yaml:"max_solutions"` // 0 = all
	Workers      int `yaml:"workers"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath   string `yaml:"database_path"`
	HistoryEnabled bool   `yaml:"history_enabled"`
}

// APIConfig holds HTTP server settings
type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the configuration used for any setting a file leaves out
func Defaults() *Config {
	return &Config{
		Matcher: MatcherConfig{
			MaxCharges:   24,
			MaxSolutions: 0,
			Workers:      runtime.NumCPU(),
		},
		Storage: StorageConfig{
			DatabasePath:   "chargematch.db",
			HistoryEnabled: true,
		},
		API: APIConfig{
			Port:           8085,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${CHARGEMATCH_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	def := Defaults()
	return &Config{
		Matcher: MatcherConfig{
			MaxCharges:   getEnvInt("CHARGEMATCH_MAX_CHARGES", def.Matcher.MaxCharges),
			MaxSolutions: getEnvInt("CHARGEMATCH_MAX_SOLUTIONS", def.Matcher.MaxSolutions),
			Workers:      getEnvInt("CHARGEMATCH_WORKERS", def.Matcher.Workers),
		},
		Storage: StorageConfig{
			DatabasePath:   getEnv("CHARGEMATCH_DB_PATH", def.Storage.DatabasePath),
			HistoryEnabled: getEnv("CHARGEMATCH_HISTORY", "on") != "off",
		},
		API: APIConfig{
			Port:           getEnvInt("CHARGEMATCH_PORT", def.API.Port),
			AllowedOrigins: getEnvList("CHARGEMATCH_ALLOWED_ORIGINS", def.API.AllowedOrigins),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", def.Observability.Logging.Level),
				Format: getEnv("LOG_FORMAT", def.Observability.Logging.Format),
			},
		},
	}
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnv_WithPath("config.yaml")
}

// LoadOrEnv_WithPath tries to load from specified path, falls back to environment variables
func LoadOrEnv_WithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// Validate rejects settings the matcher or server cannot run with
func (c *Config) Validate() error {
	if c.Matcher.MaxCharges < 0 {
		return fmt.Errorf("matcher.max_charges must not be negative, got %d", c.Matcher.MaxCharges)
	}
	if c.Matcher.MaxSolutions < 0 {
		return fmt.Errorf("matcher.max_solutions must not be negative, got %d", c.Matcher.MaxSolutions)
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvList splits a comma separated environment variable
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
