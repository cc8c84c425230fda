// Package config provides configuration loading for coachd.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the coachd daemon.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	DB         DBConfig         `koanf:"db"`
	Matching   MatchingConfig   `koanf:"matching"`
	Extraction ExtractionConfig `koanf:"extraction"`
	Transcript TranscriptConfig `koanf:"transcript"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DBConfig holds storage settings.
type DBConfig struct {
	Path string `koanf:"path"`
}

// MatchingConfig holds fuzzy name-matching settings.
type MatchingConfig struct {
	// Threshold is the minimum 0-100 confidence for an automatic match.
	Threshold int `koanf:"threshold"`
}

// ExtractionConfig holds extraction oracle settings.
type ExtractionConfig struct {
	// Provider selects the oracle backend: "none", "anthropic" or "openai".
	Provider  string   `koanf:"provider"`
	Model     string   `koanf:"model"`
	APIKey    Secret   `koanf:"api_key"`
	BaseURL   string   `koanf:"base_url"`
	MaxTokens int      `koanf:"max_tokens"`
	Timeout   Duration `koanf:"timeout"`
}

// TranscriptConfig bounds accepted transcript sizes.
type TranscriptConfig struct {
	MinLength int `koanf:"min_length"`
	MaxLength int `koanf:"max_length"`
}

// Default returns a Config with production-ready defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            4000,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		DB: DBConfig{
			Path: "coachd.db",
		},
		Matching: MatchingConfig{
			Threshold: 80,
		},
		Extraction: ExtractionConfig{
			Provider:  "none",
			MaxTokens: 4096,
			Timeout:   Duration(60 * time.Second),
		},
		Transcript: TranscriptConfig{
			MinLength: 50,
			MaxLength: 100000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout.Duration() <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console', got %q", c.Log.Format)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 100 {
		return fmt.Errorf("matching.threshold must be 0-100, got %d", c.Matching.Threshold)
	}
	switch c.Extraction.Provider {
	case "none", "anthropic", "openai":
	default:
		return fmt.Errorf("extraction.provider must be 'none', 'anthropic' or 'openai', got %q", c.Extraction.Provider)
	}
	if c.Extraction.Provider != "none" && !c.Extraction.APIKey.IsSet() {
		return fmt.Errorf("extraction.api_key is required for provider %q", c.Extraction.Provider)
	}
	if c.Transcript.MinLength < 1 {
		return fmt.Errorf("transcript.min_length must be >= 1")
	}
	if c.Transcript.MaxLength <= c.Transcript.MinLength {
		return fmt.Errorf("transcript.max_length must exceed transcript.min_length")
	}
	return nil
}
