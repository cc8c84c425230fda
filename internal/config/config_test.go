package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 80, cfg.Matching.Threshold)
	assert.Equal(t, "none", cfg.Extraction.Provider)
	assert.Equal(t, 50, cfg.Transcript.MinLength)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty db path", func(c *Config) { c.DB.Path = "" }},
		{"threshold out of range", func(c *Config) { c.Matching.Threshold = 101 }},
		{"unknown provider", func(c *Config) { c.Extraction.Provider = "gemini" }},
		{"provider without key", func(c *Config) { c.Extraction.Provider = "anthropic" }},
		{"inverted transcript bounds", func(c *Config) { c.Transcript.MaxLength = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9999
db:
  path: /tmp/coach-test.db
matching:
  threshold: 70
extraction:
  provider: anthropic
  api_key: yaml-secret
  timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("COACHD_SERVER_PORT", "4001")
	t.Setenv("COACHD_EXTRACTION_API_KEY", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	// Env wins over file; file wins over defaults.
	assert.Equal(t, 4001, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Extraction.APIKey.Value())
	assert.Equal(t, 70, cfg.Matching.Threshold)
	assert.Equal(t, "/tmp/coach-test.db", cfg.DB.Path)
	assert.Equal(t, 30*time.Second, cfg.Extraction.Timeout.Duration())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("sk-very-secret")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "sk-very-secret", s.Value())
	b, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(b), "very-secret")
}
