package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validPipelineConfig returns a config that passes ValidateForPipeline.
func validPipelineConfig() *Config {
	return &Config{
		DatabasePath:      "data/backstory.db",
		AnthropicAPIKey:   "anthropic-key",
		PerspectiveAPIKey: "perspective-key",
		StoryEndpoints:    []string{"http://localhost:5000/generate"},
		StoryMaxLength:    200,
		StoryTemperature:  0.7,
		Port:              "8080",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/backstory.db", cfg.DatabasePath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 200, cfg.StoryMaxLength)
	assert.InDelta(t, 0.7, cfg.StoryTemperature, 1e-9)
	assert.True(t, cfg.ChooseRandomTemplates)
	assert.Empty(t, cfg.StoryEndpoints)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")
	t.Setenv("PERSPECTIVE_API_KEY", "perspective-key")
	t.Setenv("STORY_MAX_LENGTH", "500")
	t.Setenv("STORY_TEMPERATURE", "0.9")
	t.Setenv("CHOOSE_RANDOM_TEMPLATES", "false")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
	assert.Equal(t, "anthropic-key", cfg.AnthropicAPIKey)
	assert.Equal(t, "perspective-key", cfg.PerspectiveAPIKey)
	assert.Equal(t, 500, cfg.StoryMaxLength)
	assert.InDelta(t, 0.9, cfg.StoryTemperature, 1e-9)
	assert.False(t, cfg.ChooseRandomTemplates)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_StoryEndpoints(t *testing.T) {
	t.Setenv("STORY_ENDPOINTS", "http://a/generate, http://b/generate ,,http://c/generate")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://a/generate",
		"http://b/generate",
		"http://c/generate",
	}, cfg.StoryEndpoints)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad max length", func(t *testing.T) {
		t.Setenv("STORY_MAX_LENGTH", "lots")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad temperature", func(t *testing.T) {
		t.Setenv("STORY_TEMPERATURE", "warm")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidateForPipeline(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validPipelineConfig().ValidateForPipeline())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing anthropic key", func(c *Config) { c.AnthropicAPIKey = "" }},
		{"missing perspective key", func(c *Config) { c.PerspectiveAPIKey = "" }},
		{"no endpoints", func(c *Config) { c.StoryEndpoints = nil }},
		{"max length too small", func(c *Config) { c.StoryMaxLength = 99 }},
		{"max length too large", func(c *Config) { c.StoryMaxLength = 1001 }},
		{"temperature out of range", func(c *Config) { c.StoryTemperature = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validPipelineConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.ValidateForPipeline())
		})
	}
}

func TestValidateForServe(t *testing.T) {
	cfg := validPipelineConfig()
	assert.NoError(t, cfg.ValidateForServe())

	cfg.Port = ""
	assert.Error(t, cfg.ValidateForServe())
}
