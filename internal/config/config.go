package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// Anthropic API (image label detection)
	AnthropicAPIKey string
	AnthropicModel  string

	// Perspective API (content filtering)
	PerspectiveAPIKey string

	// Datamuse (related-word lookup); empty means the public endpoint
	DatamuseURL string

	// Story generation service
	StoryEndpoints   []string // pool of interchangeable generation endpoints
	StoryMaxLength   int      // requested story length in characters, 100-1000
	StoryTemperature float64  // generation volatility, 0-1

	// Prompt synthesis
	ChooseRandomTemplates bool

	// Server
	Port string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:      getEnv("DATABASE_PATH", "data/backstory.db"),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", ""),
		PerspectiveAPIKey: getEnv("PERSPECTIVE_API_KEY", ""),
		DatamuseURL:       getEnv("DATAMUSE_URL", ""),
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if endpoints := getEnv("STORY_ENDPOINTS", ""); endpoints != "" {
		for _, endpoint := range strings.Split(endpoints, ",") {
			endpoint = strings.TrimSpace(endpoint)
			if endpoint != "" {
				cfg.StoryEndpoints = append(cfg.StoryEndpoints, endpoint)
			}
		}
	}

	maxLength, err := strconv.Atoi(getEnv("STORY_MAX_LENGTH", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORY_MAX_LENGTH: %w", err)
	}
	cfg.StoryMaxLength = maxLength

	temperature, err := strconv.ParseFloat(getEnv("STORY_TEMPERATURE", "0.7"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STORY_TEMPERATURE: %w", err)
	}
	cfg.StoryTemperature = temperature

	chooseRandom, err := strconv.ParseBool(getEnv("CHOOSE_RANDOM_TEMPLATES", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHOOSE_RANDOM_TEMPLATES: %w", err)
	}
	cfg.ChooseRandomTemplates = chooseRandom

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForPipeline checks configuration needed to run the backstory
// pipeline end to end.
func (c *Config) ValidateForPipeline() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required for label detection")
	}
	if c.PerspectiveAPIKey == "" {
		return fmt.Errorf("PERSPECTIVE_API_KEY is required for content filtering")
	}
	if len(c.StoryEndpoints) == 0 {
		return fmt.Errorf("STORY_ENDPOINTS is required for story generation")
	}
	if c.StoryMaxLength < 100 || c.StoryMaxLength > 1000 {
		return fmt.Errorf("STORY_MAX_LENGTH must be between 100 and 1000")
	}
	if c.StoryTemperature < 0 || c.StoryTemperature > 1 {
		return fmt.Errorf("STORY_TEMPERATURE must be between 0 and 1")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForPipeline(); err != nil {
		return err
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
