package config

import (
	"fmt"
	"os"
	"strconv"

	"cvscan/internal/logger"
)

type Config struct {
	// OpenAI Configuration (coach command only)
	OpenAIAPIKey     string
	OpenAIModel      string
	CoachMaxTokens   int
	CoachTemperature float32

	// Google Cloud Configuration (scan command only)
	GoogleCredentials            string
	GoogleApplicationCredentials string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment. Credentials are not
// required here: each command validates the keys it actually needs, so the
// pure-text commands (classify, extract, export) run with no setup at all.
func Load() (*Config, error) {
	config := &Config{
		OpenAIAPIKey:                 getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:                  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		CoachMaxTokens:               getEnvInt("COACH_MAX_TOKENS", 1200),
		CoachTemperature:             getEnvFloat("COACH_TEMPERATURE", 0.2),
		GoogleCredentials:            getEnv("GOOGLE_CREDENTIALS", ""),
		GoogleApplicationCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		LogLevel:                     getEnv("LOG_LEVEL", "info"),
		LogFormat:                    getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:                getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:                    getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.CoachMaxTokens <= 0 {
		return fmt.Errorf("COACH_MAX_TOKENS must be positive")
	}
	if c.CoachTemperature < 0 || c.CoachTemperature > 2 {
		return fmt.Errorf("COACH_TEMPERATURE must be in [0,2]")
	}
	return nil
}

// RequireOpenAI checks the configuration needed by the coach command.
func (c *Config) RequireOpenAI() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

// RequireGoogleCredentials checks the configuration needed by the scan command.
func (c *Config) RequireGoogleCredentials() error {
	if c.GoogleCredentials == "" && c.GoogleApplicationCredentials == "" {
		return fmt.Errorf("set GOOGLE_CREDENTIALS or GOOGLE_APPLICATION_CREDENTIALS")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}
