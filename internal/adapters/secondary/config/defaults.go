package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("PITCHDECK_HOST", "localhost"),
			Port:            getEnvIntOrDefault("PITCHDECK_PORT", 5000),
			ReadTimeout:     getEnvIntOrDefault("PITCHDECK_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("PITCHDECK_WRITE_TIMEOUT", 300),
			ShutdownTimeout: getEnvIntOrDefault("PITCHDECK_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins: getEnvSliceOrDefault("PITCHDECK_CORS_ORIGINS", []string{
				"http://localhost:5000",
				"http://127.0.0.1:5000",
			}),
		},
		OpenAI: entities.OpenAIConfig{
			APIKey:         getEnvOrDefault("PITCHDECK_OPENAI_API_KEY", ""),
			BaseURL:        getEnvOrDefault("PITCHDECK_OPENAI_BASE_URL", ""),
			Model:          getEnvOrDefault("PITCHDECK_OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:      2048,
			Temperature:    0.4,
			ImageSize:      "512x512",
			TimeoutSeconds: 120,
			TestMode:       getEnvBoolOrDefault("PITCHDECK_TEST_MODE", false),
		},
		Converter: entities.ConverterConfig{
			PDFLatexPath:   getEnvOrDefault("PITCHDECK_PDFLATEX", ""),
			PandocPath:     getEnvOrDefault("PITCHDECK_PANDOC", ""),
			TimeoutSeconds: 60,
		},
		Images: entities.ImagesConfig{
			Enabled:     true,
			Concurrency: 2,
			SkipFailed:  false,
		},
		Browser: entities.BrowserConfig{
			AutoOpen: true,
			Browser:  "default",
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("PITCHDECK_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("PITCHDECK_LOG_VERBOSE", false),
		},
	}
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns the environment variable as int or a default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns the environment variable as bool or a default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns the environment variable as a comma-separated
// slice or a default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
