package config

import (
	"os"
	"strconv"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// Merger implements the ConfigMerger interface
type Merger struct{}

// NewMerger creates a new configuration merger
func NewMerger() *Merger {
	return &Merger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *Merger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *Merger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if testMode, ok := flags["test-mode"].(bool); ok && testMode {
		result.OpenAI.TestMode = true
	}

	if noImages, ok := flags["no-images"].(bool); ok && noImages {
		result.Images.Enabled = false
	}

	if noBrowser, ok := flags["no-browser"].(bool); ok {
		result.Browser.AutoOpen = !noBrowser
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration.
// The API key in particular is commonly supplied this way so it stays out
// of config files.
func (m *Merger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if host := os.Getenv("PITCHDECK_HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv("PITCHDECK_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	if key := os.Getenv("PITCHDECK_OPENAI_API_KEY"); key != "" {
		result.OpenAI.APIKey = key
	}

	if baseURL := os.Getenv("PITCHDECK_OPENAI_BASE_URL"); baseURL != "" {
		result.OpenAI.BaseURL = baseURL
	}

	if model := os.Getenv("PITCHDECK_OPENAI_MODEL"); model != "" {
		result.OpenAI.Model = model
	}

	if testModeStr := os.Getenv("PITCHDECK_TEST_MODE"); testModeStr != "" {
		if testMode, err := strconv.ParseBool(testModeStr); err == nil {
			result.OpenAI.TestMode = testMode
		}
	}

	if level := os.Getenv("PITCHDECK_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	return result
}

// mergeInto merges the override config into the base, field by field.
// Zero values in the override leave the base untouched, so partial local
// configs only change what they mention.
func (m *Merger) mergeInto(base, override *entities.Config) {
	if override.Server.Host != "" {
		base.Server.Host = override.Server.Host
	}
	if override.Server.Port > 0 {
		base.Server.Port = override.Server.Port
	}
	if override.Server.ReadTimeout > 0 {
		base.Server.ReadTimeout = override.Server.ReadTimeout
	}
	if override.Server.WriteTimeout > 0 {
		base.Server.WriteTimeout = override.Server.WriteTimeout
	}
	if override.Server.ShutdownTimeout > 0 {
		base.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}
	if len(override.Server.CORSOrigins) > 0 {
		base.Server.CORSOrigins = append([]string{}, override.Server.CORSOrigins...)
	}

	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.BaseURL != "" {
		base.OpenAI.BaseURL = override.OpenAI.BaseURL
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.MaxTokens > 0 {
		base.OpenAI.MaxTokens = override.OpenAI.MaxTokens
	}
	if override.OpenAI.Temperature > 0 {
		base.OpenAI.Temperature = override.OpenAI.Temperature
	}
	if override.OpenAI.ImageSize != "" {
		base.OpenAI.ImageSize = override.OpenAI.ImageSize
	}
	if override.OpenAI.TimeoutSeconds > 0 {
		base.OpenAI.TimeoutSeconds = override.OpenAI.TimeoutSeconds
	}
	// Boolean fields always merge: TOML cannot distinguish an explicit
	// false from unset, so the later config wins for them.
	base.OpenAI.TestMode = override.OpenAI.TestMode

	if override.Converter.PDFLatexPath != "" {
		base.Converter.PDFLatexPath = override.Converter.PDFLatexPath
	}
	if override.Converter.PandocPath != "" {
		base.Converter.PandocPath = override.Converter.PandocPath
	}
	if override.Converter.TimeoutSeconds > 0 {
		base.Converter.TimeoutSeconds = override.Converter.TimeoutSeconds
	}

	base.Images.Enabled = override.Images.Enabled
	if override.Images.Concurrency > 0 {
		base.Images.Concurrency = override.Images.Concurrency
	}
	base.Images.SkipFailed = override.Images.SkipFailed

	if override.Browser.Browser != "" {
		base.Browser.Browser = override.Browser.Browser
	}
	base.Browser.AutoOpen = override.Browser.AutoOpen

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	base.Logging.Verbose = override.Logging.Verbose
}

// deepCopy produces an independent copy of a configuration
func deepCopy(config *entities.Config) *entities.Config {
	if config == nil {
		return GetDefaultConfig()
	}

	result := *config
	result.Server.CORSOrigins = append([]string{}, config.Server.CORSOrigins...)
	return &result
}

// Ensure Merger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*Merger)(nil)
