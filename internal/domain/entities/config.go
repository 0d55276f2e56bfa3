package entities

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	OpenAI    OpenAIConfig    `toml:"openai"`
	Converter ConverterConfig `toml:"converter"`
	Images    ImagesConfig    `toml:"images"`
	Browser   BrowserConfig   `toml:"browser"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.OpenAI.Validate(); err != nil {
		return fmt.Errorf("openai config: %w", err)
	}

	if err := c.Converter.Validate(); err != nil {
		return fmt.Errorf("converter config: %w", err)
	}

	if err := c.Images.Validate(); err != nil {
		return fmt.Errorf("images config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	return nil
}

// GetCORSOrigins returns the configured CORS origins with a localhost default
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	return s.CORSOrigins
}

// OpenAIConfig contains generation-service configuration. It is read once at
// startup and passed by value to the clients; nothing mutates it afterwards.
type OpenAIConfig struct {
	APIKey string `toml:"api_key"`

	// BaseURL overrides the API endpoint, for OpenAI-compatible services
	BaseURL string `toml:"base_url"`

	// Model is the completion model identifier
	Model string `toml:"model"`

	// MaxTokens bounds the completion length
	MaxTokens int `toml:"max_tokens"`

	// Temperature controls sampling randomness (0 = deterministic)
	Temperature float64 `toml:"temperature"`

	// ImageSize is the requested square image resolution, e.g. "512x512"
	ImageSize string `toml:"image_size"`

	// TimeoutSeconds bounds each outbound API call
	TimeoutSeconds int `toml:"timeout_seconds"`

	// TestMode bypasses the network and serves canned fixture data
	TestMode bool `toml:"test_mode"`
}

// Validate validates the generation-service configuration
func (o OpenAIConfig) Validate() error {
	if !o.TestMode && o.APIKey == "" {
		return errors.New("api_key is required unless test_mode is enabled")
	}

	if o.MaxTokens < 0 {
		return errors.New("max_tokens must be non-negative")
	}

	if o.Temperature < 0 || o.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}

	return nil
}

// GetModel returns the completion model with default
func (o OpenAIConfig) GetModel() string {
	if o.Model == "" {
		return "gpt-4o-mini"
	}
	return o.Model
}

// GetMaxTokens returns the completion length bound with default
func (o OpenAIConfig) GetMaxTokens() int {
	if o.MaxTokens <= 0 {
		return 2048
	}
	return o.MaxTokens
}

// GetImageSize returns the image resolution with default
func (o OpenAIConfig) GetImageSize() string {
	if o.ImageSize == "" {
		return "512x512"
	}
	return o.ImageSize
}

// GetTimeout returns the per-call timeout with default
func (o OpenAIConfig) GetTimeout() time.Duration {
	if o.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// ConverterConfig contains external format-converter configuration
type ConverterConfig struct {
	// PDFLatexPath is the pdflatex executable (PATH lookup when empty)
	PDFLatexPath string `toml:"pdflatex_path"`

	// PandocPath is the pandoc executable (PATH lookup when empty)
	PandocPath string `toml:"pandoc_path"`

	// TimeoutSeconds bounds each converter invocation
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Validate validates converter configuration
func (c ConverterConfig) Validate() error {
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout must be non-negative")
	}
	return nil
}

// GetTimeout returns the converter timeout with default
func (c ConverterConfig) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ImagesConfig controls the slide image augmentation step
type ImagesConfig struct {
	// Enabled toggles image augmentation entirely
	Enabled bool `toml:"enabled"`

	// Concurrency bounds the number of in-flight image fetches
	Concurrency int `toml:"concurrency"`

	// SkipFailed continues past per-slide image failures instead of
	// aborting the whole request
	SkipFailed bool `toml:"skip_failed"`
}

// Validate validates image augmentation configuration
func (i ImagesConfig) Validate() error {
	if i.Concurrency < 0 {
		return errors.New("concurrency must be non-negative")
	}
	return nil
}

// GetConcurrency returns the fetch concurrency bound with default
func (i ImagesConfig) GetConcurrency() int {
	if i.Concurrency <= 0 {
		return 2
	}
	return i.Concurrency
}

// BrowserConfig contains browser launch configuration
type BrowserConfig struct {
	// AutoOpen opens the form page in a browser when the server starts
	AutoOpen bool `toml:"auto_open"`

	// Browser selects a specific browser ("default" uses the system one)
	Browser string `toml:"browser"`
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `toml:"level"`   // debug, info, warn, error
	Verbose bool   `toml:"verbose"` // Enable verbose logging
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		// Valid levels
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
