package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Completion CompletionConfig
	Vision     VisionConfig
	Prompts    PromptConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port               string `envconfig:"PORT" default:"8000"`
	Host               string `envconfig:"HOST" default:"0.0.0.0"`
	CompressionEnabled bool   `envconfig:"COMPRESSION_ENABLED" default:"true"`
	MaxUploadMB        int64  `envconfig:"MAX_UPLOAD_MB" default:"10"`
}

// CompletionConfig holds the text-completion provider settings.
type CompletionConfig struct {
	APIKey         string        `envconfig:"GROQ_API_KEY"`
	BaseURL        string        `envconfig:"COMPLETION_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model          string        `envconfig:"COMPLETION_MODEL" default:"deepseek-r1-distill-llama-70b"`
	MaxTokens      int           `envconfig:"COMPLETION_MAX_TOKENS" default:"4096"`
	Timeout        time.Duration `envconfig:"COMPLETION_TIMEOUT" default:"0s"`
	BreakerEnabled bool          `envconfig:"COMPLETION_BREAKER_ENABLED" default:"false"`
	RateLimit      float64       `envconfig:"COMPLETION_RATE_LIMIT" default:"0"`
}

// VisionConfig holds the image-description provider settings.
type VisionConfig struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
	Model  string `envconfig:"VISION_MODEL" default:"gemini-1.5-flash"`
}

// PromptConfig points at optional extra application-type templates.
type PromptConfig struct {
	TemplatesFile string `envconfig:"PROMPT_TEMPLATES_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	// lower-case key names written by older .env files
	if cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = os.Getenv("groq_api_key")
	}
	if cfg.Vision.APIKey == "" {
		cfg.Vision.APIKey = os.Getenv("api_key")
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8000",
			Host:               "0.0.0.0",
			CompressionEnabled: true,
			MaxUploadMB:        10,
		},
		Completion: CompletionConfig{
			BaseURL:   "https://api.groq.com/openai/v1",
			Model:     "deepseek-r1-distill-llama-70b",
			MaxTokens: 4096,
		},
		Vision: VisionConfig{
			Model: "gemini-1.5-flash",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           false,
		},
	}
}
