package config

import (
	"fmt"
	"time"
)

type Config struct {
	Gemini      GeminiConfig      `yaml:"gemini"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Cache       CacheConfig       `yaml:"cache"`
	Paths       PathsConfig       `yaml:"paths"`
	Limits      LimitsConfig      `yaml:"limits"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	HTTP        HTTPConfig        `yaml:"http"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

// GeminiConfig holds provider credentials. Keys are never logged.
type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type AnalysisConfig struct {
	Temperature    float32       `yaml:"temperature"`
	MaxTokens      int32         `yaml:"max_tokens"`
	MaxAttempts    int           `yaml:"max_attempts"`
	BaseDelay      time.Duration `yaml:"base_delay"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
	Template       string        `yaml:"template"`
}

type CacheConfig struct {
	Capacity int           `yaml:"capacity"`
	TTL      time.Duration `yaml:"ttl"`
}

type PathsConfig struct {
	Inbox     string `yaml:"inbox"`
	Output    string `yaml:"output"`
	Archived  string `yaml:"archived"`
	Templates string `yaml:"templates"`
}

type LimitsConfig struct {
	MaxFileSize int64 `yaml:"max_file_size"`
}

// RateLimitConfig allows Requests per Window for each client.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required")
	}
	for i, k := range c.Gemini.APIKeys {
		if k == "" {
			return fmt.Errorf("gemini.api_keys[%d] is empty", i)
		}
	}
	if c.Analysis.Temperature < 0 || c.Analysis.Temperature > 2 {
		return fmt.Errorf("analysis.temperature must be between 0 and 2")
	}
	if c.Limits.MaxFileSize < 0 {
		return fmt.Errorf("limits.max_file_size must not be negative")
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Analysis.Temperature == 0 {
		c.Analysis.Temperature = 0.3
	}
	if c.Analysis.MaxTokens == 0 {
		c.Analysis.MaxTokens = 2048
	}
	if c.Analysis.MaxAttempts == 0 {
		c.Analysis.MaxAttempts = 3
	}
	if c.Analysis.BaseDelay == 0 {
		c.Analysis.BaseDelay = 2 * time.Second
	}
	if c.Analysis.AttemptTimeout == 0 {
		c.Analysis.AttemptTimeout = 60 * time.Second
	}
	if c.Analysis.Template == "" {
		c.Analysis.Template = "default"
	}
	if c.Cache.Capacity == 0 {
		c.Cache.Capacity = 256
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Hour
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Templates == "" {
		c.Paths.Templates = "templates"
	}
	if c.Limits.MaxFileSize == 0 {
		c.Limits.MaxFileSize = 20 * 1024 * 1024
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 5
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "data/cutsheet.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
