package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies environment overrides and validates.
// A missing file is not an error when the environment supplies the required values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && hasEnvKeys():
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func hasEnvKeys() bool {
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEYS")) != ""
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup("GEMINI_API_KEYS"); ok {
		cfg.Gemini.APIKeys = splitList(v)
	}
	if v, ok := lookup("GEMINI_MODEL"); ok {
		cfg.Gemini.Model = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookup("TEMPLATES_DIR"); ok {
		cfg.Paths.Templates = v
	}
	if v, ok := lookup("DATABASE_DSN"); ok {
		cfg.Database.DSN = v
	}
	if v, ok := lookup("HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	}
	if v, ok := lookup("MAX_FILE_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_FILE_SIZE: %w", err)
		}
		cfg.Limits.MaxFileSize = n
	}
	if v, ok := lookup("RATE_LIMIT_REQUESTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_REQUESTS: %w", err)
		}
		cfg.RateLimit.Requests = n
	}
	if v, ok := lookup("RATE_LIMIT_WINDOW"); ok {
		d, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_WINDOW: %w", err)
		}
		cfg.RateLimit.Window = d
	}
	if v, ok := lookup("CACHE_TTL"); ok {
		d, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = d
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseSeconds accepts a Go duration ("90s") or a bare number of seconds ("3600").
func parseSeconds(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
