package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	applog "datesheet/internal/log"
)

const DefaultFontFile = "fonts/LiberationSans-Regular.ttf"

type Config struct {
	// HTTP Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	ShutdownTimeout time.Duration

	// Rendering. An empty FontFile means the embedded font.
	FontFile string

	// Logging
	LogLevel  string
	LogFormat string

	// invalid collects values that were set but could not be parsed
	invalid []string
}

func Load() *Config {
	cfg := &Config{
		Port:     getEnv("PORT", "8000"),
		FontFile: getEnv("DATESHEET_FONT_FILE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	cfg.ReadTimeout = cfg.getEnvDuration("READ_TIMEOUT", 10*time.Second)
	cfg.WriteTimeout = cfg.getEnvDuration("WRITE_TIMEOUT", 10*time.Second)
	cfg.IdleTimeout = cfg.getEnvDuration("IDLE_TIMEOUT", 60*time.Second)
	cfg.ShutdownTimeout = cfg.getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)

	return cfg
}

// Addr is the listen address on all interfaces.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// FontFileOr returns the configured font file, or fallback when unset.
func (c *Config) FontFileOr(fallback string) string {
	if c.FontFile != "" {
		return c.FontFile
	}
	return fallback
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string(nil), c.invalid...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"read timeout", c.ReadTimeout},
		{"write timeout", c.WriteTimeout},
		{"idle timeout", c.IdleTimeout},
		{"shutdown timeout", c.ShutdownTimeout},
	}
	for _, to := range timeouts {
		if to.value <= 0 {
			errors = append(errors, fmt.Sprintf("invalid %s %v: must be positive", to.name, to.value))
		}
	}

	if c.FontFile != "" {
		if _, err := os.Stat(c.FontFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("font file does not exist: %s", c.FontFile))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.invalid = append(c.invalid, fmt.Sprintf("invalid %s '%s': %v", key, value, err))
		return defaultValue
	}
	return d
}
