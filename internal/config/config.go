package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the relay service
type Config struct {
	Server  ServerConfig  `json:"server"`
	Alpaca  AlpacaConfig  `json:"alpaca"`
	Metrics MetricsConfig `json:"metrics"`
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `json:"port"`
	Host            string        `json:"host"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// AlpacaConfig holds broker credentials. The API host is fixed to paper
// trading and is not configurable here.
type AlpacaConfig struct {
	APIKey    string `json:"-"`
	SecretKey string `json:"-"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // json or console
	Output     string `json:"output"` // stdout, stderr, or file path
	MaxSize    int    `json:"max_size"`    // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
}

// Load loads configuration from environment variables. A variable that is
// set but does not parse is an error rather than falling back to its default.
func Load() (*Config, error) {
	env := &envReader{}
	config := &Config{
		Server: ServerConfig{
			Port:            env.getEnvAsInt("PORT", 3000),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     env.getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    env.getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     env.getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: env.getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Alpaca: AlpacaConfig{
			APIKey:    os.Getenv("ALPACA_API_KEY"),
			SecretKey: os.Getenv("ALPACA_SECRET_KEY"),
		},
		Metrics: MetricsConfig{
			Enabled: env.getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Logging: LoggingConfig{
			Level:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			MaxSize:    env.getEnvAsInt("LOG_MAX_SIZE", 100),
			MaxBackups: env.getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     env.getEnvAsInt("LOG_MAX_AGE", 30),
		},
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Alpaca.APIKey == "" {
		return fmt.Errorf("ALPACA_API_KEY environment variable must be set")
	}
	if c.Alpaca.SecretKey == "" {
		return fmt.Errorf("ALPACA_SECRET_KEY environment variable must be set")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with /: %s", c.Metrics.Path)
	}

	return nil
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses typed variables and collects every parse failure
type envReader struct {
	errs []error
}

func (r *envReader) getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid integer %q", key, value))
		return defaultValue
	}
	return intValue
}

func (r *envReader) getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid boolean %q", key, value))
		return defaultValue
	}
	return boolValue
}

func (r *envReader) getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid duration %q", key, value))
		return defaultValue
	}
	return duration
}
