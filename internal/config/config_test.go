package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Setenv("ALPACA_API_KEY", "test-key")
	t.Setenv("ALPACA_SECRET_KEY", "test-secret")
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setCredentials(t)
		for _, key := range []string{"PORT", "HOST", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "METRICS_ENABLED", "METRICS_PATH", "SERVER_READ_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT"} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "test-key", cfg.Alpaca.APIKey)
		assert.Equal(t, "test-secret", cfg.Alpaca.SecretKey)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, "stdout", cfg.Logging.Output)
	})

	t.Run("reads overrides", func(t *testing.T) {
		setCredentials(t)
		t.Setenv("PORT", "8081")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("SERVER_WRITE_TIMEOUT", "5s")
		t.Setenv("METRICS_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "console", cfg.Logging.Format)
		assert.Equal(t, 5*time.Second, cfg.Server.WriteTimeout)
		assert.False(t, cfg.Metrics.Enabled)
	})

	t.Run("rejects unparsable port", func(t *testing.T) {
		setCredentials(t)
		t.Setenv("PORT", "80a")

		cfg, err := Load()
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), `PORT: invalid integer "80a"`)
	})

	t.Run("reports every unparsable value", func(t *testing.T) {
		setCredentials(t)
		t.Setenv("PORT", "")
		t.Setenv("SERVER_READ_TIMEOUT", "soon")
		t.Setenv("METRICS_ENABLED", "maybe")
		t.Setenv("LOG_MAX_AGE", "forever")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `SERVER_READ_TIMEOUT: invalid duration "soon"`)
		assert.Contains(t, err.Error(), `METRICS_ENABLED: invalid boolean "maybe"`)
		assert.Contains(t, err.Error(), `LOG_MAX_AGE: invalid integer "forever"`)
	})

	t.Run("requires api key", func(t *testing.T) {
		t.Setenv("ALPACA_API_KEY", "")
		t.Setenv("ALPACA_SECRET_KEY", "test-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ALPACA_API_KEY")
	})

	t.Run("requires secret key", func(t *testing.T) {
		t.Setenv("ALPACA_API_KEY", "test-key")
		t.Setenv("ALPACA_SECRET_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ALPACA_SECRET_KEY")
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 3000, Host: "0.0.0.0"},
			Alpaca:  AlpacaConfig{APIKey: "k", SecretKey: "s"},
			Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
			Logging: LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "invalid server port"},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "invalid server port"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: "invalid log level"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "invalid log format"},
		{name: "bad metrics path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }, wantErr: "metrics path"},
		{name: "metrics path ignored when disabled", mutate: func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Path = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
