package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"relay/internal/alpaca"
	"relay/internal/api"
	"relay/internal/auth"
	"relay/internal/config"
	"relay/internal/logging"
)

func main() {
	// Bootstrap logger until configuration is loaded
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger, logCloser := logging.New(cfg.Logging)
	defer logCloser.Close()

	credentials, err := auth.NewCredentials(cfg.Alpaca.APIKey, cfg.Alpaca.SecretKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid Alpaca credentials")
	}

	client, err := alpaca.NewClient(credentials,
		alpaca.WithLogger(logger.With().Str("component", "alpaca").Logger()),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Alpaca client")
	}

	server, err := api.NewServer(api.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
		LogLevel:       cfg.Logging.Level,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	}, client, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create server")
	}

	logger.Info().
		Str("addr", cfg.Server.Addr()).
		Str("broker", client.BaseURL()).
		Str("api_key_id", credentials.KeyID()).
		Str("log_level", cfg.Logging.Level).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("Starting webhook relay")

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server error")
			logCloser.Close()
			os.Exit(1)
		}
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown server gracefully")
		}

		logger.Info().Msg("Shutdown complete")
	}
}
