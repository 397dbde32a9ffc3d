package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"relay/internal/handlers"
	"relay/internal/metrics"
)

// ServerConfig contains server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	LogLevel       string
	MetricsEnabled bool
	MetricsPath    string
}

// Server represents the API server
type Server struct {
	config     ServerConfig
	router     *gin.Engine
	httpServer *http.Server
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	placer     handlers.OrderPlacer
}

// NewServer creates a new API server relaying webhooks to placer
func NewServer(config ServerConfig, placer handlers.OrderPlacer, logger zerolog.Logger) (*Server, error) {
	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	if placer == nil {
		return nil, fmt.Errorf("order placer is required")
	}

	setConfigDefaults(&config)

	if config.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		config: config,
		router: router,
		logger: logger,
		placer: placer,
	}

	if config.MetricsEnabled {
		server.metrics = metrics.New()
	}

	server.setupMiddleware()
	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:        server.Handler(),
		ReadTimeout:    config.ReadTimeout,
		WriteTimeout:   config.WriteTimeout,
		IdleTimeout:    config.IdleTimeout,
		MaxHeaderBytes: config.MaxHeaderBytes,
	}

	return server, nil
}

// corsMethods lists every standard method. rs/cors has no method wildcard,
// and AllowAll leaves out OPTIONS, CONNECT and TRACE.
var corsMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// Handler returns the router wrapped in a permissive CORS layer: any
// origin, any standard method and any request header.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: corsMethods,
		AllowedHeaders: []string{"*"},
	}).Handler(s.router)
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the API server
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.httpServer.Addr).
		Bool("metrics", s.metrics != nil).
		Msg("Starting API server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// setupMiddleware configures server middleware
func (s *Server) setupMiddleware() {
	// Request ID middleware (always first)
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(ErrorMiddleware(s.logger))

	if s.metrics != nil {
		s.router.Use(metrics.MetricsMiddleware(s.metrics))
	}
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	healthHandlers := handlers.NewHealthHandlers(s.logger)
	s.router.GET("/health", healthHandlers.HealthCheck())

	var recorder handlers.WebhookRecorder
	if s.metrics != nil {
		recorder = s.metrics
		s.router.GET(s.config.MetricsPath, gin.WrapH(s.metrics.Handler()))
	}

	webhookHandlers := handlers.NewWebhookHandlers(s.placer, recorder, s.logger)
	s.router.POST("/webhook", webhookHandlers.HandleWebhook())
}

// Helper functions

func validateConfig(config *ServerConfig) error {
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", config.Port)
	}
	return nil
}

func setConfigDefaults(config *ServerConfig) {
	if config.Host == "" {
		config.Host = "0.0.0.0"
	}

	if config.Port == 0 {
		config.Port = 3000
	}

	if config.ReadTimeout == 0 {
		config.ReadTimeout = 30 * time.Second
	}

	if config.WriteTimeout == 0 {
		config.WriteTimeout = 30 * time.Second
	}

	if config.IdleTimeout == 0 {
		config.IdleTimeout = 60 * time.Second
	}

	if config.MaxHeaderBytes == 0 {
		config.MaxHeaderBytes = 1 << 20 // 1 MB
	}

	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}
