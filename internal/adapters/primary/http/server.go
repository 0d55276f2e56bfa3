// Package http exposes the pitch-deck generation pipeline over a small web
// surface: a submission form, the generation endpoint, and status routes.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/vnayar/pitchdeck/internal/adapters/secondary/monitoring"
	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// Server hosts the web form and generation endpoint
type Server struct {
	server  *http.Server
	decks   ports.DeckService
	monitor *monitoring.PipelineMonitor
	config  *entities.ServerConfig
	logger  *HTTPLogger
	mu      sync.RWMutex
	running bool
}

// NewServer creates a new HTTP server.
// config must not be nil - use config.GetDefaultConfig().Server if needed
func NewServer(decks ports.DeckService, config *entities.ServerConfig) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}
	return &Server{
		decks:  decks,
		config: config,
		logger: NewHTTPLogger("server", false),
	}
}

// NewServerWithLogging creates a new HTTP server with logging configuration
func NewServerWithLogging(decks ports.DeckService, config *entities.ServerConfig, loggingConfig *entities.LoggingConfig) *Server {
	s := NewServer(decks, config)

	if loggingConfig != nil {
		s.logger = NewHTTPLoggerWithLevel("server", loggingConfig.Verbose, loggingConfig.GetLevel())
	}

	return s
}

// SetMonitor attaches the pipeline monitor backing the status endpoint
func (s *Server) SetMonitor(monitor *monitoring.PipelineMonitor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitor = monitor
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	router := s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})
	handler := c.Handler(router)

	readTimeout := time.Duration(s.config.ReadTimeout) * time.Second
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}
	// Generation requests block on the model, image fetches, and the
	// converter, so the write timeout is generous.
	writeTimeout := time.Duration(s.config.WriteTimeout) * time.Second
	if writeTimeout <= 0 {
		writeTimeout = 300 * time.Second
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("HTTP server starting on %s:%d", host, port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleForm).Methods(http.MethodGet)
	router.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)

	// Apply middleware in order: security -> rate limiting -> logging -> recovery
	handler := securityHeadersMiddleware(router)
	handler = rateLimitMiddleware(handler)
	handler = createLoggingMiddleware(handler, s.logger)
	handler = createRecoveryMiddleware(handler, s.logger)

	return handler
}
