package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/whatyouseeau/socialfeed/internal/cache"
)

const shutdownTimeout = 10 * time.Second

// ServerOpts configures the REST API server
type ServerOpts struct {
	Port    string
	Social  SocialOpts
	Limiter *IPLimiter
}

// Server represents the REST API server
type Server struct {
	mux      *http.ServeMux
	server   *http.Server
	logger   *slog.Logger
	cache    cache.Cache
	resolver FeedResolver
	opts     ServerOpts
	errCh    chan error
}

// NewServer creates a new REST API server
func NewServer(c cache.Cache, r FeedResolver, opts ServerOpts, logger *slog.Logger) *Server {
	if opts.Limiter == nil {
		opts.Limiter = NewIPLimiter(0, 0)
	}

	server := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		cache:    c,
		resolver: r,
		opts:     opts,
		errCh:    make(chan error, 1),
		server: &http.Server{
			Addr:              ":" + opts.Port,
			ReadHeaderTimeout: 10 * time.Second,  // Mitigate Slowloris
			ReadTimeout:       30 * time.Second,  // Time to read entire request (including body)
			WriteTimeout:      30 * time.Second,  // Time to write response
			IdleTimeout:       120 * time.Second, // Keep-alive timeout
		},
	}

	server.registerHandlers()
	server.server.Handler = server.Handler()

	return server
}

// registerHandlers sets up all API routes
func (s *Server) registerHandlers() {
	NewSocialHandler(s.mux, s.cache, s.resolver, s.opts.Social, s.logger)
	NewHealthHandler(s.mux, s.logger)
}

// Handler returns the router wrapped with middleware
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		Logger(s.logger),
		Recover(s.logger),
		RateLimit(s.opts.Limiter, s.logger),
	)
}

// Start binds the port and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)

	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", s.server.Addr, err)
	}

	s.server.RegisterOnShutdown(func() {
		s.logger.Info("Server is shutting down...")
	})

	go func() {
		s.logger.Info("Starting HTTP server", "port", s.opts.Port)

		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			s.errCh <- fmt.Errorf("server error: %w", err)
		}

		close(s.errCh)
	}()

	return nil
}

// Err is closed when the server stops and receives an error if it failed
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	// Create a timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("Server exited gracefully")

	return nil
}
