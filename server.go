package runroute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/theoremus-urban-solutions/runroute/config"
	"github.com/theoremus-urban-solutions/runroute/providers"
	"github.com/theoremus-urban-solutions/runroute/search"
)

// maxBodyBytes bounds request bodies. Encoded routes of a few thousand points
// fit comfortably.
const maxBodyBytes = 4 << 20

// Server exposes route search and planning over HTTP.
type Server struct {
	cfg        config.AppConfig
	routing    providers.RoutingProvider
	shelter    providers.ShelterProvider
	searchOpts []search.Option
	logger     *slog.Logger
	now        func() time.Time

	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger. Nil keeps slog.Default().
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSearchOptions passes options to every per-request Searcher.
func WithSearchOptions(opts ...search.Option) ServerOption {
	return func(s *Server) { s.searchOpts = append(s.searchOpts, opts...) }
}

// WithNow sets the clock used for response timestamps.
func WithNow(now func() time.Time) ServerOption {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates a server. shelter may be nil, in which case sheltered
// searches are rejected.
func NewServer(cfg config.AppConfig, routing providers.RoutingProvider, shelter providers.ShelterProvider, opts ...ServerOption) *Server {
	s := &Server{
		cfg:     cfg,
		routing: routing,
		shelter: shelter,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	return s
}

// Router returns the HTTP handler with every route mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/api/health", s.handleHealth)
	r.Route("/api/routes", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/instructions", s.handleInstructions)
		r.Post("/gpx", s.handleGPX)
	})
	return r
}

// StartServer starts listening in the background on the configured port.
func (s *Server) StartServer() {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// searches can make many sequential provider calls
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()
	s.logger.Info("server listening", "addr", addr)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM and then shuts the
// server down, waiting up to 10 seconds for in-flight requests.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	s.logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.httpServer == nil {
		return
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown error", "error", err)
		return
	}
	s.logger.Info("server shut down successfully")
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
