// Package ui provides the web dashboard for exploring launch records.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/metrics"
	"github.com/leapstack-labs/launchdash/internal/ui/features/dashboard"
	"github.com/leapstack-labs/launchdash/internal/ui/router"
)

// ShutdownTimeout bounds graceful shutdown once the serve context ends.
const ShutdownTimeout = 5 * time.Second

// Server is the dashboard HTTP server.
type Server struct {
	dataset *dataset.Dataset
	sites   []string
	port    int
	title   string
	slider  dashboard.Slider
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu   sync.Mutex
	addr string
}

// Config holds configuration for the UI server.
type Config struct {
	Dataset *dataset.Dataset
	Sites   []string
	Port    int // 0 picks a free port
	Title   string
	Slider  dashboard.Slider
	Logger  *slog.Logger
	Metrics *metrics.Metrics // nil disables /metrics
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		dataset: cfg.Dataset,
		sites:   cfg.Sites,
		port:    cfg.Port,
		title:   cfg.Title,
		slider:  cfg.Slider,
		logger:  logger,
		metrics: cfg.Metrics,
	}
}

// Handler builds the routed HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(s.logger),
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if s.metrics != nil && s.dataset != nil {
		s.metrics.SetDataset(s.dataset.Len(), len(s.dataset.Sites()))
	}

	opts := dashboard.Options{
		Dataset: s.dataset,
		Sites:   s.sites,
		Title:   s.title,
		Slider:  s.slider,
		Logger:  s.logger,
	}
	if err := router.SetupRoutes(r, opts, s.metrics); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Addr returns the listening address once Serve has bound its socket.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	s.logger.Info("starting UI server", "addr", s.URL())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// URL returns the browser URL of the running server.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return fmt.Sprintf("http://localhost:%d", s.port)
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	return "http://localhost:" + port
}

// requestLogger logs one line per request through logger.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
