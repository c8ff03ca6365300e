// Package server exposes the rendered catalog over HTTP: one route per
// document kind plus health, metrics, and a Markdown 404 help page.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/juneandco/third-audience/internal/server/middleware"
	"github.com/juneandco/third-audience/internal/service"

	derrors "github.com/juneandco/third-audience/internal/errors"
)

// Options configures optional server behavior.
type Options struct {
	// MetricsHandler, when set, is mounted at /metrics.
	MetricsHandler http.Handler
}

// Server serves the AI content routes.
type Server struct {
	addr    string
	svc     *service.Service
	adapter *derrors.HTTPAdapter
	logger  *slog.Logger
	opts    Options

	httpServer *http.Server
}

// New constructs a server for the given listen address.
func New(addr string, svc *service.Service, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:    addr,
		svc:     svc,
		adapter: derrors.NewHTTPAdapter(logger),
		logger:  logger,
		opts:    opts,
	}
}

// Handler builds the full route tree wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/llms.txt", http.StatusFound)
	})
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /llms.txt", s.document(s.svc.Discovery))
	mux.HandleFunc("GET /sitemap.md", s.document(s.svc.SitemapMarkdown))
	mux.HandleFunc("GET /sitemap.xml", s.document(s.svc.SitemapXML))
	mux.HandleFunc("GET /products.md", s.document(s.svc.ProductIndex))
	mux.HandleFunc("GET /collections.md", s.document(s.svc.CollectionIndex))
	mux.HandleFunc("GET /products/{doc}", s.entityDocument(s.svc.Product))
	mux.HandleFunc("GET /collections/{doc}", s.entityDocument(s.svc.Collection))
	mux.HandleFunc("GET /pages/{doc}", s.entityDocument(s.svc.Page))

	if s.opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.opts.MetricsHandler)
	}

	mux.HandleFunc("/", s.handleNotFound)

	return middleware.Chain(s.logger)(mux)
}

// Start runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
