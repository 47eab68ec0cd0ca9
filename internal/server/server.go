// internal/server/server.go
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"business-canvas/internal/canvas"
	"business-canvas/internal/common/config"
	apperrors "business-canvas/internal/common/errors"
	httpx "business-canvas/internal/common/http"
	"business-canvas/internal/common/logger"
	"business-canvas/internal/models"
)

// Server hosts the canvas API next to the operational routes.
type Server struct {
	config     *config.Config
	service    *canvas.Service
	logger     logger.Logger
	errors     *apperrors.ErrorHandler
	recorder   httpx.RequestRecorder
	httpServer *http.Server
	handler    http.Handler
	routes     []models.RouteDoc
}

type Option func(*Server)

// WithRecorder forwards per-request measurements, typically to the OTel meter.
func WithRecorder(r httpx.RequestRecorder) Option {
	return func(s *Server) { s.recorder = r }
}

func New(cfg *config.Config, service *canvas.Service, log logger.Logger, opts ...Option) *Server {
	log = logger.ForComponent(log, "http-server")
	s := &Server{
		config:  cfg,
		service: service,
		logger:  log,
		errors:  apperrors.NewErrorHandler(log),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.handler = httpx.Chain(mux,
		httpx.Recovery(s.errors),
		httpx.RequestID(),
		httpx.CORS(cfg.CORS),
		httpx.Logging(log),
		httpx.Metrics(s.recorder),
		httpx.MaxBodySize(cfg.Server.MaxBodyBytes),
	)

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.handler,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	s.routes = []models.RouteDoc{
		{Method: http.MethodGet, Path: "/", Summary: "Service metadata"},
		{Method: http.MethodGet, Path: s.config.App.DocsPath, Summary: "Route table"},
		{Method: http.MethodGet, Path: "/health", Summary: "Liveness probe"},
		{Method: http.MethodGet, Path: "/ready", Summary: "Readiness probe (store reachable)"},
	}

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET "+s.config.App.DocsPath, s.handleDocs)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)

	if s.config.Metrics.Enabled {
		mux.Handle("GET "+s.config.Metrics.Path, promhttp.Handler())
		s.routes = append(s.routes, models.RouteDoc{Method: http.MethodGet, Path: s.config.Metrics.Path, Summary: "Prometheus metrics"})
	}

	canvasHandler := canvas.NewHandler(s.service, s.logger)
	canvasHandler.RegisterRoutes(mux)
	s.routes = append(s.routes, canvasHandler.Routes()...)

	mux.HandleFunc("/", s.handleNotFound)
}

// Handler returns the fully wrapped handler, for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := models.ServiceInfo{
		Message: s.config.App.Name,
		Version: s.config.App.Version,
		Docs:    s.config.App.DocsPath,
	}
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse(s.config.App.Name, info))
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse("Routes retrieved successfully", s.routes))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse("healthy", map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	}))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ready(r.Context()); err != nil {
		s.errors.HandleHTTPError(w, r, err)
		return
	}
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse("ready", map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	}))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteEnvelope(w, http.StatusNotFound, models.NewErrorResponse("Not Found", http.StatusNotFound))
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", map[string]interface{}{"addr": ln.Addr().String()})
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received", nil)
	}

	return s.shutdown()
}

func (s *Server) shutdown() error {
	timeout := config.GetDuration(s.config.Server.ShutdownTimeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down gracefully", map[string]interface{}{"timeout": timeout.String()})
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", map[string]interface{}{"error": err})
		return err
	}
	s.logger.Info("server stopped", nil)
	return nil
}
