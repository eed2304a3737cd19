package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/transportdesk/lr-extractor/internal/export"
	"github.com/transportdesk/lr-extractor/internal/extract"
	"github.com/transportdesk/lr-extractor/internal/repository"
)

// Server is the HTTP surface around the extraction pipeline and the shipment
// store.
type Server struct {
	extractor *extract.Extractor
	store     repository.ShipmentRepository
	exporter  *export.Service
	logger    *slog.Logger
	engine    *gin.Engine
	http      *http.Server
}

func NewServer(addr string, extractor *extract.Extractor, store repository.ShipmentRepository, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	s := &Server{
		extractor: extractor,
		store:     store,
		exporter:  exporter,
		logger:    logger,
		engine:    engine,
		http: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/extract", s.handleExtract)
	api.POST("/shipments", s.handleCreateShipment)
	api.GET("/shipments", s.handleListShipments)
	api.GET("/shipments/:id", s.handleGetShipment)
	api.GET("/shipments/export", s.handleExportShipments)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
