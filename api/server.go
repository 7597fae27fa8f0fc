package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lotto/domain/interfaces"
	"lotto/events"
	"lotto/infrastructure/observability"
	"lotto/render"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// HealthFunc reports whether a dependency is reachable
type HealthFunc func(ctx context.Context) error

// Dependencies wires the services behind the HTTP API
type Dependencies struct {
	Generator interfaces.NumberGenerator
	Analyzer  interfaces.PatternAnalyzer
	History   interfaces.HistoryService
	Heatmap   *render.HeatmapImageGenerator
	Metrics   *observability.Metrics // optional
	Publisher events.Publisher       // optional, receives NumbersDrawnEvent
	Health    HealthFunc             // optional
}

// Server exposes the number generator, the ticket history and the statistics over HTTP
type Server struct {
	deps   Dependencies
	engine *gin.Engine
}

// NewServer builds the router
func NewServer(deps Dependencies) *Server {
	if deps.Heatmap == nil {
		deps.Heatmap = render.NewHeatmapImageGenerator()
	}

	s := &Server{deps: deps, engine: gin.New()}
	s.engine.Use(gin.Recovery(), RequestID(), RequestLogger(deps.Metrics))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.engine

	r.GET("/healthz", s.Healthz)
	if s.deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	v1 := r.Group("/v1")
	{
		numbers := v1.Group("/numbers")
		{
			numbers.POST("/random", s.GenerateRandom)
			numbers.POST("/set", s.GenerateGameSet)
			numbers.POST("/smart", s.GenerateSmart)
		}

		tickets := v1.Group("/tickets")
		{
			tickets.GET("", s.ListTickets)
			tickets.POST("", s.SaveTicket)
			tickets.DELETE("", s.ClearTickets)
			tickets.GET("/:id", s.GetTicket)
			tickets.PUT("/:id/result", s.RecordResult)
		}

		stats := v1.Group("/stats")
		{
			stats.GET("", s.GetStats)
			stats.GET("/heatmap.png", s.GetHeatmapImage)
		}

		v1.GET("/backup", s.ExportBackup)
		v1.POST("/backup", s.ImportBackup)
	}
}

// Handler returns the router as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("HTTP API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve HTTP API: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP API: %w", err)
	}
	log.Info("HTTP API stopped")
	return nil
}

// Healthz checks the store
func (s *Server) Healthz(c *gin.Context) {
	if s.deps.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		if err := s.deps.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) publish(event events.Event) {
	if s.deps.Publisher == nil {
		return
	}
	if err := s.deps.Publisher.Publish(event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Warn("Failed to publish event")
	}
}
