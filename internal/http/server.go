// Package http provides the REST API for coachd.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ownersup/coachd/internal/analytics"
	"github.com/ownersup/coachd/internal/extraction"
	"github.com/ownersup/coachd/internal/logging"
	"github.com/ownersup/coachd/internal/session"
	"github.com/ownersup/coachd/internal/store"
)

// Server provides the HTTP endpoints for coachd.
type Server struct {
	echo      *echo.Echo
	store     *store.Store
	sessions  *session.Service
	oracle    extraction.Oracle
	analytics *analytics.Service
	logger    *logging.Logger
	config    *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server.
func NewServer(st *store.Store, sessions *session.Service, oracle extraction.Oracle,
	analyticsSvc *analytics.Service, logger *logging.Logger, cfg *Config) (*Server, error) {

	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session service cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 4000}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(metricsMiddleware())

	s := &Server{
		echo:      e,
		store:     st,
		sessions:  sessions,
		oracle:    oracle,
		analytics: analyticsSvc,
		logger:    logger,
		config:    cfg,
	}
	s.registerRoutes()
	return s, nil
}

// requestLogger logs each request and threads the request id into the
// context so downstream log lines carry it.
func requestLogger(logger *logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := logging.WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info(ctx, "http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
			)
			return err
		}
	}
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/programs", s.handleListPrograms)
	api.POST("/programs", s.handleCreateProgram)
	api.GET("/programs/:id", s.handleGetProgram)
	api.PATCH("/programs/:id", s.handleUpdateProgram)
	api.DELETE("/programs/:id", s.handleDeleteProgram)
	api.GET("/programs/:id/groups", s.handleListProgramGroups)

	api.POST("/groups", s.handleCreateGroup)
	api.GET("/groups/:id", s.handleGetGroup)
	api.GET("/groups/:id/members", s.handleListGroupMembers)
	api.POST("/groups/:id/members", s.handleAssignMember)
	api.GET("/groups/:id/sessions", s.handleListGroupSessions)
	api.GET("/groups/:id/analytics", s.handleGroupAnalytics)
	api.DELETE("/group-members/:id", s.handleRemoveGroupMember)

	api.GET("/members", s.handleListMembers)
	api.POST("/members", s.handleCreateMember)
	api.GET("/members/:id", s.handleGetMember)
	api.GET("/members/:id/goals", s.handleMemberGoals)
	api.GET("/members/:id/challenges", s.handleMemberChallenges)
	api.GET("/members/:id/stucks", s.handleMemberStucks)
	api.GET("/members/:id/marketing", s.handleMemberMarketing)
	api.GET("/members/:id/attendance", s.handleMemberAttendance)
	api.GET("/members/:id/groups", s.handleMemberGroups)

	api.POST("/sessions", s.handleCreateSession)
	api.GET("/sessions/:id", s.handleGetSession)
	api.POST("/sessions/:id/process-transcript", s.handleProcessTranscript)
	api.POST("/sessions/:id/save-extractions", s.handleSaveExtractions)

	api.POST("/extract/goals", s.handleExtractGoals)
	api.POST("/extract/challenges", s.handleExtractChallenges)
	api.POST("/extract/marketing-activities", s.handleExtractMarketing)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info(context.Background(), "starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
