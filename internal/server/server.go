// Package server exposes the backstory pipeline over HTTP.
package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/googleinterns/backstory/internal/db"
)

// Pipeline is what the HTTP layer needs from the application.
type Pipeline interface {
	CreateBackstory(ctx context.Context, image []byte, mimeType string) (*db.Backstory, error)
	RecentBackstories(ctx context.Context, limit int) ([]db.Backstory, error)
}

// Server is the HTTP API server.
type Server struct {
	Echo     *echo.Echo
	pipeline Pipeline
}

// New creates the API server around a pipeline.
func New(pipeline Pipeline) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Server{
		Echo:     e,
		pipeline: pipeline,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/healthz", s.handleHealthz)

	api := s.Echo.Group("/api")
	api.POST("/backstories", s.handleCreateBackstory)
	api.GET("/backstories", s.handleListBackstories)
}

// Start begins serving on the given address, blocking until shutdown.
func (s *Server) Start(addr string) error {
	return s.Echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
