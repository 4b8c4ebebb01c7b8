package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/app"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/config"
	"github.com/kingsley-judewin/the-sentiment-oracle/internal/errors"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       *app.Service
	startTime time.Time
}

func NewServer(cfg *config.Config, svc *app.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(errors.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL, "http://localhost:5173", "http://localhost:3000"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       svc,
		startTime: time.Now(),
	}
	srv.registerRoutes()
	return srv
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	return s.echo.Start(":" + s.config.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
