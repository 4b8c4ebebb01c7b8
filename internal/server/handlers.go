package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/version"
)

// handleOracle runs one full pipeline cycle and returns the oracle-facing
// summary: scores and counts without per-post detail.
func (s *Server) handleOracle(c echo.Context) error {
	result := s.app.RunCycle(c.Request().Context())
	return c.JSON(http.StatusOK, result.OracleResult)
}

// handleSentiment runs one full pipeline cycle and returns the summary plus
// the per-post breakdown for dashboards.
func (s *Server) handleSentiment(c echo.Context) error {
	result := s.app.RunCycle(c.Request().Context())
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleIngestionMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.app.Metrics())
}

func (s *Server) handleHealth(c echo.Context) error {
	health := s.app.Health()
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	if !s.app.ClassifierReady() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":       "unhealthy",
			"failed_check": "classifier",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}
