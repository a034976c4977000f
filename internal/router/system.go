package router

import (
	"github.com/deppfellow/iban-checker/internal/handler"
	"github.com/deppfellow/iban-checker/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the routes outside the versioned API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, s *server.Server) {
	r.GET("/", h.Health.Info)
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if obs := s.Config.Observability; obs != nil && obs.Metrics.Enabled {
		r.GET(obs.Metrics.Path, echo.WrapHandler(s.Metrics.Handler()))
	}
}
