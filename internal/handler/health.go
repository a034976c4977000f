package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/iban-checker/internal/middleware"
	"github.com/deppfellow/iban-checker/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	serviceDisplayName = "Iban checker"
	serviceVersion     = "1.0.0"
)

// healthProbe pings one dependency. A failing required probe makes the
// service unhealthy; optional ones are only reported.
type healthProbe struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

type HealthHandler struct {
	Handler
	probes  []healthProbe
	timeout time.Duration
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: 5 * time.Second,
	}

	cfg := s.Config.Observability
	if cfg == nil || !cfg.HealthChecks.Enabled {
		return h
	}
	if cfg.HealthChecks.Timeout > 0 {
		h.timeout = cfg.HealthChecks.Timeout
	}

	if slices.Contains(cfg.HealthChecks.Checks, "database") && s.DB != nil {
		h.probes = append(h.probes, healthProbe{
			name:     "database",
			required: true,
			ping:     s.DB.Pool.Ping,
		})
	}
	if slices.Contains(cfg.HealthChecks.Checks, "redis") && s.Redis != nil {
		h.probes = append(h.probes, healthProbe{
			name: "redis",
			ping: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}

	return h
}

// Info describes the service.
func (h *HealthHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":    serviceDisplayName,
		"version": serviceVersion,
	})
}

// CheckHealth answers 200 when every required dependency responds and 503
// otherwise. Each probe result is listed under "checks".
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any, len(h.probes))
	healthy := true

	for _, probe := range h.probes {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		probeStart := time.Now()
		err := probe.ping(ctx)
		cancel()

		elapsed := time.Since(probeStart)
		if err != nil {
			checks[probe.name] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}
			if probe.required {
				healthy = false
			}

			logger.Error().
				Err(err).
				Str("check", probe.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthCheckError(probe.name, elapsed, err)
			continue
		}

		checks[probe.name] = map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"version":     serviceVersion,
		"checks":      checks,
	}

	if !healthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordHealthCheckError(check string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil {
		return
	}
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":       check,
			"operation":        "health_check",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}
}
