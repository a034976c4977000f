// Package router builds the echo instance: global middleware, the system
// routes and the versioned API.
package router

import (
	"net/http"

	"github.com/deppfellow/iban-checker/internal/handler"
	"github.com/deppfellow/iban-checker/internal/middleware"
	"github.com/deppfellow/iban-checker/internal/server"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	requestsPerSecond = 20
	requestBurst      = 40
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// the limiter logs denials, so it runs after the context logger is set
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Observe(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(rate.Limit(requestsPerSecond), requestBurst),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, s)

	v1 := router.Group("/api/v1")
	registerIbanRoutes(v1, h.Iban, middlewares.Auth)

	return router
}

func registerIbanRoutes(g *echo.Group, h *handler.IbanHandler, auth *middleware.AuthMiddleware) {
	ibans := g.Group("/iban")

	ibans.POST("/validate", handler.Handle(h.Handler, h.ValidateIban, http.StatusOK,
		func() *handler.ValidateIbanRequest { return &handler.ValidateIbanRequest{} }))
	ibans.POST("/validate_partial", handler.Handle(h.Handler, h.ValidatePartial, http.StatusOK,
		func() *handler.ValidateIbanRequest { return &handler.ValidateIbanRequest{} }))

	// stored IBANs are account data
	checks := ibans.Group("/checks", auth.RequireAuth)
	checks.GET("", handler.Handle(h.Handler, h.ListChecks, http.StatusOK,
		func() *handler.ListChecksRequest { return &handler.ListChecksRequest{} }))
	checks.GET("/:id", handler.Handle(h.Handler, h.GetCheck, http.StatusOK,
		func() *handler.GetCheckRequest { return &handler.GetCheckRequest{} }))
}
