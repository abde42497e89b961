// Package router builds the Echo instance: global middleware in order,
// system routes and the versioned records API.
package router

import (
	"io/fs"

	"github.com/deppfellow/college-records/internal/handler"
	"github.com/deppfellow/college-records/internal/middleware"
	"github.com/deppfellow/college-records/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and routes. assets is served under /static.
func NewRouter(s *server.Server, h *handler.Handlers, assets fs.FS) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h, assets)

	v1 := router.Group("/api/v1")
	registerStudentRoutes(v1, h)
	registerSubjectRoutes(v1, h)
	registerMarkRoutes(v1, h)

	return router
}
