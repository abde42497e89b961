package router

import (
	"io/fs"

	"github.com/deppfellow/college-records/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints outside the records API:
// health, the docs UI and the static assets it loads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, assets fs.FS) {
	r.GET("/status", h.Health.CheckHealth)
	r.HEAD("/status", h.Health.CheckHealth)

	r.StaticFS("/static", assets)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
