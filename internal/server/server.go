// Package server exposes the catalog and the scene WebSocket endpoint over
// HTTP.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/unimap/globe/internal/cache"
	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/internal/session"
)

// New builds the echo instance with all routes registered.
func New(backend catalog.Backend, rankings *cache.RankingCache, scenes *session.Manager) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())

	e.GET("/", home)
	e.GET("/healthz", health)

	api := e.Group("/api")
	registerUniversityAPI(api, backend, rankings)
	registerMentorAPI(api, backend)

	if scenes != nil {
		e.GET("/ws/scene", scenes.Handle)
	}

	return e
}

func home(c echo.Context) error {
	return c.String(http.StatusOK, "UniMap globe server")
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
