package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hissain/fastrep/internal/handler"
)

func NewRouter(
	logHandler *handler.LogHandler,
	reportHandler *handler.ReportHandler,
	settingsHandler *handler.SettingsHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	api := e.Group("/api")
	logHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	settingsHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}
