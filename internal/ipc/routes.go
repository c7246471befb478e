package ipc

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, d *Daemon) {
	e.GET("/status", statusHandler(d))
	e.GET("/outputs", outputsHandler(d))
	e.POST("/wallpaper", wallpaperHandler(d))
	e.POST("/stop", stopHandler(d))
}
