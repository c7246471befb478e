package ipc

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/driftworks/driftpaper"
)

// GET /status
func statusHandler(d *Daemon) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, StatusResponse{
			Status:  "ok",
			Message: "driftpaper is running",
			Version: strings.Trim(driftpaper.Version, "\n\r "),
			PID:     os.Getpid(),
			Socket:  SocketPath(),
			Config:  viper.ConfigFileUsed(),
		}, "  ")
	}
}

// GET /outputs
func outputsHandler(d *Daemon) echo.HandlerFunc {
	return func(c echo.Context) error {
		statuses, err := d.Outputs(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		}
		return c.JSONPretty(http.StatusOK, statuses, "  ")
	}
}

// POST /wallpaper
func wallpaperHandler(d *Daemon) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req WallpaperRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid wallpaper request"})
		}

		if err := d.SetWallpaper(c.Request().Context(), req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// POST /stop
func stopHandler(d *Daemon) echo.HandlerFunc {
	return func(c echo.Context) error {
		d.Stop()
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
