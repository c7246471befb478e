// Package middleware carries the echo middleware shared by the IPC server.
package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// CharmLog logs each request through the daemon's structured logger instead
// of echo's own format.
func CharmLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			log.Debug("ipc request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration", time.Since(start),
			)
			return err
		}
	}
}
