package ipc

import (
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/driftworks/driftpaper/internal/middleware"
)

// SocketPath is the daemon's control socket, under XDG_RUNTIME_DIR when
// available.
func SocketPath() string {
	sockDir := os.Getenv("XDG_RUNTIME_DIR")
	if sockDir == "" {
		sockDir = os.TempDir()
	}
	return sockDir + "/driftpaper.sock"
}

// Start serves the control API on the unix socket. It blocks; run it on
// its own goroutine next to the scheduler loop.
func Start(d *Daemon) {
	sockPath := SocketPath()
	if _, err := os.Stat(sockPath); err == nil {
		_ = os.Remove(sockPath)
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Listener = listener

	e.Use(middleware.CharmLog())

	RegisterRoutes(e, d)

	server := new(http.Server)
	if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Socket server error: %v", err)
	}
}
