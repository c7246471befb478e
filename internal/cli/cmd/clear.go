package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/driftworks/driftpaper/internal/ipc"
)

func NewClearCmd() *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear [#rrggbb]",
		Short: "Clear outputs to a solid color",
		Args:  cobra.MaximumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			req := requestFromFlags(c)
			req.Color = "#000000"
			if len(args) == 1 {
				req.Color = args[0]
			}

			if err := ipc.SendWallpaper(req); err != nil {
				log.Fatalf("Failed to clear outputs: %v", err)
			}
			log.Info("Outputs cleared", "color", req.Color)
		},
	}

	registerWallpaperFlags(clearCmd)
	return clearCmd
}
