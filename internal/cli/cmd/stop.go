package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/driftworks/driftpaper/internal/ipc"
)

func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the driftpaper daemon",
		Run: func(c *cobra.Command, args []string) {
			if err := ipc.SendStop(); err != nil {
				log.Fatalf("Failed to send 'stop' command: %v", err)
			}
			log.Info("Stop command sent")
		},
	}
}
