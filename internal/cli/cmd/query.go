package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/driftworks/driftpaper/internal/cli/cmd/utils"
	"github.com/driftworks/driftpaper/internal/ipc"
)

func NewQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "List outputs and their wallpapers",
		Run: func(c *cobra.Command, args []string) {
			outputs, err := ipc.GetOutputs()
			if err != nil {
				log.Fatalf("Failed to query outputs: %v", err)
			}

			utils.PrintJSONColored(outputs)
		},
	}
}
