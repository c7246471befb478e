package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/driftworks/driftpaper/internal/cli/cmd/utils"
	"github.com/driftworks/driftpaper/internal/ipc"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get driftpaper status",
		Long:  `Returns the current status of the driftpaper process.`,
		Run: func(c *cobra.Command, args []string) {
			response, err := ipc.GetStatus()
			if err != nil {
				log.Errorf("Error fetching status: %v", err)
				return
			}

			utils.PrintJSONColored(response)
		},
	}
}
