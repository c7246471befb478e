package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/driftworks/driftpaper"
	"github.com/driftworks/driftpaper/internal/cli/cmd"
	"github.com/driftworks/driftpaper/internal/cli/cmd/utils"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "driftpaper",
	Short: "A wallpaper daemon with animated transitions",
	Long: `Driftpaper is a wallpaper daemon that animates the change between
wallpapers with configurable, scriptable transitions.`,
	Run: func(c *cobra.Command, args []string) {
		if v, err := c.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		if v, err := c.Flags().GetBool("installconfig"); err == nil && v {
			utils.InstallDefaultConfig()
			return
		}

		babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
		yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
		if v, err := c.Flags().GetBool("version"); err == nil && v {
			log.Infof("%v version %v © 2026 %v",
				babyBlue.Render("driftpaper"),
				green.Render(strings.Trim(driftpaper.Version, "\n\r ")),
				yellow.Render("driftworks"))
			return
		}

		// Bare invocation runs the daemon, same as `driftpaper start`.
		cmd.StartDaemon(c)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)
	RegisterFlags(rootCmd)

	rootCmd.AddCommand(cmd.NewStartCmd())
	rootCmd.AddCommand(cmd.NewImgCmd())
	rootCmd.AddCommand(cmd.NewClearCmd())
	rootCmd.AddCommand(cmd.NewQueryCmd())
	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewStopCmd())
	rootCmd.AddCommand(cmd.NewGenManCmd(rootCmd))
}
