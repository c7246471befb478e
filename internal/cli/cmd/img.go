package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/driftworks/driftpaper/internal/cli/cmd/utils"
	"github.com/driftworks/driftpaper/internal/ipc"
)

func NewImgCmd() *cobra.Command {
	imgCmd := &cobra.Command{
		Use:   "img [path-or-url]",
		Short: "Set a wallpaper",
		Long: `Sets a wallpaper from a local file, a directory (one image picked at
random) or an http(s) URL, optionally overriding the configured transition.`,
		Args: cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			req := requestFromFlags(c)

			source := args[0]
			switch {
			case source == "-":
				path, err := spoolStdin()
				if err != nil {
					log.Fatalf("Failed to read stdin: %v", err)
				}
				req.Path = path
			case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
				req.URL = source
			default:
				req.Path = utils.CanonicalPath(source)
			}

			if err := ipc.SendWallpaper(req); err != nil {
				log.Fatalf("Failed to set wallpaper: %v", err)
			}
			log.Info("Wallpaper set", "source", source)
		},
	}

	registerWallpaperFlags(imgCmd)
	return imgCmd
}

// spoolStdin writes piped image data to a file the daemon can open; the
// request payload only ever carries a path.
func spoolStdin() (string, error) {
	f, err := os.CreateTemp("", "driftpaper-stdin-*")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, os.Stdin); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func registerWallpaperFlags(c *cobra.Command) {
	c.Flags().StringSliceP("output", "o", nil, "Outputs to address (default all)")
	c.Flags().String("resize", "", "Resize mode: no, crop, fit, stretch")
	c.Flags().StringP("transition", "t", "", "Transition type for this change")
	c.Flags().Uint64("duration", 0, "Transition duration in milliseconds")
	c.Flags().Uint64("fps", 0, "Transition frame rate cap")
	c.Flags().String("bezier", "", "Easing curve for this change")
	c.Flags().StringSlice("enabled", nil, "Kinds the random transition may pick")
}

// requestFromFlags builds the wallpaper payload shared by img and clear.
func requestFromFlags(c *cobra.Command) ipc.WallpaperRequest {
	req := ipc.WallpaperRequest{}
	req.Outputs, _ = c.Flags().GetStringSlice("output")
	req.Resize, _ = c.Flags().GetString("resize")

	override := &ipc.TransitionOverride{}
	changed := false
	if v, _ := c.Flags().GetString("transition"); v != "" {
		override.Type = v
		changed = true
	}
	if c.Flags().Changed("duration") {
		v, _ := c.Flags().GetUint64("duration")
		override.Duration = &v
		changed = true
	}
	if c.Flags().Changed("fps") {
		v, _ := c.Flags().GetUint64("fps")
		override.FPS = &v
		changed = true
	}
	if v, _ := c.Flags().GetString("bezier"); v != "" {
		override.Bezier = v
		changed = true
	}
	if v, _ := c.Flags().GetStringSlice("enabled"); len(v) > 0 {
		override.Enabled = v
		changed = true
	}
	if changed {
		req.Transition = override
	}
	return req
}
