package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	daemon "github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/driftworks/driftpaper/internal/assets"
	"github.com/driftworks/driftpaper/internal/cache"
	"github.com/driftworks/driftpaper/internal/cli/cmd/utils"
	"github.com/driftworks/driftpaper/internal/display"
	"github.com/driftworks/driftpaper/internal/effects"
	"github.com/driftworks/driftpaper/internal/ipc"
	"github.com/driftworks/driftpaper/internal/scheduler"
	"github.com/driftworks/driftpaper/internal/texture"
	"github.com/driftworks/driftpaper/internal/transition"
)

func NewStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the driftpaper daemon",
		Long:  `Starts the daemon that owns the outputs and serves the control socket.`,
		Run: func(c *cobra.Command, args []string) {
			StartDaemon(c)
		},
	}
}

// StartDaemon runs the daemon: scheduler loop on this goroutine, control
// socket on another. With --background the process forks first and the
// child carries on here with a rotating log file.
func StartDaemon(c *cobra.Command) {
	if bg, err := c.Flags().GetBool("background"); err == nil && bg {
		dctx := &daemon.Context{
			PidFileName: pidPath(),
			PidFilePerm: 0644,
			Env:         append(os.Environ(), "BACKGROUND_PROCESS=1"),
		}
		child, err := dctx.Reborn()
		if err != nil {
			log.Fatalf("Unable to run in background: %v", err)
		}
		if child != nil {
			log.Infof("driftpaper started in background, PID %d", child.Pid)
			return
		}
		defer dctx.Release()
	}

	if os.Getenv("BACKGROUND_PROCESS") == "1" {
		setupRotatingLogger()
	}
	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	log.Infof("driftpaper starting in PID %d", os.Getpid())

	if _, err := ipc.GetStatus(); err == nil {
		log.Infof("driftpaper is already running, exiting")
		os.Exit(0)
	}

	registry := transition.NewRegistry()
	if path := utils.CanonicalPath(viper.GetString("effects_file")); path != "" {
		if err := effects.Load(path, registry); err != nil {
			log.Errorf("Error loading effects file: %v", err)
		}
	}

	source := display.NewStaticSource(outputsFromConfig())

	store, err := cache.Open(cache.DefaultDir())
	if err != nil {
		log.Errorf("Wallpaper cache unavailable: %v", err)
	}

	loader := assets.NewLoader()

	var recorder scheduler.Recorder
	if store != nil {
		recorder = store
	}
	sched := scheduler.New(clockwork.NewRealClock(), source, registry, recorder)
	sched.OnAdded = initialWallpaper(store, loader)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Starting socket server")
		ipc.Start(ipc.NewDaemon(sched, loader, stop))
	}()

	if err := sched.Run(ctx); err != nil && err != context.Canceled {
		log.Errorf("Scheduler exited: %v", err)
	}

	os.Remove(ipc.SocketPath())
	log.Infof("driftpaper exited")
}

// outputConfig mirrors one [outputs.NAME] block.
type outputConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	Scale  int `mapstructure:"scale"`
}

func outputsFromConfig() []display.Info {
	var cfgs map[string]outputConfig
	if err := viper.UnmarshalKey("outputs", &cfgs); err != nil {
		log.Fatalf("Invalid outputs config: %v", err)
	}

	infos := make([]display.Info, 0, len(cfgs))
	for name, cfg := range cfgs {
		if cfg.Width < 1 || cfg.Height < 1 {
			log.Fatalf("Output %s needs a positive width and height", name)
		}
		infos = append(infos, display.Info{
			Name:   name,
			Width:  cfg.Width,
			Height: cfg.Height,
			Scale:  cfg.Scale,
		})
	}
	if len(infos) == 0 {
		log.Warn("No outputs configured, using a single 1920x1080 output")
		infos = append(infos, display.Info{Name: "default", Width: 1920, Height: 1080, Scale: 1})
	}
	return infos
}

// wallpaperConfig mirrors one [wallpaper.NAME] block. "any" is the
// fallback for outputs without their own entry.
type wallpaperConfig struct {
	Path  string `mapstructure:"path"`
	Color string `mapstructure:"color"`
}

// initialWallpaper restores the wallpaper for a freshly added output: the
// cached last wallpaper wins, then the configured one.
func initialWallpaper(store *cache.Store, loader *assets.Loader) func(display.Info) *scheduler.Command {
	return func(info display.Info) *scheduler.Command {
		label := ""
		if store != nil {
			label = store.Lookup(info.Name)
		}
		if label == "" {
			label = configuredWallpaper(info.Name)
		}
		if label == "" {
			return nil
		}

		label = utils.CanonicalPath(label)
		img, err := loader.Load(label)
		if err != nil {
			log.Errorf("Cannot restore wallpaper for %s: %v", info.Name, err)
			return nil
		}

		return &scheduler.Command{
			Outputs: []string{info.Name},
			Image:   img,
			Label:   label,
			Resize:  resizeMode(),
			Spec:    ipc.BuildSpec(nil),
		}
	}
}

func configuredWallpaper(output string) string {
	var cfgs map[string]wallpaperConfig
	if err := viper.UnmarshalKey("wallpaper", &cfgs); err != nil {
		log.Errorf("Invalid wallpaper config: %v", err)
		return ""
	}

	cfg, ok := cfgs[output]
	if !ok {
		cfg, ok = cfgs["any"]
	}
	if !ok {
		return ""
	}
	if cfg.Color != "" {
		return cfg.Color
	}
	return cfg.Path
}

func resizeMode() texture.ResizeMode {
	return texture.ParseResizeMode(viper.GetString("resize"))
}

func pidPath() string {
	runDir := os.Getenv("XDG_RUNTIME_DIR")
	if runDir == "" {
		runDir = os.TempDir()
	}
	return filepath.Join(runDir, "driftpaper.pid")
}

func setupRotatingLogger() {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "driftpaper")
	logPath := filepath.Join(logDir, "driftpaper.log")

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	log.SetLevel(log.InfoLevel)
}
