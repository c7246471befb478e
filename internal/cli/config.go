package cli

import (
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("driftpaper")
		viper.SetConfigType("toml")
		if viper.GetString("config") != "" {
			viper.SetConfigFile(viper.GetString("config"))
		} else {
			viper.AddConfigPath("$HOME/.config/driftpaper")
			viper.AddConfigPath("/etc/xdg/driftpaper")
		}
	}

	viper.SetDefault("transition_type", "simple")
	viper.SetDefault("transition_duration", 3000)
	viper.SetDefault("transition_fps", 60)
	viper.SetDefault("bezier", "ease")
	viper.SetDefault("resize", "crop")
	viper.SetDefault("effects_file", "")
	viper.SetDefault("debug", false)

	viper.AutomaticEnv() // read environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn("No config file found, using defaults")
		} else {
			log.Fatalf("Error reading config: %v", err)
		}
		return
	}

	// Transition defaults are read from viper per request, so edits to the
	// config file take effect on the next wallpaper without a restart.
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Config reloaded", "file", e.Name)
	})
	viper.WatchConfig()
}
