package cmd

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "worldres",
	Short: "Package cache tooling for the worldres resolution layer",
	Long:  "Prefetch, inspect, and clean the on-disk package cache used by the resolver.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/worldres/config.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", "", "package cache directory (default: ~/.local/share/worldres/packages)")
	rootCmd.PersistentFlags().String("registry", "", "registry base URL")
	rootCmd.PersistentFlags().Bool("offline", false, "never touch the network")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("registry", rootCmd.PersistentFlags().Lookup("registry"))
	viper.BindPFlag("offline", rootCmd.PersistentFlags().Lookup("offline"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WORLDRES")
	viper.AutomaticEnv()
	viper.SetDefault("cache_dir", defaultCacheDir())
	viper.SetDefault("registry", "")
	viper.SetDefault("offline", false)

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "worldres")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "worldres")
	}
	return ".worldres"
}

func defaultCacheDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "worldres", "packages")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "worldres", "packages")
	}
	return filepath.Join(".worldres", "packages")
}

func getCacheDir() string { return viper.GetString("cache_dir") }

func getRegistry() string { return viper.GetString("registry") }

func isOffline() bool { return viper.GetBool("offline") }

func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if viper.GetBool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
