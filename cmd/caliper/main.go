// Package main is the entry point for the caliper CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the caliper CLI.
var rootCmd = &cobra.Command{
	Use:   "caliper",
	Short: "Extract PMI from STEP files",
	Long: `caliper parses ISO 10303-21 (STEP) files and reconstructs their PMI:
dimensions, geometric tolerances, datums, surface finishes, weld symbols
and annotation notes, with 3D positions where the file provides them.

AP242 files are read semantically from the entity graph; older AP203 and
AP214 files fall back to graphical annotation reconstruction. Each data
stage is a subcommand: pmi, info, types, and watch.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./caliper.yaml or ~/.config/caliper/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("caliper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "caliper"))
		}
	}

	viper.SetEnvPrefix("CALIPER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging installs the process-wide slog logger. Logs go to stderr
// so that stdout stays clean for command output.
func setupLogging() {
	opts := &slog.HandlerOptions{Level: parseLogLevel(viper.GetString("log_level"))}

	var handler slog.Handler
	if strings.EqualFold(viper.GetString("log_format"), "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
