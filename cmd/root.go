package cmd

import (
	"fmt"
	"os"

	"font-helper/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where LoadConfig looks for .env.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "font-helper",
	Short: "Local font helper for the Figma web client",
	Long: `Font Helper serves locally installed fonts to the Figma web client over a
loopback HTTP server, and can mirror a shared font library from S3 storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable ISO8601 timestamps for CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing the .env file")
}
