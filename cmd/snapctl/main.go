// Command snapctl inspects, diffs and bulk-accepts snapshot files written by
// the snapcheck snapshot package.
package main

import (
	"fmt"
	"os"
	"snapcheck/internal/config"
	"snapcheck/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "snapctl",
	Short: "Inspect, diff and accept snapshot files",
	Long: `snapctl works on the snapshot files that snapcheck assertions write next
to your tests.

Snapshots are named {name}.snapshot{ext}. A test run fails when a snapshot is
missing or changed, unless RAISE_SNAPSHOT_ERRORS is "0" or "false"; the file is
rewritten either way. Use "snapctl update" to accept every change at once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.Load(configPath)
		} else {
			cfg, err = config.FromEnv()
		}
		if err != nil {
			return err
		}

		base, err := logging.Build(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger = logging.For(base, logging.CategoryCLI)
		logger.Debug("config loaded", zap.String("flag", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $"+config.EnvConfigPath+")")

	rootCmd.AddCommand(listCmd, diffCmd, htmlCmd, updateCmd, watchCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
