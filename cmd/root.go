package cmd

import (
	"fmt"
	"os"

	"manifest-resolver/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// envDir is the directory LoadConfig reads .env from.
var envDir string

// RootCmd is the manifest-resolver command; it does nothing without a subcommand.
var RootCmd = &cobra.Command{
	Use:   "manifest-resolver",
	Short: "Destiny manifest item resolver",
	Long: `Manifest Resolver serves hydrated item definitions from a local, versioned
manifest snapshot: stat names, fixed perks and random perk columns, plus item search by name.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs RootCmd and exits non-zero when a command fails.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console output with readable timestamps, since this is reported to a terminal.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		l.Error("Command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory containing the .env file")
}
