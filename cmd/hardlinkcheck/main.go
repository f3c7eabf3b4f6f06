package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olickqc/hardlinkcheck/cmd"
	"github.com/olickqc/hardlinkcheck/pkg/config"
	"github.com/olickqc/hardlinkcheck/pkg/scanner"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "hardlinkcheck",
		Short: "A CLI hardlink audit tool",
		Long: `A CLI application that scans a directory tree and reports files that are not hardlinked.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Parse persistent flags
	rootCmd.PersistentFlags().StringVarP(&cmd.FlagConfigFile, "config", "c", cmd.FlagConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVarP(&cmd.FlagLogFile, "log", "l", cmd.FlagLogFile, "Log file")
	rootCmd.PersistentFlags().CountVarP(&cmd.FlagLogLevel, "verbose", "v", "Verbose level")

	rootCmd.PersistentFlags().BoolVar(&cmd.FlagDryRun, "dry-run", false, "Dry run mode")

	rootCmd.AddCommand(cmd.CheckCommand())
	rootCmd.AddCommand(cmd.UpdateCommand())
	rootCmd.AddCommand(cmd.VersionCommand())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, scanner.ErrNonHardlinkedFound) && !errors.Is(err, context.Canceled) {
			fmt.Println(err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.Is(err, config.ErrMissingKeys):
		return 4
	case errors.Is(err, config.ErrInvalidFormat):
		return 3
	case errors.Is(err, config.ErrNotFound), errors.Is(err, scanner.ErrScanPathNotFound):
		return 2
	default:
		return 1
	}
}
