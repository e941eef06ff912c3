// Package cmd contains the CLI commands for the ldcheck application.
package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

// debugLog holds the global --debug flag state.
var debugLog bool

func init() {
	rootCmd = NewRootCmd()
}

// NewRootCmd creates a new root command instance with the real
// validation pipeline wired in. Useful for testing to get a fresh
// command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ldcheck",
		Short: "Validate domain registration files changed in a pull request",
		Long: "ldcheck resolves the file paths a pull request touched, checks them\n" +
			"against the domain registry rules, and writes a Markdown report with\n" +
			"a pass/fail exit status for CI.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVar(&debugLog, "debug", defaultSettings.Debug, "Enable debug logging to stderr")

	cmd.AddCommand(NewCheckCmd(newPipeline()))

	return cmd
}

// configureLogging installs a text handler on stderr as the default
// logger. The --debug flag only lowers the log level; it never changes
// report content or the exit status.
func configureLogging(w io.Writer) {
	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// ExecuteContext runs the root command with the given context.
// This enables graceful shutdown via context cancellation (e.g., on SIGINT).
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
