// Package cli implements the httptape command-line interface for
// inspecting and maintaining tape directories.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/httptape/httptape/pkg/logging"
)

var (
	tapeDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "httptape",
	Short: "Inspect and maintain recorded HTTP transactions",
	Long: `httptape records outbound HTTP request/response pairs to a tape
directory and replays them without touching the network. This CLI inspects
and maintains those tape directories.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tapeDir, "dir", "tapes", "Tape directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func newLogger() *slog.Logger {
	return logging.New(logging.Config{Level: logging.ParseLevel(logLevel)})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
