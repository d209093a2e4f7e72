// Package main is the entry point for the awekas CLI.
//
// The connector can be run either as a library (SDK) or as a standalone
// binary with YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	awekas serve -c config.yaml    # Poll and serve the state API
//	awekas fetch -c config.yaml    # Poll once and print the states
//	awekas validate -c config.yaml # Validate configuration
//	awekas version                 # Show version info
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "awekas",
	Short: "AWEKAS weather station connector",
	Long: `awekas polls the AWEKAS API for the current conditions of one weather
station and keeps every reported value as a named state.

Requests are made every 30 seconds (never faster than every 15). After a
transport failure, an exceeded quota, an inactive AWEKAS plus subscription or
an invalid key the connector slows down to one request every 5 minutes until
the first clean report.

Quick start:
  1. Create a config file (awekas.yaml)
  2. Run: awekas serve -c awekas.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  api_key: ${AWEKAS_API_KEY}
  language: de
  request_interval: 30s`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		return loadEnvFile(envFile)
	},
}

// loadEnvFile loads variables from a dotenv file without overriding the
// environment. An empty path is a no-op.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// newLogger creates a JSON logger for CLI use.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

// cmdLogger builds the logger selected by --log-level.
func cmdLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	return newLogger(cmd.ErrOrStderr(), level)
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this awekas binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "awekas %s\n", version)
		_, _ = fmt.Fprintf(out, "  commit: %s\n", commit)
		_, _ = fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "load environment variables from a dotenv file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
