package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/awekas"
	"github.com/jpalmerr/awekas/config"
)

// validateCmd validates a config file without starting the connector.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an AWEKAS connector configuration file without polling.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  awekas validate -c config.yaml
  awekas validate --env-file .env --config /etc/awekas/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := config.BuildEndpoint(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	key := "set"
	if cfg.APIKey == "" {
		key = "missing (polls will fail until a key is set)"
	}
	language := cfg.Language
	if language == "" {
		language = awekas.SystemLanguage()
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Config is valid!\n")
	_, _ = fmt.Fprintf(out, "  API key:          %s\n", key)
	_, _ = fmt.Fprintf(out, "  Language:         %s (labels %s)\n",
		awekas.ResolveRequestLanguage(language), awekas.ResolveLabelLanguage(language))
	_, _ = fmt.Fprintf(out, "  Request interval: %s\n", cfg.RequestInterval.Duration())
	_, _ = fmt.Fprintf(out, "  Backoff interval: %s\n", cfg.BackoffInterval.Duration())
	_, _ = fmt.Fprintf(out, "  Store:            %s\n", cfg.Store.Type)
	if cfg.DisableServer {
		_, _ = fmt.Fprintf(out, "  Server:           disabled\n")
	} else {
		_, _ = fmt.Fprintf(out, "  Server:           port %d\n", cfg.Port)
	}

	return nil
}
