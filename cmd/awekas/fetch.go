package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/awekas"
	"github.com/jpalmerr/awekas/config"
)

// fetchCmd polls once and prints the resulting states.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Poll the station once and print the states",
	Long: `Poll the AWEKAS API once and print every state as JSON.

The HTTP server is not started. States are still mirrored to Redis when the
config selects the redis store. The command fails unless the poll succeeds.

Example:
  awekas fetch -c config.yaml
  awekas fetch -c config.yaml --language it`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	fetchCmd.Flags().String("language", "", "override the configured language")
	_ = fetchCmd.MarkFlagRequired("config")
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger, err := cmdLogger(cmd)
	if err != nil {
		return err
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if lang, _ := cmd.Flags().GetString("language"); lang != "" {
		cfg.Language = lang
	}

	opts, closeStore, err := config.BuildOptions(cfg)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}
	defer func() { _ = closeStore() }()
	opts = append(opts, awekas.WithoutServer(), awekas.WithLogger(logger))

	conn, err := awekas.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := conn.PollOnce(ctx)
	if res.Outcome != awekas.OutcomeSuccess {
		if res.Error != nil {
			return fmt.Errorf("poll failed (%s): %w", res.Outcome, res.Error)
		}
		return fmt.Errorf("poll failed (%s)", res.Outcome)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(fetchOutput(conn.States()))
}

type fetchedState struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// fetchOutput lists the states in definition order with their units.
func fetchOutput(states []awekas.State) []fetchedState {
	byName := make(map[string]awekas.State, len(states))
	for _, st := range states {
		byName[st.Name] = st
	}

	out := make([]fetchedState, 0, len(states))
	for _, def := range awekas.StateDefinitions() {
		st, ok := byName[def.Name]
		if !ok {
			continue
		}
		out = append(out, fetchedState{Name: def.Name, Value: st.Value, Unit: def.Unit})
	}
	return out
}
