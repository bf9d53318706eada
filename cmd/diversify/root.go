package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aristath/diversifier/internal/config"
	"github.com/aristath/diversifier/internal/di"
	"github.com/aristath/diversifier/pkg/logger"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	logLevel        string
	compositions    string
	classifications string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "diversify",
		Short: "Portfolio diversification scoring",
		Long: `Score how diversified a portfolio is, decompose index funds into their
geographic and sectoral exposure, and inspect how identifiers are classified.

Examples:
  diversify score -f positions.yaml
  diversify score -f positions.yaml --look-through --max-position 15
  diversify look-through -f positions.yaml
  diversify classify VWCE.DE
  diversify composition SXR8.DE`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.compositions, "compositions", "", "Composition registry YAML (default: embedded)")
	cmd.PersistentFlags().StringVar(&opts.classifications, "classifications", "", "Classification dictionary YAML (default: embedded)")

	cmd.AddCommand(
		newScoreCmd(opts),
		newLookThroughCmd(opts),
		newClassifyCmd(opts),
		newCompositionCmd(opts),
	)

	return cmd
}

// container loads configuration, applies flag overrides and wires the engine.
// Logs go to stderr so stdout carries only the JSON result.
func (o *rootOptions) container(cmd *cobra.Command) (*di.Container, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.compositions != "" {
		cfg.CompositionsFile = o.compositions
	}
	if o.classifications != "" {
		cfg.ClassificationsFile = o.classifications
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(logger.Config{Level: o.logLevel, Output: cmd.ErrOrStderr()})

	container, err := di.Wire(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return container, cfg, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
