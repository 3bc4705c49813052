// Package cli wires the solarcalc commands.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/solarcalc/internal/config"
	"github.com/rshade/solarcalc/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationSkipConfig marks commands that must run even when the config
// file cannot be loaded.
const annotationSkipConfig = "solarcalc/skip-config"

type configKey struct{}

// NewRootCmd creates the root Cobra command. Without a subcommand it starts
// the interactive calculator.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "solarcalc",
		Short:   "Estimate rooftop solar production for an address",
		Long:    "solarcalc: resolve an address, describe the panels and get PVGIS yearly and monthly production estimates",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,

		// main prints errors.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: runCalculator,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.solarcalc/config.yaml)")
	cmd.AddCommand(NewTUICmd(), NewGeocodeCmd(), NewEstimateCmd(), newConfigCmd(), NewCacheCmd())

	return cmd
}

const rootCmdExample = `  # Start the interactive calculator
  solarcalc

  # List address candidates
  solarcalc geocode "Champ de Mars, Paris"

  # Estimate a 6 kWp east-facing system headlessly
  solarcalc estimate --address "Champ de Mars, Paris" --peak-power 6 --orientation 90

  # Estimate by coordinates and print JSON
  solarcalc estimate --lat 48.8566 --lon 2.3522 --output json

  # Write the default configuration
  solarcalc config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}

// loadConfig reads the --config file, or the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if _, skip := cmd.Annotations[annotationSkipConfig]; skip {
		cfg = config.New()
		if path != "" {
			cfg.SetConfigPath(path)
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("loading configuration: %w", err)
}

// configFromContext returns the config loaded by the root pre-run, or the
// defaults when none was loaded.
func configFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.New()
}
