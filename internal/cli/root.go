// Package cli implements the connector-hub worker command line.
package cli

import (
	"context"
	"fmt"

	"connector-hub/config"
	"connector-hub/internal/app"
	"connector-hub/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// appFactory builds the application; tests replace it.
type appFactory func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app.App, error)

// NewRootCommand creates the root command for the worker CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "chub-worker",
		Short:         "Connector hub background worker",
		Long:          "Runs scheduled syncs, outbound webhook retries and stale-run recovery, plus one-shot maintenance commands.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config file (default ./config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override log.level")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts, app.New))
	cmd.AddCommand(NewSyncCommand(opts, app.New))
	cmd.AddCommand(NewRetryCommand(opts, app.New))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

// load reads and validates configuration and builds the logger.
func (o *RootOptions) load() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid config: %w", err)
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Pretty), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
