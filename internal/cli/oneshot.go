package cli

import (
	"fmt"

	pgStorage "connector-hub/internal/adapter/storage/postgres"
	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions, build appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <connector-id>",
		Short: "Run one sync for a connector and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			connectorID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid connector id %q: %w", args[0], err)
			}

			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			a, err := build(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			run, err := a.SyncSvc.Trigger(ctx, uuid.Nil, connectorID, domain.SyncTriggerCLI)
			if run != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "sync %s %s: %d records\n", run.ID, run.Status, run.RecordsProcessed.Total())
				for _, c := range run.RecordsProcessed {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %d\n", c.Entity, c.Count)
				}
			}
			return err
		},
	}
}

// NewRetryCommand creates the retry command.
func NewRetryCommand(rootOpts *RootOptions, build appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Run one pass of due outbound webhook deliveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			a, err := build(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Dispatcher.RetryDue(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "attempted %d deliveries\n", n)
			return nil
		},
	}
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			n, err := pgStorage.Migrate(ctx, pool, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", n)
			return nil
		},
	}
}
