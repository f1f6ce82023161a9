package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"connector-hub/internal/worker"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions, build appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the background loops until interrupted",
		Long: `Run the webhook retry worker, the sync scheduler and the stale-run
reaper until SIGINT or SIGTERM.

Example:
  chub-worker run --config ./config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(commandContext(cmd))
			defer cancel()

			a, err := build(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			go func() {
				select {
				case sig := <-sigChan:
					log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
					cancel()
				case <-ctx.Done():
				}
			}()

			worker.RunAll(ctx, worker.Standard(a.Dispatcher, a.SyncSvc, cfg, log)...)
			return nil
		},
	}
}
