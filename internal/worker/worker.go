package worker

import (
	"context"
	"sync"
	"time"

	"connector-hub/config"
	"connector-hub/internal/core/ports"

	"github.com/rs/zerolog"
)

// Task is one pass of a polling job. It returns how many items it handled.
type Task func(ctx context.Context) (int, error)

// Loop runs a Task on a fixed interval until its context is cancelled.
type Loop struct {
	name     string
	interval time.Duration
	task     Task
	log      zerolog.Logger
}

// NewLoop creates a named polling loop.
func NewLoop(name string, interval time.Duration, task Task, log zerolog.Logger) *Loop {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Loop{
		name:     name,
		interval: interval,
		task:     task,
		log:      log.With().Str("component", "worker").Str("loop", name).Logger(),
	}
}

// Name returns the loop's name.
func (l *Loop) Name() string { return l.name }

// Run executes one pass immediately and then one per interval. A failed
// pass is logged and retried on the next tick.
func (l *Loop) Run(ctx context.Context) {
	l.log.Info().Dur("interval", l.interval).Msg("worker loop started")
	defer l.log.Info().Msg("worker loop stopped")

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.RunOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce executes a single pass and reports how many items it handled.
func (l *Loop) RunOnce(ctx context.Context) int {
	start := time.Now()
	n, err := l.task(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return n
		}
		l.log.Error().Err(err).Int("handled", n).Msg("worker pass failed")
		return n
	}
	if n > 0 {
		l.log.Info().Int("handled", n).Dur("took", time.Since(start)).Msg("worker pass completed")
	}
	return n
}

// RunAll runs every loop concurrently and blocks until ctx is cancelled
// and all loops have returned.
func RunAll(ctx context.Context, loops ...*Loop) {
	var wg sync.WaitGroup
	for _, l := range loops {
		wg.Add(1)
		go func(l *Loop) {
			defer wg.Done()
			l.Run(ctx)
		}(l)
	}
	wg.Wait()
}

// NewRetryLoop re-attempts due outbound webhook deliveries.
func NewRetryLoop(dispatcher ports.WebhookDispatcher, cfg config.WebhooksConfig, log zerolog.Logger) *Loop {
	return NewLoop("webhook_retry", cfg.PollInterval, dispatcher.RetryDue, log)
}

// NewSchedulerLoop triggers syncs for connectors whose last sync is older
// than the configured interval.
func NewSchedulerLoop(syncSvc ports.SyncService, cfg config.SyncConfig, log zerolog.Logger) *Loop {
	return NewLoop("sync_scheduler", cfg.SchedulerInterval, syncSvc.RunScheduled, log)
}

// NewReaperLoop fails sync runs that have been running longer than the
// stale threshold, releasing their connectors.
func NewReaperLoop(syncSvc ports.SyncService, cfg config.SyncConfig, log zerolog.Logger) *Loop {
	return NewLoop("stale_sync_reaper", cfg.SchedulerInterval, syncSvc.RecoverStale, log)
}

// Standard returns the loops a worker process runs.
func Standard(dispatcher ports.WebhookDispatcher, syncSvc ports.SyncService, cfg *config.Config, log zerolog.Logger) []*Loop {
	return []*Loop{
		NewRetryLoop(dispatcher, cfg.Webhooks, log),
		NewSchedulerLoop(syncSvc, cfg.Sync, log),
		NewReaperLoop(syncSvc, cfg.Sync, log),
	}
}
