package service

import (
	"context"
	"sync"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"

	"github.com/rs/zerolog"
)

// AsyncPublisher hands events to the dispatcher off the request path.
// Deliveries are persisted by the dispatcher, so a lost goroutine only
// delays an event until the retry worker claims it.
type AsyncPublisher struct {
	next    ports.EventPublisher
	timeout time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewAsyncPublisher wraps next.
func NewAsyncPublisher(next ports.EventPublisher, timeout time.Duration, log zerolog.Logger) *AsyncPublisher {
	return &AsyncPublisher{next: next, timeout: timeout, log: log}
}

// Publish always returns nil; dispatch errors are logged.
func (p *AsyncPublisher) Publish(ctx context.Context, evt domain.OutboundEvent) error {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		if err := p.next.Publish(ctx, evt); err != nil {
			p.log.Warn().Err(err).
				Str("event_id", evt.ID.String()).
				Str("event_type", string(evt.Type)).
				Msg("event dispatch failed")
		}
	}()
	return nil
}

// Wait blocks until in-flight publishes finish.
func (p *AsyncPublisher) Wait() {
	p.wg.Wait()
}
