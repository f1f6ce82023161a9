package provider

import (
	"context"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
)

// Emit hands one page of records to the writer.
type Emit func(records []domain.Record) error

// Step pulls one entity, emitting records page by page.
type Step struct {
	Entity string
	Run    func(ctx context.Context, emit Emit) error
}

// RunSteps executes steps sequentially in the given order. The first failing
// step ends the run: its partial count is kept, later steps are not
// attempted, and the error is returned as a *domain.SyncError next to the
// partial result.
func RunSteps(ctx context.Context, provider domain.ProviderType, steps []Step, w ports.EntityWriter) (*domain.SyncResult, error) {
	result := &domain.SyncResult{StartedAt: time.Now().UTC()}

	for _, step := range steps {
		processed := 0
		err := ctx.Err()
		if err == nil {
			err = step.Run(ctx, func(records []domain.Record) error {
				if len(records) == 0 {
					return nil
				}
				if _, err := w.Write(ctx, step.Entity, records); err != nil {
					return err
				}
				processed += len(records)
				return nil
			})
		}
		result.RecordsProcessed.Set(step.Entity, processed)

		if err != nil {
			syncErr := &domain.SyncError{Provider: provider, Entity: step.Entity, Err: err}
			result.Errors = append(result.Errors, domain.SyncErrorDetail{
				Type:    domain.ErrorKind(err),
				Entity:  step.Entity,
				Message: err.Error(),
			})
			result.CompletedAt = time.Now().UTC()
			return result, syncErr
		}
	}

	result.CompletedAt = time.Now().UTC()
	return result, nil
}
