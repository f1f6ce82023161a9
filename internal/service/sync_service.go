package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connector-hub/config"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	recentRunsLimit  = 10
	abandonedMessage = "sync run abandoned before completion"
)

// SyncServiceImpl implements ports.SyncService. A run moves the connector
// idle -> running -> completed|failed; both transitions are single
// transactions and the start is a conditional update, so two triggers can
// never both win.
type SyncServiceImpl struct {
	connRepo   ports.ConnectorRepository
	runRepo    ports.SyncRunRepository
	transactor ports.DBTransactor
	credSvc    ports.CredentialService
	registry   ports.ProviderRegistry
	records    ports.RecordStore
	publisher  ports.EventPublisher
	cfg        config.SyncConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewSyncService creates a new SyncServiceImpl.
func NewSyncService(
	connRepo ports.ConnectorRepository,
	runRepo ports.SyncRunRepository,
	transactor ports.DBTransactor,
	credSvc ports.CredentialService,
	registry ports.ProviderRegistry,
	records ports.RecordStore,
	publisher ports.EventPublisher,
	cfg config.SyncConfig,
	log zerolog.Logger,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		connRepo:   connRepo,
		runRepo:    runRepo,
		transactor: transactor,
		credSvc:    credSvc,
		registry:   registry,
		records:    records,
		publisher:  publisher,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
		log:        logger.Component(log, "sync"),
	}
}

// Trigger runs one sync to completion. A failed run is returned together
// with a CON_004 error whose details carry the run's errors.
func (s *SyncServiceImpl) Trigger(ctx context.Context, tenantID, connectorID uuid.UUID, trigger domain.SyncTrigger) (*domain.SyncRun, error) {
	conn, err := loadTenantConnector(ctx, s.connRepo, tenantID, connectorID)
	if err != nil {
		return nil, err
	}
	if conn.IsSyncRunning() {
		return nil, apperror.ErrSyncInProgress()
	}
	if reason := conn.SyncBlocker(); reason != "" {
		return nil, apperror.ErrConnectorNotSyncable(reason)
	}
	adapter, err := s.registry.Sync(conn.ProviderType)
	if err != nil {
		return nil, toAppError(err)
	}

	run, err := s.start(ctx, conn, trigger)
	if err != nil {
		return nil, err
	}
	log := s.log.With().
		Str("connector_id", conn.ID.String()).
		Str("sync_run_id", run.ID.String()).
		Str("provider", string(conn.ProviderType)).
		Str("sync_type", string(run.SyncType)).
		Logger()
	log.Info().Str("trigger", string(trigger)).Msg("sync started")

	result, syncErr := s.execute(ctx, conn, run, adapter)

	// The outcome is persisted even when the caller has gone away.
	finishCtx := context.WithoutCancel(ctx)
	if err := s.finish(finishCtx, conn, run, result, syncErr); err != nil {
		log.Error().Err(err).Msg("failed to record sync outcome")
		return nil, apperror.InternalError(err)
	}

	evtType := domain.EventSyncCompleted
	if syncErr != nil {
		evtType = domain.EventSyncFailed
		log.Warn().Err(syncErr).Str("kind", domain.ErrorKind(syncErr)).Msg("sync failed")
	} else {
		log.Info().Int("records", run.RecordsProcessed.Total()).Msg("sync completed")
	}
	if err := s.publisher.Publish(finishCtx, domain.OutboundEvent{
		ID:         uuid.New(),
		Type:       evtType,
		TenantID:   conn.TenantID,
		OccurredAt: s.now(),
		Data:       syncEventData(conn, run),
	}); err != nil {
		log.Warn().Err(err).Msg("failed to publish sync event")
	}

	if syncErr != nil {
		return run, apperror.ErrSyncFailed(syncErr.Error()).WithDetails(map[string]any{
			"sync_id":           run.ID,
			"records_processed": run.RecordsProcessed,
			"errors":            run.Errors,
		})
	}
	return run, nil
}

// start claims the connector and opens the ledger entry in one transaction.
func (s *SyncServiceImpl) start(ctx context.Context, conn *domain.Connector, trigger domain.SyncTrigger) (*domain.SyncRun, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	claim, err := s.connRepo.TryStartSync(ctx, dbTx, conn.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("claim connector: %w", err))
	}
	if claim == nil {
		// Lost the race, or the connector changed since it was read.
		return nil, s.rejection(ctx, conn.ID)
	}
	// A run that finished between the read and the claim moved last_sync_at.
	conn.LastSyncAt = claim.LastSyncAt

	run := &domain.SyncRun{
		ID:               uuid.New(),
		ConnectorID:      conn.ID,
		SyncType:         conn.NextSyncType(),
		Status:           domain.SyncRunStatusRunning,
		Trigger:          trigger,
		StartedAt:        s.now(),
		RecordsProcessed: domain.EntityCounts{},
		Errors:           []domain.SyncErrorDetail{},
	}
	if err := s.runRepo.Create(ctx, dbTx, run); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create sync run: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return run, nil
}

func (s *SyncServiceImpl) rejection(ctx context.Context, id uuid.UUID) error {
	current, err := s.connRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get connector: %w", err))
	}
	if current == nil {
		return apperror.ErrConnectorNotFound()
	}
	if reason := current.SyncBlocker(); reason != "" {
		return apperror.ErrConnectorNotSyncable(reason)
	}
	return apperror.ErrSyncInProgress()
}

// execute resolves credentials and runs the adapter under the sync timeout.
func (s *SyncServiceImpl) execute(ctx context.Context, conn *domain.Connector, run *domain.SyncRun, adapter ports.ProviderAdapter) (*domain.SyncResult, error) {
	creds, err := s.credSvc.Resolve(ctx, conn)
	if err != nil {
		return &domain.SyncResult{}, err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	w := &mirrorWriter{
		store: s.records,
		scope: domain.RecordScope{TenantID: conn.TenantID, ConnectorID: conn.ID, Provider: conn.ProviderType},
	}

	var result *domain.SyncResult
	if run.SyncType == domain.SyncTypeIncremental && conn.LastSyncAt != nil {
		result, err = adapter.IncrementalSync(ctx, creds, *conn.LastSyncAt, w)
	} else {
		result, err = adapter.FullSync(ctx, creds, w)
	}
	if result == nil {
		result = &domain.SyncResult{}
	}
	return result, err
}

// finish writes the terminal run and releases the connector together.
func (s *SyncServiceImpl) finish(ctx context.Context, conn *domain.Connector, run *domain.SyncRun, result *domain.SyncResult, syncErr error) error {
	now := s.now()
	run.CompletedAt = &now
	run.RecordsProcessed = result.RecordsProcessed
	if run.RecordsProcessed == nil {
		run.RecordsProcessed = domain.EntityCounts{}
	}
	run.Errors = result.Errors
	if run.Errors == nil {
		run.Errors = []domain.SyncErrorDetail{}
	}

	finish := ports.SyncFinish{}
	if syncErr == nil {
		run.Status = domain.SyncRunStatusCompleted
		// The next incremental window opens at this run's start, so records
		// changed upstream while it was in flight are picked up again.
		syncedAt := run.StartedAt
		finish.Status = domain.SyncStatusCompleted
		finish.SyncedAt = &syncedAt
		finish.ConnectorStatus = domain.ConnectorStatusActive
	} else {
		run.Status = domain.SyncRunStatusFailed
		if len(run.Errors) == 0 {
			run.Errors = append(run.Errors, domain.SyncErrorDetail{
				Type:    domain.ErrorKind(syncErr),
				Message: syncErr.Error(),
			})
		}
		msg := syncErr.Error()
		finish.Status = domain.SyncStatusFailed
		finish.Error = &msg
		var authErr *domain.AuthenticationError
		if errors.As(syncErr, &authErr) {
			// Credentials need a reconnect before the next run.
			finish.ConnectorStatus = domain.ConnectorStatusError
		}
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.runRepo.Complete(ctx, dbTx, run); err != nil {
		return fmt.Errorf("complete sync run: %w", err)
	}
	status, err := s.connRepo.FinishSync(ctx, dbTx, conn.ID, finish)
	if err != nil {
		return fmt.Errorf("release connector: %w", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	conn.LastSyncStatus = finish.Status
	conn.LastSyncError = finish.Error
	if finish.SyncedAt != nil {
		conn.LastSyncAt = finish.SyncedAt
	}
	conn.Status = status
	return nil
}

// Status returns the connector with its most recent runs, latest first.
func (s *SyncServiceImpl) Status(ctx context.Context, tenantID, connectorID uuid.UUID) (*ports.SyncStatusView, error) {
	conn, err := loadTenantConnector(ctx, s.connRepo, tenantID, connectorID)
	if err != nil {
		return nil, err
	}
	runs, err := s.runRepo.ListByConnector(ctx, conn.ID, recentRunsLimit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list sync runs: %w", err))
	}
	return &ports.SyncStatusView{Connector: conn, Runs: runs}, nil
}

// RunScheduled syncs connectors whose last sync is older than the interval.
// It returns how many runs it executed, failed runs included.
func (s *SyncServiceImpl) RunScheduled(ctx context.Context) (int, error) {
	due, err := s.connRepo.ListDueForSync(ctx, s.now().Add(-s.cfg.Interval), s.cfg.SchedulerBatch)
	if err != nil {
		return 0, fmt.Errorf("list due connectors: %w", err)
	}

	ran := 0
	for _, conn := range due {
		if ctx.Err() != nil {
			return ran, ctx.Err()
		}
		run, err := s.Trigger(ctx, uuid.Nil, conn.ID, domain.SyncTriggerSchedule)
		if run != nil {
			ran++
			continue
		}
		if err != nil {
			s.log.Debug().Err(err).Str("connector_id", conn.ID.String()).Msg("scheduled sync skipped")
		}
	}
	return ran, nil
}

// RecoverStale fails runs stuck in running past the stale threshold and
// releases their connectors, e.g. after a crash mid-run.
func (s *SyncServiceImpl) RecoverStale(ctx context.Context) (int, error) {
	stale, err := s.runRepo.ListStale(ctx, s.now().Add(-s.cfg.StaleAfter), s.cfg.SchedulerBatch)
	if err != nil {
		return 0, fmt.Errorf("list stale runs: %w", err)
	}

	recovered := 0
	for i := range stale {
		run := &stale[i]
		if err := s.abandon(ctx, run); err != nil {
			s.log.Warn().Err(err).Str("sync_run_id", run.ID.String()).Msg("failed to recover stale sync run")
			continue
		}
		recovered++
		s.log.Warn().
			Str("sync_run_id", run.ID.String()).
			Str("connector_id", run.ConnectorID.String()).
			Time("started_at", run.StartedAt).
			Msg("stale sync run failed")
	}
	return recovered, nil
}

func (s *SyncServiceImpl) abandon(ctx context.Context, run *domain.SyncRun) error {
	now := s.now()
	msg := abandonedMessage
	run.Status = domain.SyncRunStatusFailed
	run.CompletedAt = &now
	run.Errors = append(run.Errors, domain.SyncErrorDetail{Type: domain.ErrorKindTimeout, Message: msg})

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.runRepo.Complete(ctx, dbTx, run); err != nil {
		return err
	}
	if _, err := s.connRepo.FinishSync(ctx, dbTx, run.ConnectorID, ports.SyncFinish{
		Status: domain.SyncStatusFailed,
		Error:  &msg,
	}); err != nil {
		return err
	}
	return dbTx.Commit(ctx)
}

// mirrorWriter binds record writes to one connector.
type mirrorWriter struct {
	store ports.RecordStore
	scope domain.RecordScope
}

func (w *mirrorWriter) Write(ctx context.Context, entity string, records []domain.Record) (int, error) {
	return w.store.UpsertRecords(ctx, w.scope, entity, records)
}

func syncEventData(conn *domain.Connector, run *domain.SyncRun) map[string]any {
	return map[string]any{
		"connector_id":      conn.ID,
		"provider":          conn.ProviderType,
		"sync_id":           run.ID,
		"sync_type":         run.SyncType,
		"status":            run.Status,
		"records_processed": run.RecordsProcessed,
		"errors":            run.Errors,
	}
}
