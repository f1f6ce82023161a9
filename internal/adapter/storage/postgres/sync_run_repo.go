package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const syncRunColumns = `id, connector_id, sync_type, status, trigger, started_at, completed_at,
	records_processed, errors`

// ErrRunAlreadyTerminal is returned when completing a run that is no longer running.
var ErrRunAlreadyTerminal = errors.New("sync run already terminal")

// SyncRunRepo implements ports.SyncRunRepository.
type SyncRunRepo struct {
	pool Pool
}

// NewSyncRunRepo creates a new SyncRunRepo.
func NewSyncRunRepo(pool Pool) *SyncRunRepo {
	return &SyncRunRepo{pool: pool}
}

// Create inserts a running sync run within a database transaction.
func (r *SyncRunRepo) Create(ctx context.Context, tx pgx.Tx, run *domain.SyncRun) error {
	counts, errs, err := encodeRunResult(run)
	if err != nil {
		return err
	}

	query := `INSERT INTO sync_runs (id, connector_id, sync_type, status, trigger, started_at, records_processed, errors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.Exec(ctx, query,
		run.ID, run.ConnectorID, string(run.SyncType), string(run.Status), string(run.Trigger),
		run.StartedAt, counts, errs,
	)
	if err != nil {
		return fmt.Errorf("insert sync run: %w", err)
	}
	return nil
}

// Complete writes the terminal status, counts and errors of a running run.
func (r *SyncRunRepo) Complete(ctx context.Context, tx pgx.Tx, run *domain.SyncRun) error {
	counts, errs, err := encodeRunResult(run)
	if err != nil {
		return err
	}

	query := `UPDATE sync_runs
		SET status = $2, completed_at = $3, records_processed = $4, errors = $5
		WHERE id = $1 AND status = 'running'`

	tag, err := tx.Exec(ctx, query, run.ID, string(run.Status), run.CompletedAt, counts, errs)
	if err != nil {
		return fmt.Errorf("complete sync run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("complete sync run %s: %w", run.ID, ErrRunAlreadyTerminal)
	}
	return nil
}

// GetByID fetches a sync run by its UUID.
func (r *SyncRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SyncRun, error) {
	query := `SELECT ` + syncRunColumns + ` FROM sync_runs WHERE id = $1`

	run, err := scanSyncRun(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sync run: %w", err)
	}
	return run, nil
}

// ListByConnector returns the most recent runs of a connector, newest first.
func (r *SyncRunRepo) ListByConnector(ctx context.Context, connectorID uuid.UUID, limit int) ([]domain.SyncRun, error) {
	query := `SELECT ` + syncRunColumns + ` FROM sync_runs
		WHERE connector_id = $1
		ORDER BY started_at DESC
		LIMIT $2`
	return r.list(ctx, "list sync runs", query, connectorID, limit)
}

// ListStale returns runs still marked running that started before startedBefore.
func (r *SyncRunRepo) ListStale(ctx context.Context, startedBefore time.Time, limit int) ([]domain.SyncRun, error) {
	query := `SELECT ` + syncRunColumns + ` FROM sync_runs
		WHERE status = 'running' AND started_at < $1
		ORDER BY started_at
		LIMIT $2`
	return r.list(ctx, "list stale sync runs", query, startedBefore, limit)
}

func (r *SyncRunRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.SyncRun, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.SyncRun
	for rows.Next() {
		run, err := scanSyncRun(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanSyncRun(row pgx.Row) (*domain.SyncRun, error) {
	var (
		run                       domain.SyncRun
		syncType, status, trigger string
		counts, errs              []byte
	)
	err := row.Scan(&run.ID, &run.ConnectorID, &syncType, &status, &trigger,
		&run.StartedAt, &run.CompletedAt, &counts, &errs)
	if err != nil {
		return nil, err
	}
	run.SyncType = domain.SyncType(syncType)
	run.Status = domain.SyncRunStatus(status)
	run.Trigger = domain.SyncTrigger(trigger)
	if len(counts) > 0 {
		if err := json.Unmarshal(counts, &run.RecordsProcessed); err != nil {
			return nil, fmt.Errorf("decode records_processed: %w", err)
		}
	}
	if len(errs) > 0 {
		if err := json.Unmarshal(errs, &run.Errors); err != nil {
			return nil, fmt.Errorf("decode sync errors: %w", err)
		}
	}
	return &run, nil
}

func encodeRunResult(run *domain.SyncRun) ([]byte, []byte, error) {
	counts := []byte(`{}`)
	if len(run.RecordsProcessed) > 0 {
		b, err := json.Marshal(run.RecordsProcessed)
		if err != nil {
			return nil, nil, fmt.Errorf("encode records_processed: %w", err)
		}
		counts = b
	}
	errs := []byte(`[]`)
	if len(run.Errors) > 0 {
		b, err := json.Marshal(run.Errors)
		if err != nil {
			return nil, nil, fmt.Errorf("encode sync errors: %w", err)
		}
		errs = b
	}
	return counts, errs, nil
}
