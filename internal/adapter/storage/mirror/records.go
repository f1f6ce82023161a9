package mirror

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
)

// Placeholders are numbered in order of first use so SQLite binds them the
// same way PostgreSQL does.
const upsertSQL = `INSERT INTO sync_records
	(tenant_id, connector_id, provider, entity, external_id, data, source_updated_at, deleted_at, synced_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8)
	ON CONFLICT (connector_id, entity, external_id) DO UPDATE
	SET data = excluded.data,
	    source_updated_at = excluded.source_updated_at,
	    deleted_at = NULL,
	    synced_at = excluded.synced_at
	WHERE sync_records.source_updated_at <= excluded.source_updated_at`

const deleteSQL = `INSERT INTO sync_records
	(tenant_id, connector_id, provider, entity, external_id, data, source_updated_at, deleted_at, synced_at)
	VALUES ($1, $2, $3, $4, $5, '{}', $6, $6, $7)
	ON CONFLICT (connector_id, entity, external_id) DO UPDATE
	SET deleted_at = excluded.deleted_at,
	    source_updated_at = excluded.source_updated_at,
	    synced_at = excluded.synced_at
	WHERE sync_records.source_updated_at <= excluded.source_updated_at`

// UpsertRecords writes records in one transaction. A stored record is only
// replaced by one whose UpdatedAt is equal or newer; the return value counts
// the records that were written.
func (s *Store) UpsertRecords(ctx context.Context, scope domain.RecordScope, entity string, records []domain.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin mirror upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare mirror upsert: %w", err)
	}
	defer stmt.Close()

	syncedAt := s.now().UTC().UnixMicro()
	written := 0
	for _, rec := range records {
		if rec.ExternalID == "" {
			return 0, fmt.Errorf("mirror upsert %s: record without external id", entity)
		}
		data := rec.Data
		if len(data) == 0 {
			data = json.RawMessage(`{}`)
		}
		res, err := stmt.ExecContext(ctx,
			scope.TenantID.String(), scope.ConnectorID.String(), string(scope.Provider), entity,
			rec.ExternalID, string(data), rec.UpdatedAt.UTC().UnixMicro(), syncedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("mirror upsert %s/%s: %w", entity, rec.ExternalID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("mirror upsert rows: %w", err)
		}
		if n > 0 {
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit mirror upsert: %w", err)
	}
	return written, nil
}

// DeleteRecord tombstones a record. A delete older than the stored version
// is ignored, and a delete for an unseen record leaves a tombstone so a late
// stale upsert cannot resurrect it.
func (s *Store) DeleteRecord(ctx context.Context, scope domain.RecordScope, entity, externalID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, deleteSQL,
		scope.TenantID.String(), scope.ConnectorID.String(), string(scope.Provider), entity,
		externalID, at.UTC().UnixMicro(), s.now().UTC().UnixMicro(),
	)
	if err != nil {
		return fmt.Errorf("mirror delete %s/%s: %w", entity, externalID, err)
	}
	return nil
}

// CountRecords counts live records of one entity.
func (s *Store) CountRecords(ctx context.Context, connectorID uuid.UUID, entity string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sync_records WHERE connector_id = $1 AND entity = $2 AND deleted_at IS NULL`,
		connectorID.String(), entity,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("mirror count: %w", err)
	}
	return n, nil
}

// GetRecord returns a live record, or nil when absent or deleted.
func (s *Store) GetRecord(ctx context.Context, connectorID uuid.UUID, entity, externalID string) (*domain.Record, error) {
	var (
		data    string
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, source_updated_at FROM sync_records
		 WHERE connector_id = $1 AND entity = $2 AND external_id = $3 AND deleted_at IS NULL`,
		connectorID.String(), entity, externalID,
	).Scan(&data, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mirror get %s/%s: %w", entity, externalID, err)
	}
	return &domain.Record{
		ExternalID: externalID,
		Data:       json.RawMessage(data),
		UpdatedAt:  time.UnixMicro(updated).UTC(),
	}, nil
}
