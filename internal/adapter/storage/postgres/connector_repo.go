package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const connectorColumns = `id, tenant_id, provider_type, external_account_id, credentials_enc,
	credentials_expires_at, status, is_enabled, settings, last_sync_at, last_sync_status,
	last_sync_error, version, created_at, updated_at`

// ConnectorRepo implements ports.ConnectorRepository.
type ConnectorRepo struct {
	pool Pool
}

// NewConnectorRepo creates a new ConnectorRepo.
func NewConnectorRepo(pool Pool) *ConnectorRepo {
	return &ConnectorRepo{pool: pool}
}

// Create inserts a new connector.
func (r *ConnectorRepo) Create(ctx context.Context, c *domain.Connector) error {
	settings, err := marshalSettings(c.Settings)
	if err != nil {
		return err
	}

	query := `INSERT INTO connectors (id, tenant_id, provider_type, external_account_id, credentials_enc,
		credentials_expires_at, status, is_enabled, settings, last_sync_status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.pool.Exec(ctx, query,
		c.ID, c.TenantID, string(c.ProviderType), c.ExternalAccountID, c.CredentialsEnc,
		c.CredentialsExpiry, string(c.Status), c.IsEnabled, settings, string(c.LastSyncStatus),
		c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert connector: %w", err)
	}
	return nil
}

// GetByID fetches a connector by its UUID.
func (r *ConnectorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Connector, error) {
	query := `SELECT ` + connectorColumns + ` FROM connectors WHERE id = $1`
	return r.getOne(ctx, "get connector by id", query, id)
}

// FindByTenantProvider returns the tenant's connector for a provider,
// preferring a live connection over older disconnected rows.
func (r *ConnectorRepo) FindByTenantProvider(ctx context.Context, tenantID uuid.UUID, provider domain.ProviderType) (*domain.Connector, error) {
	query := `SELECT ` + connectorColumns + ` FROM connectors
		WHERE tenant_id = $1 AND provider_type = $2
		ORDER BY (status <> 'disabled') DESC, updated_at DESC
		LIMIT 1`
	return r.getOne(ctx, "find connector by tenant", query, tenantID, string(provider))
}

// FindByExternalAccount resolves a live connector from the provider account id.
func (r *ConnectorRepo) FindByExternalAccount(ctx context.Context, provider domain.ProviderType, accountID string) (*domain.Connector, error) {
	query := `SELECT ` + connectorColumns + ` FROM connectors
		WHERE provider_type = $1 AND external_account_id = $2 AND status <> 'disabled'
		ORDER BY updated_at DESC
		LIMIT 1`
	return r.getOne(ctx, "find connector by account", query, string(provider), accountID)
}

// ListByTenant returns every connector owned by the tenant.
func (r *ConnectorRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Connector, error) {
	query := `SELECT ` + connectorColumns + ` FROM connectors WHERE tenant_id = $1 ORDER BY created_at`
	return r.list(ctx, "list connectors", query, tenantID)
}

// ListDueForSync returns syncable, idle connectors not synced since syncedBefore.
func (r *ConnectorRepo) ListDueForSync(ctx context.Context, syncedBefore time.Time, limit int) ([]domain.Connector, error) {
	query := `SELECT ` + connectorColumns + ` FROM connectors
		WHERE is_enabled AND status IN ('connected', 'active') AND last_sync_status <> 'running'
		  AND (last_sync_at IS NULL OR last_sync_at < $1)
		ORDER BY last_sync_at NULLS FIRST
		LIMIT $2`
	return r.list(ctx, "list connectors due for sync", query, syncedBefore, limit)
}

// UpdateConnection stores new credentials and the connection state.
func (r *ConnectorRepo) UpdateConnection(ctx context.Context, c *domain.Connector) error {
	query := `UPDATE connectors
		SET credentials_enc = $2, credentials_expires_at = $3, external_account_id = $4,
		    status = $5, is_enabled = $6, version = version + 1, updated_at = $7
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.CredentialsEnc, c.CredentialsExpiry, c.ExternalAccountID,
		string(c.Status), c.IsEnabled, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update connector connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("connector %s not found", c.ID)
	}
	return nil
}

// UpdateCredentials replaces credentials after a token refresh.
func (r *ConnectorRepo) UpdateCredentials(ctx context.Context, id uuid.UUID, credentialsEnc string, expiry *time.Time) error {
	query := `UPDATE connectors
		SET credentials_enc = $2, credentials_expires_at = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, credentialsEnc, expiry); err != nil {
		return fmt.Errorf("update connector credentials: %w", err)
	}
	return nil
}

// SetEnabled toggles the connector's enabled flag.
func (r *ConnectorRepo) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	query := `UPDATE connectors SET is_enabled = $2, version = version + 1, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, enabled); err != nil {
		return fmt.Errorf("set connector enabled: %w", err)
	}
	return nil
}

// Disconnect soft-deletes the connector and wipes its credentials.
func (r *ConnectorRepo) Disconnect(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE connectors
		SET status = 'disabled', is_enabled = FALSE, credentials_enc = '', credentials_expires_at = NULL,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("disconnect connector: %w", err)
	}
	return nil
}

// TryStartSync marks the connector running inside tx. The WHERE clause is the
// single-flight guard: concurrent callers race on the same row and only one
// gets it back. last_sync_at is read under the row lock, so the sync type is
// decided from the state the claim actually saw.
func (r *ConnectorRepo) TryStartSync(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*ports.SyncClaim, error) {
	query := `UPDATE connectors
		SET last_sync_status = 'running', version = version + 1, updated_at = NOW()
		WHERE id = $1 AND is_enabled AND status IN ('connected', 'active') AND last_sync_status <> 'running'
		RETURNING last_sync_at`

	var claim ports.SyncClaim
	if err := tx.QueryRow(ctx, query, id).Scan(&claim.LastSyncAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("start connector sync: %w", err)
	}
	return &claim, nil
}

// FinishSync records the terminal sync state on a running connector. A
// connector disconnected while the run was in flight keeps status disabled.
func (r *ConnectorRepo) FinishSync(ctx context.Context, tx pgx.Tx, id uuid.UUID, f ports.SyncFinish) (domain.ConnectorStatus, error) {
	query := `UPDATE connectors
		SET last_sync_status = $2, last_sync_error = $3,
		    last_sync_at = COALESCE($4::timestamptz, last_sync_at),
		    status = CASE WHEN status = 'disabled' THEN status ELSE COALESCE(NULLIF($5::text, ''), status) END,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1 AND last_sync_status = 'running'
		RETURNING status`

	var status string
	err := tx.QueryRow(ctx, query, id, string(f.Status), f.Error, f.SyncedAt, string(f.ConnectorStatus)).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("connector %s has no running sync", id)
		}
		return "", fmt.Errorf("finish connector sync: %w", err)
	}
	return domain.ConnectorStatus(status), nil
}

func (r *ConnectorRepo) getOne(ctx context.Context, op, query string, args ...any) (*domain.Connector, error) {
	c, err := scanConnector(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (r *ConnectorRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.Connector, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.Connector
	for rows.Next() {
		c, err := scanConnector(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanConnector(row pgx.Row) (*domain.Connector, error) {
	var (
		c                                domain.Connector
		provider, status, lastSyncStatus string
		settings                         []byte
	)
	err := row.Scan(
		&c.ID, &c.TenantID, &provider, &c.ExternalAccountID, &c.CredentialsEnc,
		&c.CredentialsExpiry, &status, &c.IsEnabled, &settings, &c.LastSyncAt, &lastSyncStatus,
		&c.LastSyncError, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ProviderType = domain.ProviderType(provider)
	c.Status = domain.ConnectorStatus(status)
	c.LastSyncStatus = domain.SyncStatus(lastSyncStatus)
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &c.Settings); err != nil {
			return nil, fmt.Errorf("decode connector settings: %w", err)
		}
	}
	return &c, nil
}

func marshalSettings(s map[string]any) ([]byte, error) {
	if s == nil {
		return []byte(`{}`), nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode connector settings: %w", err)
	}
	return b, nil
}
