package ports

import (
	"context"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ConnectorRepository defines persistence operations for connectors.
// Lookups return (nil, nil) when nothing matches.
type ConnectorRepository interface {
	Create(ctx context.Context, c *domain.Connector) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Connector, error)
	FindByTenantProvider(ctx context.Context, tenantID uuid.UUID, provider domain.ProviderType) (*domain.Connector, error)
	// FindByExternalAccount resolves the connector behind a shared webhook
	// endpoint from the provider's own account identifier.
	FindByExternalAccount(ctx context.Context, provider domain.ProviderType, accountID string) (*domain.Connector, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Connector, error)
	// ListDueForSync returns syncable connectors whose last sync is older than
	// syncedBefore or that never synced.
	ListDueForSync(ctx context.Context, syncedBefore time.Time, limit int) ([]domain.Connector, error)
	// UpdateConnection stores freshly exchanged credentials and reconnects.
	UpdateConnection(ctx context.Context, c *domain.Connector) error
	UpdateCredentials(ctx context.Context, id uuid.UUID, credentialsEnc string, expiry *time.Time) error
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
	// Disconnect soft-deletes: status disabled, not enabled, credentials wiped.
	Disconnect(ctx context.Context, id uuid.UUID) error

	// TryStartSync atomically marks the connector running when it is enabled,
	// connected or active, and not already running. Returns nil when the
	// conditional update matched no row.
	TryStartSync(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*SyncClaim, error)
	// FinishSync releases a running connector and returns its resulting
	// status. A disabled connector stays disabled.
	FinishSync(ctx context.Context, tx pgx.Tx, id uuid.UUID, f SyncFinish) (domain.ConnectorStatus, error)
}

// SyncClaim is the connector state read by the claiming update.
type SyncClaim struct {
	LastSyncAt *time.Time
}

// SyncFinish is the connector half of a terminal sync transition.
type SyncFinish struct {
	Status          domain.SyncStatus
	Error           *string
	SyncedAt        *time.Time             // set on success only
	ConnectorStatus domain.ConnectorStatus // empty keeps the current status
}

// SyncRunRepository is the sync ledger.
type SyncRunRepository interface {
	Create(ctx context.Context, tx pgx.Tx, run *domain.SyncRun) error
	// Complete writes the terminal state; it fails when the run is already terminal.
	Complete(ctx context.Context, tx pgx.Tx, run *domain.SyncRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SyncRun, error)
	ListByConnector(ctx context.Context, connectorID uuid.UUID, limit int) ([]domain.SyncRun, error)
	ListStale(ctx context.Context, startedBefore time.Time, limit int) ([]domain.SyncRun, error)
}

// InboundWebhookRepository stores received provider events.
type InboundWebhookRepository interface {
	// Claim inserts evt as processing, or takes over an existing row that is
	// failed or whose processing claim started before staleBefore. Returns
	// false when another delivery owns or already completed the event. On
	// success evt.ID and evt.Attempts reflect the stored row.
	Claim(ctx context.Context, evt *domain.InboundWebhookEvent, staleBefore time.Time) (bool, error)
	GetByProviderEventID(ctx context.Context, provider domain.ProviderType, providerEventID string) (*domain.InboundWebhookEvent, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, action domain.WebhookAction) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.InboundWebhookEvent, error)
}

// WebhookEndpointRepository stores tenant-registered outbound endpoints.
type WebhookEndpointRepository interface {
	Create(ctx context.Context, e *domain.OutboundWebhookEndpoint) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OutboundWebhookEndpoint, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.OutboundWebhookEndpoint, error)
	// ListSubscribed returns active endpoints of the tenant subscribed to eventType.
	ListSubscribed(ctx context.Context, tenantID uuid.UUID, eventType domain.OutboundEventType) ([]domain.OutboundWebhookEndpoint, error)
	Revoke(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
	IncrementCounters(ctx context.Context, id uuid.UUID, success bool) error
}

// WebhookDeliveryRepository is the outbound delivery ledger.
type WebhookDeliveryRepository interface {
	Create(ctx context.Context, d *domain.OutboundWebhookDelivery) error
	Update(ctx context.Context, d *domain.OutboundWebhookDelivery) error
	// ClaimDue leases up to limit deliveries that are retrying and due, or
	// pending with an expired lease, by pushing next_retry_at to now+lease.
	ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]domain.OutboundWebhookDelivery, error)
	ListByEndpoint(ctx context.Context, endpointID uuid.UUID, limit int) ([]domain.OutboundWebhookDelivery, error)
}

// AuditRepository persists audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// RecordStore is the local mirror of provider records.
type RecordStore interface {
	// UpsertRecords writes records keyed by provider id. A stored record is
	// only replaced by one with an equal or newer UpdatedAt. Returns the
	// number of records accepted.
	UpsertRecords(ctx context.Context, scope domain.RecordScope, entity string, records []domain.Record) (int, error)
	DeleteRecord(ctx context.Context, scope domain.RecordScope, entity, externalID string, at time.Time) error
	CountRecords(ctx context.Context, connectorID uuid.UUID, entity string) (int, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// HealthChecker is a dependency checked by GET /health.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
