package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Rows are stored by value and copied out so callers never share memory
// with the store, the way a database round trip behaves.

// --- In-Memory Connector Repo ---

type inMemoryConnectorRepo struct {
	mu         sync.RWMutex
	connectors map[uuid.UUID]domain.Connector
}

func newInMemoryConnectorRepo() *inMemoryConnectorRepo {
	return &inMemoryConnectorRepo{connectors: make(map[uuid.UUID]domain.Connector)}
}

func (r *inMemoryConnectorRepo) Create(ctx context.Context, c *domain.Connector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.connectors[c.ID]; ok {
		return fmt.Errorf("connector %s already exists", c.ID)
	}
	r.connectors[c.ID] = *c
	return nil
}

func (r *inMemoryConnectorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connectors[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *inMemoryConnectorRepo) FindByTenantProvider(ctx context.Context, tenantID uuid.UUID, provider domain.ProviderType) (*domain.Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best *domain.Connector
	for _, c := range r.connectors {
		if c.TenantID != tenantID || c.ProviderType != provider {
			continue
		}
		c := c
		if best == nil || preferConnector(&c, best) {
			best = &c
		}
	}
	return best, nil
}

// preferConnector orders live connections first, then the most recently updated.
func preferConnector(a, b *domain.Connector) bool {
	aLive, bLive := a.Status != domain.ConnectorStatusDisabled, b.Status != domain.ConnectorStatusDisabled
	if aLive != bLive {
		return aLive
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}

func (r *inMemoryConnectorRepo) FindByExternalAccount(ctx context.Context, provider domain.ProviderType, accountID string) (*domain.Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best *domain.Connector
	for _, c := range r.connectors {
		if c.ProviderType != provider || c.ExternalAccountID != accountID || c.Status == domain.ConnectorStatusDisabled {
			continue
		}
		c := c
		if best == nil || c.UpdatedAt.After(best.UpdatedAt) {
			best = &c
		}
	}
	return best, nil
}

func (r *inMemoryConnectorRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Connector
	for _, c := range r.connectors {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemoryConnectorRepo) ListDueForSync(ctx context.Context, syncedBefore time.Time, limit int) ([]domain.Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Connector
	for _, c := range r.connectors {
		if c.SyncBlocker() != "" || c.IsSyncRunning() {
			continue
		}
		if c.LastSyncAt == nil || c.LastSyncAt.Before(syncedBefore) {
			out = append(out, c)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryConnectorRepo) UpdateConnection(ctx context.Context, c *domain.Connector) error {
	return r.update(c.ID, func(stored *domain.Connector) {
		stored.CredentialsEnc = c.CredentialsEnc
		stored.CredentialsExpiry = c.CredentialsExpiry
		stored.ExternalAccountID = c.ExternalAccountID
		stored.Status = c.Status
		stored.IsEnabled = c.IsEnabled
		stored.UpdatedAt = c.UpdatedAt
	})
}

func (r *inMemoryConnectorRepo) UpdateCredentials(ctx context.Context, id uuid.UUID, credentialsEnc string, expiry *time.Time) error {
	return r.update(id, func(stored *domain.Connector) {
		stored.CredentialsEnc = credentialsEnc
		stored.CredentialsExpiry = expiry
	})
}

func (r *inMemoryConnectorRepo) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	return r.update(id, func(stored *domain.Connector) { stored.IsEnabled = enabled })
}

func (r *inMemoryConnectorRepo) Disconnect(ctx context.Context, id uuid.UUID) error {
	return r.update(id, func(stored *domain.Connector) {
		stored.Status = domain.ConnectorStatusDisabled
		stored.IsEnabled = false
		stored.CredentialsEnc = ""
		stored.CredentialsExpiry = nil
	})
}

func (r *inMemoryConnectorRepo) TryStartSync(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*ports.SyncClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connectors[id]
	if !ok || c.SyncBlocker() != "" || c.IsSyncRunning() {
		return nil, nil
	}
	c.LastSyncStatus = domain.SyncStatusRunning
	c.Version++
	c.UpdatedAt = time.Now().UTC()
	r.connectors[id] = c
	return &ports.SyncClaim{LastSyncAt: c.LastSyncAt}, nil
}

func (r *inMemoryConnectorRepo) FinishSync(ctx context.Context, tx pgx.Tx, id uuid.UUID, f ports.SyncFinish) (domain.ConnectorStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connectors[id]
	if !ok || !c.IsSyncRunning() {
		return "", fmt.Errorf("connector %s has no running sync", id)
	}
	c.LastSyncStatus = f.Status
	c.LastSyncError = f.Error
	if f.SyncedAt != nil {
		c.LastSyncAt = f.SyncedAt
	}
	if f.ConnectorStatus != "" && c.Status != domain.ConnectorStatusDisabled {
		c.Status = f.ConnectorStatus
	}
	c.Version++
	c.UpdatedAt = time.Now().UTC()
	r.connectors[id] = c
	return c.Status, nil
}

func (r *inMemoryConnectorRepo) update(id uuid.UUID, fn func(*domain.Connector)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connectors[id]
	if !ok {
		return fmt.Errorf("connector %s not found", id)
	}
	fn(&c)
	c.Version++
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	r.connectors[id] = c
	return nil
}

// --- In-Memory Sync Run Repo ---

type inMemorySyncRunRepo struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]domain.SyncRun
}

func newInMemorySyncRunRepo() *inMemorySyncRunRepo {
	return &inMemorySyncRunRepo{runs: make(map[uuid.UUID]domain.SyncRun)}
}

func (r *inMemorySyncRunRepo) Create(ctx context.Context, tx pgx.Tx, run *domain.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = *run
	return nil
}

func (r *inMemorySyncRunRepo) Complete(ctx context.Context, tx pgx.Tx, run *domain.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.runs[run.ID]
	if !ok || stored.IsTerminal() {
		return fmt.Errorf("complete sync run %s: already terminal", run.ID)
	}
	r.runs[run.ID] = *run
	return nil
}

func (r *inMemorySyncRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SyncRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

func (r *inMemorySyncRunRepo) ListByConnector(ctx context.Context, connectorID uuid.UUID, limit int) ([]domain.SyncRun, error) {
	return r.filter(limit, func(run domain.SyncRun) bool { return run.ConnectorID == connectorID }, true), nil
}

func (r *inMemorySyncRunRepo) ListStale(ctx context.Context, startedBefore time.Time, limit int) ([]domain.SyncRun, error) {
	return r.filter(limit, func(run domain.SyncRun) bool {
		return run.Status == domain.SyncRunStatusRunning && run.StartedAt.Before(startedBefore)
	}, false), nil
}

func (r *inMemorySyncRunRepo) filter(limit int, keep func(domain.SyncRun) bool, newestFirst bool) []domain.SyncRun {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.SyncRun
	for _, run := range r.runs {
		if keep(run) {
			out = append(out, run)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *inMemorySyncRunRepo) count(status domain.SyncRunStatus) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, run := range r.runs {
		if run.Status == status {
			n++
		}
	}
	return n
}

// --- In-Memory Inbound Webhook Repo ---

type inMemoryInboundRepo struct {
	mu     sync.RWMutex
	events map[string]domain.InboundWebhookEvent // provider/providerEventID
}

func newInMemoryInboundRepo() *inMemoryInboundRepo {
	return &inMemoryInboundRepo{events: make(map[string]domain.InboundWebhookEvent)}
}

func inboundKey(p domain.ProviderType, id string) string { return string(p) + "/" + id }

func (r *inMemoryInboundRepo) Claim(ctx context.Context, evt *domain.InboundWebhookEvent, staleBefore time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := inboundKey(evt.Provider, evt.ProviderEventID)
	existing, ok := r.events[key]
	if !ok {
		evt.Status = domain.InboundStatusProcessing
		evt.Attempts = 1
		r.events[key] = *evt
		return true, nil
	}

	takeover := existing.Status == domain.InboundStatusFailed ||
		((existing.Status == domain.InboundStatusReceived || existing.Status == domain.InboundStatusProcessing) &&
			existing.ReceivedAt.Before(staleBefore))
	if !takeover {
		return false, nil
	}
	existing.Status = domain.InboundStatusProcessing
	existing.Attempts++
	existing.ConnectorID = evt.ConnectorID
	existing.TenantID = evt.TenantID
	existing.Payload = evt.Payload
	existing.ReceivedAt = evt.ReceivedAt
	existing.LastError = nil
	r.events[key] = existing

	evt.ID = existing.ID
	evt.Attempts = existing.Attempts
	evt.Status = existing.Status
	return true, nil
}

func (r *inMemoryInboundRepo) GetByProviderEventID(ctx context.Context, provider domain.ProviderType, providerEventID string) (*domain.InboundWebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	evt, ok := r.events[inboundKey(provider, providerEventID)]
	if !ok {
		return nil, nil
	}
	return &evt, nil
}

func (r *inMemoryInboundRepo) MarkCompleted(ctx context.Context, id uuid.UUID, action domain.WebhookAction) error {
	return r.update(id, func(evt *domain.InboundWebhookEvent) {
		now := time.Now().UTC()
		evt.Status = domain.InboundStatusCompleted
		evt.Action = action
		evt.LastError = nil
		evt.ProcessedAt = &now
	})
}

func (r *inMemoryInboundRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	return r.update(id, func(evt *domain.InboundWebhookEvent) {
		evt.Status = domain.InboundStatusFailed
		evt.LastError = &message
	})
}

func (r *inMemoryInboundRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.InboundWebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.InboundWebhookEvent
	for _, evt := range r.events {
		if evt.TenantID != nil && *evt.TenantID == tenantID {
			out = append(out, evt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryInboundRepo) update(id uuid.UUID, fn func(*domain.InboundWebhookEvent)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, evt := range r.events {
		if evt.ID == id {
			fn(&evt)
			r.events[key] = evt
			return nil
		}
	}
	return fmt.Errorf("inbound event %s not found", id)
}

// --- In-Memory Webhook Endpoint Repo ---

type inMemoryEndpointRepo struct {
	mu        sync.RWMutex
	endpoints map[uuid.UUID]domain.OutboundWebhookEndpoint
}

func newInMemoryEndpointRepo() *inMemoryEndpointRepo {
	return &inMemoryEndpointRepo{endpoints: make(map[uuid.UUID]domain.OutboundWebhookEndpoint)}
}

func (r *inMemoryEndpointRepo) Create(ctx context.Context, e *domain.OutboundWebhookEndpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpoints[e.ID] = *e
	return nil
}

func (r *inMemoryEndpointRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OutboundWebhookEndpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.endpoints[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *inMemoryEndpointRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.OutboundWebhookEndpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.OutboundWebhookEndpoint
	for _, e := range r.endpoints {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemoryEndpointRepo) ListSubscribed(ctx context.Context, tenantID uuid.UUID, eventType domain.OutboundEventType) ([]domain.OutboundWebhookEndpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.OutboundWebhookEndpoint
	for _, e := range r.endpoints {
		if e.TenantID == tenantID && e.IsActive && e.Subscribes(eventType) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *inMemoryEndpointRepo) Revoke(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.endpoints[id]
	if !ok || e.TenantID != tenantID || !e.IsActive {
		return false, nil
	}
	now := time.Now().UTC()
	e.IsActive = false
	e.RevokedAt = &now
	e.UpdatedAt = now
	r.endpoints[id] = e
	return true, nil
}

func (r *inMemoryEndpointRepo) IncrementCounters(ctx context.Context, id uuid.UUID, success bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.endpoints[id]
	if !ok {
		return fmt.Errorf("endpoint %s not found", id)
	}
	if success {
		e.SuccessCount++
	} else {
		e.FailureCount++
	}
	r.endpoints[id] = e
	return nil
}

// --- In-Memory Webhook Delivery Repo ---

type inMemoryDeliveryRepo struct {
	mu         sync.RWMutex
	deliveries map[uuid.UUID]domain.OutboundWebhookDelivery
}

func newInMemoryDeliveryRepo() *inMemoryDeliveryRepo {
	return &inMemoryDeliveryRepo{deliveries: make(map[uuid.UUID]domain.OutboundWebhookDelivery)}
}

func (r *inMemoryDeliveryRepo) Create(ctx context.Context, d *domain.OutboundWebhookDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries[d.ID] = *d
	return nil
}

func (r *inMemoryDeliveryRepo) Update(ctx context.Context, d *domain.OutboundWebhookDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deliveries[d.ID]; !ok {
		return fmt.Errorf("delivery %s not found", d.ID)
	}
	r.deliveries[d.ID] = *d
	return nil
}

func (r *inMemoryDeliveryRepo) ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]domain.OutboundWebhookDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []domain.OutboundWebhookDelivery
	for _, d := range r.deliveries {
		if d.IsTerminal() || d.NextRetryAt == nil || d.NextRetryAt.After(now) {
			continue
		}
		due = append(due, d)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].NextRetryAt.Before(*due[j].NextRetryAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	leased := now.Add(lease)
	for i := range due {
		due[i].NextRetryAt = &leased
		due[i].UpdatedAt = now
		r.deliveries[due[i].ID] = due[i]
	}
	return due, nil
}

func (r *inMemoryDeliveryRepo) ListByEndpoint(ctx context.Context, endpointID uuid.UUID, limit int) ([]domain.OutboundWebhookDelivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.OutboundWebhookDelivery
	for _, d := range r.deliveries {
		if d.EndpointID == endpointID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu   sync.Mutex
	logs []domain.AuditLog
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *inMemoryAuditRepo) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, len(r.logs))
	for i, l := range r.logs {
		out[i] = l.Action
	}
	return out
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }

var (
	_ ports.ConnectorRepository       = (*inMemoryConnectorRepo)(nil)
	_ ports.SyncRunRepository         = (*inMemorySyncRunRepo)(nil)
	_ ports.InboundWebhookRepository  = (*inMemoryInboundRepo)(nil)
	_ ports.WebhookEndpointRepository = (*inMemoryEndpointRepo)(nil)
	_ ports.WebhookDeliveryRepository = (*inMemoryDeliveryRepo)(nil)
	_ ports.AuditRepository           = (*inMemoryAuditRepo)(nil)
	_ ports.DBTransactor              = (*inMemoryTransactor)(nil)
)
