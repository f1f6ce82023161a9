package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const inboundEventColumns = `id, provider, event_type, provider_event_id, connector_id, tenant_id, payload,
	status, action, attempts, last_error, received_at, processed_at`

// InboundEventRepo implements ports.InboundWebhookRepository.
type InboundEventRepo struct {
	pool Pool
}

// NewInboundEventRepo creates a new InboundEventRepo.
func NewInboundEventRepo(pool Pool) *InboundEventRepo {
	return &InboundEventRepo{pool: pool}
}

// Claim inserts the event as processing. On a (provider, provider_event_id)
// conflict the existing row is taken over only if it failed or its
// processing claim is older than staleBefore.
func (r *InboundEventRepo) Claim(ctx context.Context, evt *domain.InboundWebhookEvent, staleBefore time.Time) (bool, error) {
	query := `INSERT INTO inbound_webhook_events
		(id, provider, event_type, provider_event_id, connector_id, tenant_id, payload, status, attempts, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'processing', 1, $8)
		ON CONFLICT (provider, provider_event_id) DO UPDATE
		SET status = 'processing',
		    attempts = inbound_webhook_events.attempts + 1,
		    connector_id = EXCLUDED.connector_id,
		    tenant_id = EXCLUDED.tenant_id,
		    payload = EXCLUDED.payload,
		    received_at = EXCLUDED.received_at,
		    last_error = NULL
		WHERE inbound_webhook_events.status = 'failed'
		   OR (inbound_webhook_events.status IN ('received', 'processing')
		       AND inbound_webhook_events.received_at < $9)
		RETURNING id, attempts`

	var (
		id       uuid.UUID
		attempts int
	)
	err := r.pool.QueryRow(ctx, query,
		evt.ID, string(evt.Provider), evt.EventType, evt.ProviderEventID,
		evt.ConnectorID, evt.TenantID, []byte(evt.Payload), evt.ReceivedAt, staleBefore,
	).Scan(&id, &attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("claim inbound event: %w", err)
	}

	evt.ID = id
	evt.Attempts = attempts
	evt.Status = domain.InboundStatusProcessing
	return true, nil
}

// GetByProviderEventID fetches an event by its provider-assigned id.
func (r *InboundEventRepo) GetByProviderEventID(ctx context.Context, provider domain.ProviderType, providerEventID string) (*domain.InboundWebhookEvent, error) {
	query := `SELECT ` + inboundEventColumns + ` FROM inbound_webhook_events
		WHERE provider = $1 AND provider_event_id = $2`

	evt, err := scanInboundEvent(r.pool.QueryRow(ctx, query, string(provider), providerEventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inbound event: %w", err)
	}
	return evt, nil
}

// MarkCompleted records a successful outcome.
func (r *InboundEventRepo) MarkCompleted(ctx context.Context, id uuid.UUID, action domain.WebhookAction) error {
	query := `UPDATE inbound_webhook_events
		SET status = 'completed', action = $2, last_error = NULL, processed_at = NOW()
		WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, string(action)); err != nil {
		return fmt.Errorf("complete inbound event: %w", err)
	}
	return nil
}

// MarkFailed releases the claim so a provider redelivery can retry.
func (r *InboundEventRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	query := `UPDATE inbound_webhook_events SET status = 'failed', last_error = $2 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, message); err != nil {
		return fmt.Errorf("fail inbound event: %w", err)
	}
	return nil
}

// ListByTenant returns the tenant's most recent events.
func (r *InboundEventRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.InboundWebhookEvent, error) {
	query := `SELECT ` + inboundEventColumns + ` FROM inbound_webhook_events
		WHERE tenant_id = $1
		ORDER BY received_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list inbound events: %w", err)
	}
	defer rows.Close()

	var out []domain.InboundWebhookEvent
	for rows.Next() {
		evt, err := scanInboundEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inbound event: %w", err)
		}
		out = append(out, *evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inbound events: %w", err)
	}
	return out, nil
}

func scanInboundEvent(row pgx.Row) (*domain.InboundWebhookEvent, error) {
	var (
		evt                      domain.InboundWebhookEvent
		provider, status, action string
		payload                  []byte
	)
	err := row.Scan(&evt.ID, &provider, &evt.EventType, &evt.ProviderEventID, &evt.ConnectorID,
		&evt.TenantID, &payload, &status, &action, &evt.Attempts, &evt.LastError,
		&evt.ReceivedAt, &evt.ProcessedAt)
	if err != nil {
		return nil, err
	}
	evt.Provider = domain.ProviderType(provider)
	evt.Status = domain.InboundEventStatus(status)
	evt.Action = domain.WebhookAction(action)
	evt.Payload = payload
	return &evt, nil
}
