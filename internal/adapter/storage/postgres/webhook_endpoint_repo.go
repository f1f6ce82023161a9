package postgres

import (
	"context"
	"errors"
	"fmt"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const endpointColumns = `id, tenant_id, url, signing_secret_enc, subscribed_events, is_active, max_retries,
	retry_delay_seconds, success_count, failure_count, created_at, updated_at, revoked_at`

// WebhookEndpointRepo implements ports.WebhookEndpointRepository.
type WebhookEndpointRepo struct {
	pool Pool
}

// NewWebhookEndpointRepo creates a new WebhookEndpointRepo.
func NewWebhookEndpointRepo(pool Pool) *WebhookEndpointRepo {
	return &WebhookEndpointRepo{pool: pool}
}

// Create inserts a new endpoint.
func (r *WebhookEndpointRepo) Create(ctx context.Context, e *domain.OutboundWebhookEndpoint) error {
	query := `INSERT INTO outbound_webhook_endpoints
		(id, tenant_id, url, signing_secret_enc, subscribed_events, is_active, max_retries,
		 retry_delay_seconds, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.TenantID, e.URL, e.SigningSecretEnc, e.SubscribedEvents, e.IsActive,
		e.MaxRetries, e.RetryDelaySeconds, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook endpoint: %w", err)
	}
	return nil
}

// GetByID fetches an endpoint by its UUID.
func (r *WebhookEndpointRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OutboundWebhookEndpoint, error) {
	query := `SELECT ` + endpointColumns + ` FROM outbound_webhook_endpoints WHERE id = $1`

	e, err := scanEndpoint(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get webhook endpoint: %w", err)
	}
	return e, nil
}

// ListByTenant returns all endpoints of a tenant, revoked ones included.
func (r *WebhookEndpointRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.OutboundWebhookEndpoint, error) {
	query := `SELECT ` + endpointColumns + ` FROM outbound_webhook_endpoints
		WHERE tenant_id = $1
		ORDER BY created_at`
	return r.list(ctx, "list webhook endpoints", query, tenantID)
}

// ListSubscribed returns active endpoints subscribed to eventType or to "*".
func (r *WebhookEndpointRepo) ListSubscribed(ctx context.Context, tenantID uuid.UUID, eventType domain.OutboundEventType) ([]domain.OutboundWebhookEndpoint, error) {
	query := `SELECT ` + endpointColumns + ` FROM outbound_webhook_endpoints
		WHERE tenant_id = $1 AND is_active
		  AND ($2 = ANY(subscribed_events) OR '*' = ANY(subscribed_events))
		ORDER BY created_at`
	return r.list(ctx, "list subscribed endpoints", query, tenantID, string(eventType))
}

// Revoke deactivates an endpoint owned by the tenant. Returns false when no
// active endpoint matched.
func (r *WebhookEndpointRepo) Revoke(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	query := `UPDATE outbound_webhook_endpoints
		SET is_active = FALSE, revoked_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_active`

	tag, err := r.pool.Exec(ctx, query, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("revoke webhook endpoint: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementCounters bumps the success or failure counter of an endpoint.
func (r *WebhookEndpointRepo) IncrementCounters(ctx context.Context, id uuid.UUID, success bool) error {
	query := `UPDATE outbound_webhook_endpoints SET failure_count = failure_count + 1, updated_at = NOW() WHERE id = $1`
	if success {
		query = `UPDATE outbound_webhook_endpoints SET success_count = success_count + 1, updated_at = NOW() WHERE id = $1`
	}
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("increment endpoint counters: %w", err)
	}
	return nil
}

func (r *WebhookEndpointRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.OutboundWebhookEndpoint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.OutboundWebhookEndpoint
	for rows.Next() {
		e, err := scanEndpoint(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanEndpoint(row pgx.Row) (*domain.OutboundWebhookEndpoint, error) {
	var e domain.OutboundWebhookEndpoint
	err := row.Scan(&e.ID, &e.TenantID, &e.URL, &e.SigningSecretEnc, &e.SubscribedEvents,
		&e.IsActive, &e.MaxRetries, &e.RetryDelaySeconds, &e.SuccessCount, &e.FailureCount,
		&e.CreatedAt, &e.UpdatedAt, &e.RevokedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
