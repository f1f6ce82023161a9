package postgres

import (
	"context"
	"fmt"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const deliveryColumns = `id, endpoint_id, tenant_id, event_type, event_id, payload, status, attempts,
	last_attempt_at, next_retry_at, response_status_code, error_message, created_at, updated_at`

// WebhookDeliveryRepo implements ports.WebhookDeliveryRepository.
type WebhookDeliveryRepo struct {
	pool Pool
}

// NewWebhookDeliveryRepo creates a new WebhookDeliveryRepo.
func NewWebhookDeliveryRepo(pool Pool) *WebhookDeliveryRepo {
	return &WebhookDeliveryRepo{pool: pool}
}

// Create inserts a delivery row.
func (r *WebhookDeliveryRepo) Create(ctx context.Context, d *domain.OutboundWebhookDelivery) error {
	query := `INSERT INTO outbound_webhook_deliveries
		(id, endpoint_id, tenant_id, event_type, event_id, payload, status, attempts,
		 next_retry_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.EndpointID, d.TenantID, d.EventType, d.EventID, []byte(d.Payload),
		string(d.Status), d.Attempts, d.NextRetryAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook delivery: %w", err)
	}
	return nil
}

// Update persists the outcome of a delivery attempt.
func (r *WebhookDeliveryRepo) Update(ctx context.Context, d *domain.OutboundWebhookDelivery) error {
	d.UpdatedAt = time.Now().UTC()
	query := `UPDATE outbound_webhook_deliveries
		SET status = $2, attempts = $3, last_attempt_at = $4, next_retry_at = $5,
		    response_status_code = $6, error_message = $7, updated_at = $8
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		d.ID, string(d.Status), d.Attempts, d.LastAttemptAt, d.NextRetryAt,
		d.ResponseStatusCode, d.ErrorMessage, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update webhook delivery: %w", err)
	}
	return nil
}

// ClaimDue leases due deliveries by moving next_retry_at past the lease, so
// concurrent workers skip them. Rows locked by another claim are skipped.
func (r *WebhookDeliveryRepo) ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]domain.OutboundWebhookDelivery, error) {
	query := `UPDATE outbound_webhook_deliveries
		SET next_retry_at = $2, updated_at = $1
		WHERE id IN (
			SELECT id FROM outbound_webhook_deliveries
			WHERE status IN ('pending', 'retrying') AND next_retry_at <= $1
			ORDER BY next_retry_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + deliveryColumns

	return r.list(ctx, "claim due deliveries", query, now, now.Add(lease), limit)
}

// ListByEndpoint returns the endpoint's most recent deliveries.
func (r *WebhookDeliveryRepo) ListByEndpoint(ctx context.Context, endpointID uuid.UUID, limit int) ([]domain.OutboundWebhookDelivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM outbound_webhook_deliveries
		WHERE endpoint_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	return r.list(ctx, "list webhook deliveries", query, endpointID, limit)
}

func (r *WebhookDeliveryRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.OutboundWebhookDelivery, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.OutboundWebhookDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanDelivery(row pgx.Row) (*domain.OutboundWebhookDelivery, error) {
	var (
		d       domain.OutboundWebhookDelivery
		status  string
		payload []byte
	)
	err := row.Scan(&d.ID, &d.EndpointID, &d.TenantID, &d.EventType, &d.EventID, &payload,
		&status, &d.Attempts, &d.LastAttemptAt, &d.NextRetryAt, &d.ResponseStatusCode,
		&d.ErrorMessage, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Status = domain.DeliveryStatus(status)
	d.Payload = payload
	return &d, nil
}
