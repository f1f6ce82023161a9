package postgres

import (
	"context"
	"testing"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endpointCols() []string {
	return []string{"id", "tenant_id", "url", "signing_secret_enc", "subscribed_events", "is_active",
		"max_retries", "retry_delay_seconds", "success_count", "failure_count", "created_at", "updated_at", "revoked_at"}
}

func deliveryCols() []string {
	return []string{"id", "endpoint_id", "tenant_id", "event_type", "event_id", "payload", "status", "attempts",
		"last_attempt_at", "next_retry_at", "response_status_code", "error_message", "created_at", "updated_at"}
}

func TestWebhookEndpointRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWebhookEndpointRepo(mock)
	now := time.Now().UTC()
	e := &domain.OutboundWebhookEndpoint{
		ID:                uuid.New(),
		TenantID:          uuid.New(),
		URL:               "https://hooks.example.com/in",
		SigningSecretEnc:  "v1.cafe",
		SubscribedEvents:  []string{"sync.completed", "sync.failed"},
		IsActive:          true,
		MaxRetries:        3,
		RetryDelaySeconds: 60,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	mock.ExpectExec("INSERT INTO outbound_webhook_endpoints").
		WithArgs(e.ID, e.TenantID, e.URL, e.SigningSecretEnc, e.SubscribedEvents, true, 3, 60, now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookEndpointRepo_ListSubscribed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWebhookEndpointRepo(mock)
	tenantID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM outbound_webhook_endpoints\\s+WHERE tenant_id = \\$1 AND is_active").
		WithArgs(tenantID, "sync.completed").
		WillReturnRows(pgxmock.NewRows(endpointCols()).AddRow(
			uuid.New(), tenantID, "https://a.example.com", "v1.aa", []string{"*"}, true,
			5, 30, int64(10), int64(2), now, now, (*time.Time)(nil),
		))

	eps, err := repo.ListSubscribed(context.Background(), tenantID, domain.EventSyncCompleted)
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, []string{"*"}, eps[0].SubscribedEvents)
	assert.Equal(t, int64(10), eps[0].SuccessCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookEndpointRepo_Revoke(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "revoked", affected: 1, want: true},
		{name: "unknown or other tenant", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewWebhookEndpointRepo(mock)
			tenantID, id := uuid.New(), uuid.New()

			mock.ExpectExec("UPDATE outbound_webhook_endpoints\\s+SET is_active = FALSE").
				WithArgs(id, tenantID).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			ok, err := repo.Revoke(context.Background(), tenantID, id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWebhookEndpointRepo_IncrementCounters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWebhookEndpointRepo(mock)
	id := uuid.New()

	mock.ExpectExec("SET success_count = success_count \\+ 1").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("SET failure_count = failure_count \\+ 1").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.IncrementCounters(context.Background(), id, true))
	require.NoError(t, repo.IncrementCounters(context.Background(), id, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookDeliveryRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWebhookDeliveryRepo(mock)
	now := time.Now().UTC()
	lease := now.Add(2 * time.Minute)
	d := &domain.OutboundWebhookDelivery{
		ID:          uuid.New(),
		EndpointID:  uuid.New(),
		TenantID:    uuid.New(),
		EventType:   "sync.completed",
		EventID:     uuid.New(),
		Payload:     []byte(`{"type":"sync.completed"}`),
		Status:      domain.DeliveryStatusPending,
		NextRetryAt: &lease,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO outbound_webhook_deliveries").
		WithArgs(d.ID, d.EndpointID, d.TenantID, "sync.completed", d.EventID, []byte(d.Payload),
			"pending", 0, &lease, now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), d))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookDeliveryRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWebhookDeliveryRepo(mock)
	now := time.Now().UTC()
	code := 503
	msg := "HTTP 503"
	d := &domain.OutboundWebhookDelivery{
		ID:                 uuid.New(),
		Status:             domain.DeliveryStatusRetrying,
		Attempts:           1,
		LastAttemptAt:      &now,
		ResponseStatusCode: &code,
		ErrorMessage:       &msg,
	}

	mock.ExpectExec("UPDATE outbound_webhook_deliveries").
		WithArgs(d.ID, "retrying", 1, &now, d.NextRetryAt, &code, &msg, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.Update(context.Background(), d))
	assert.False(t, d.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookDeliveryRepo_ClaimDue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWebhookDeliveryRepo(mock)
	now := time.Now().UTC()
	leaseUntil := now.Add(time.Minute)
	code := 500

	mock.ExpectQuery("UPDATE outbound_webhook_deliveries\\s+SET next_retry_at .+ FOR UPDATE SKIP LOCKED").
		WithArgs(now, leaseUntil, 25).
		WillReturnRows(pgxmock.NewRows(deliveryCols()).AddRow(
			uuid.New(), uuid.New(), uuid.New(), "record.upserted", uuid.New(), []byte(`{}`),
			"retrying", 1, &now, &leaseUntil, &code, (*string)(nil), now, now,
		))

	due, err := repo.ClaimDue(context.Background(), now, time.Minute, 25)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, domain.DeliveryStatusRetrying, due[0].Status)
	assert.Equal(t, leaseUntil, *due[0].NextRetryAt)
	assert.Equal(t, 500, *due[0].ResponseStatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	tenantID := uuid.New()
	entry := &domain.AuditLog{
		ID:           uuid.New(),
		TenantID:     &tenantID,
		UserID:       "user-1",
		Action:       domain.AuditActionSyncTrigger,
		ResourceType: "connector",
		ResourceID:   uuid.NewString(),
		IPAddress:    "10.0.0.1",
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(entry.ID, &tenantID, "user-1", "SYNC_TRIGGER", "connector", entry.ResourceID, "",
			"10.0.0.1", entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}
