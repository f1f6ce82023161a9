package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboundEventType is an internal event tenants can subscribe to.
type OutboundEventType string

const (
	EventConnectorConnected    OutboundEventType = "connector.connected"
	EventConnectorDisconnected OutboundEventType = "connector.disconnected"
	EventSyncCompleted         OutboundEventType = "sync.completed"
	EventSyncFailed            OutboundEventType = "sync.failed"
	EventRecordUpserted        OutboundEventType = "record.upserted"
	EventRecordDeleted         OutboundEventType = "record.deleted"
)

// OutboundEventTypes lists every subscribable event type.
var OutboundEventTypes = []OutboundEventType{
	EventConnectorConnected,
	EventConnectorDisconnected,
	EventSyncCompleted,
	EventSyncFailed,
	EventRecordUpserted,
	EventRecordDeleted,
}

// IsValidOutboundEvent reports whether s names a known event type.
func IsValidOutboundEvent(s string) bool {
	for _, t := range OutboundEventTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// OutboundEvent is an internal domain event fanned out to endpoints.
type OutboundEvent struct {
	ID         uuid.UUID         `json:"id"`
	Type       OutboundEventType `json:"type"`
	TenantID   uuid.UUID         `json:"tenant_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       any               `json:"data"`
}

// OutboundWebhookEndpoint is a tenant-registered delivery target.
type OutboundWebhookEndpoint struct {
	ID                uuid.UUID  `json:"id"`
	TenantID          uuid.UUID  `json:"tenant_id"`
	URL               string     `json:"url"`
	SigningSecretEnc  string     `json:"-"` // encrypted, returned in plaintext once at creation
	SubscribedEvents  []string   `json:"subscribed_events"`
	IsActive          bool       `json:"is_active"`
	MaxRetries        int        `json:"max_retries"`
	RetryDelaySeconds int        `json:"retry_delay_seconds"`
	SuccessCount      int64      `json:"success_count"`
	FailureCount      int64      `json:"failure_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
}

// Subscribes reports whether the endpoint wants eventType.
func (e *OutboundWebhookEndpoint) Subscribes(eventType OutboundEventType) bool {
	for _, s := range e.SubscribedEvents {
		if s == string(eventType) || s == "*" {
			return true
		}
	}
	return false
}

// RetryDelay is the fixed delay between attempts.
func (e *OutboundWebhookEndpoint) RetryDelay() time.Duration {
	return time.Duration(e.RetryDelaySeconds) * time.Second
}

// DeliveryStatus is the state of one outbound delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending  DeliveryStatus = "pending"
	DeliveryStatusSuccess  DeliveryStatus = "success"
	DeliveryStatusFailed   DeliveryStatus = "failed"
	DeliveryStatusRetrying DeliveryStatus = "retrying"
)

// OutboundWebhookDelivery is one event bound for one endpoint.
type OutboundWebhookDelivery struct {
	ID                 uuid.UUID       `json:"id"`
	EndpointID         uuid.UUID       `json:"endpoint_id"`
	TenantID           uuid.UUID       `json:"tenant_id"`
	EventType          string          `json:"event_type"`
	EventID            uuid.UUID       `json:"event_id"`
	Payload            json.RawMessage `json:"payload"`
	Status             DeliveryStatus  `json:"status"`
	Attempts           int             `json:"attempts"`
	LastAttemptAt      *time.Time      `json:"last_attempt_at,omitempty"`
	NextRetryAt        *time.Time      `json:"next_retry_at,omitempty"`
	ResponseStatusCode *int            `json:"response_status_code,omitempty"`
	ErrorMessage       *string         `json:"error_message,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// IsTerminal returns true for success or failed deliveries.
func (d *OutboundWebhookDelivery) IsTerminal() bool {
	return d.Status == DeliveryStatusSuccess || d.Status == DeliveryStatusFailed
}

// RecordAttempt applies the fixed-delay retry policy to one attempt.
// statusCode is 0 when no response was received.
func (d *OutboundWebhookDelivery) RecordAttempt(now time.Time, statusCode int, errMsg string, maxRetries int, retryDelay time.Duration) {
	d.Attempts++
	d.LastAttemptAt = &now
	d.UpdatedAt = now
	if statusCode > 0 {
		code := statusCode
		d.ResponseStatusCode = &code
	} else {
		d.ResponseStatusCode = nil
	}

	if statusCode >= 200 && statusCode < 300 {
		d.Status = DeliveryStatusSuccess
		d.NextRetryAt = nil
		d.ErrorMessage = nil
		return
	}

	msg := errMsg
	d.ErrorMessage = &msg
	if d.Attempts >= maxRetries {
		d.Status = DeliveryStatusFailed
		d.NextRetryAt = nil
		return
	}
	next := now.Add(retryDelay)
	d.Status = DeliveryStatusRetrying
	d.NextRetryAt = &next
}
