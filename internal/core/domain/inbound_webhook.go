package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InboundEventStatus is the processing state of a received webhook.
type InboundEventStatus string

const (
	InboundStatusReceived   InboundEventStatus = "received"
	InboundStatusProcessing InboundEventStatus = "processing"
	InboundStatusCompleted  InboundEventStatus = "completed"
	InboundStatusFailed     InboundEventStatus = "failed"
)

// WebhookAction is the recorded outcome of a completed inbound event.
type WebhookAction string

const (
	WebhookActionProcessed WebhookAction = "processed"
	WebhookActionIgnored   WebhookAction = "ignored"
)

// InboundWebhookEvent is a received provider event. (Provider,
// ProviderEventID) is unique and is the only idempotency guard.
type InboundWebhookEvent struct {
	ID              uuid.UUID          `json:"id"`
	Provider        ProviderType       `json:"provider"`
	EventType       string             `json:"event_type"`
	ProviderEventID string             `json:"provider_event_id"`
	ConnectorID     *uuid.UUID         `json:"connector_id,omitempty"`
	TenantID        *uuid.UUID         `json:"tenant_id,omitempty"`
	Payload         json.RawMessage    `json:"payload"`
	Status          InboundEventStatus `json:"status"`
	Action          WebhookAction      `json:"action,omitempty"`
	Attempts        int                `json:"attempts"`
	LastError       *string            `json:"last_error,omitempty"`
	ReceivedAt      time.Time          `json:"received_at"`
	ProcessedAt     *time.Time         `json:"processed_at,omitempty"`
}

// IsStale reports whether a processing claim is older than timeout and may
// be taken over.
func (e *InboundWebhookEvent) IsStale(now time.Time, timeout time.Duration) bool {
	return e.Status == InboundStatusProcessing && now.Sub(e.ReceivedAt) > timeout
}

// ParsedEvent is a verified provider webhook reduced to what the gateway
// routes on.
type ParsedEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Provider   ProviderType    `json:"provider"`
	Account    string          `json:"account,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Object     json.RawMessage `json:"object"`
	Raw        json.RawMessage `json:"-"`
}

// RecordOp is what a routed event does to the mirror.
type RecordOp string

const (
	RecordOpUpsert RecordOp = "upsert"
	RecordOpDelete RecordOp = "delete"
	// RecordOpRevoke disables the connector, e.g. when the app is uninstalled.
	RecordOpRevoke RecordOp = "revoke"
)

// EventRoute maps a provider event type to a mirror entity and operation.
type EventRoute struct {
	Entity string
	Op     RecordOp
}

// WebhookOutcome is what the gateway reports back to the provider.
type WebhookOutcome struct {
	EventID   string        `json:"event_id"`
	EventType string        `json:"event_type"`
	Action    WebhookAction `json:"action"`
	Duplicate bool          `json:"duplicate"`
}
