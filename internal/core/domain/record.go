package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecordScope identifies whose records a write belongs to.
type RecordScope struct {
	TenantID    uuid.UUID
	ConnectorID uuid.UUID
	Provider    ProviderType
}

// Record is one provider object mirrored locally, keyed by the provider's id.
type Record struct {
	ExternalID string          `json:"external_id"`
	Data       json.RawMessage `json:"data"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
