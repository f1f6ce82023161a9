package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionConnect        AuditAction = "CONNECT"
	AuditActionDisconnect     AuditAction = "DISCONNECT"
	AuditActionEnable         AuditAction = "ENABLE"
	AuditActionDisable        AuditAction = "DISABLE"
	AuditActionSyncTrigger    AuditAction = "SYNC_TRIGGER"
	AuditActionCreateEndpoint AuditAction = "CREATE_ENDPOINT"
	AuditActionRevokeEndpoint AuditAction = "REVOKE_ENDPOINT"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	TenantID     *uuid.UUID  `json:"tenant_id,omitempty"`
	UserID       string      `json:"user_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
