package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies an external system a connector links to.
type ProviderType string

const (
	ProviderShopify         ProviderType = "shopify"
	ProviderStripe          ProviderType = "stripe"
	ProviderGoogleAnalytics ProviderType = "google_analytics"
)

// NormalizeProvider lowercases and trims a provider key taken from a URL or
// request body. "Google-Analytics" and "google_analytics" are the same key.
func NormalizeProvider(raw string) ProviderType {
	s := strings.ToLower(strings.TrimSpace(raw))
	return ProviderType(strings.ReplaceAll(s, "-", "_"))
}

// ConnectorStatus is the lifecycle state of a connector.
type ConnectorStatus string

const (
	ConnectorStatusDraft     ConnectorStatus = "draft"
	ConnectorStatusConnected ConnectorStatus = "connected"
	ConnectorStatusActive    ConnectorStatus = "active"
	ConnectorStatusSyncing   ConnectorStatus = "syncing"
	ConnectorStatusError     ConnectorStatus = "error"
	ConnectorStatusDisabled  ConnectorStatus = "disabled"
)

// SyncStatus mirrors the outcome of the connector's latest sync run.
type SyncStatus string

const (
	SyncStatusNone      SyncStatus = "none"
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// Connector is a tenant's configured link to one external provider.
type Connector struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	ProviderType      ProviderType    `json:"provider_type"`
	ExternalAccountID string          `json:"external_account_id,omitempty"`
	CredentialsEnc    string          `json:"-"` // encrypted credentials envelope, never exposed
	CredentialsExpiry *time.Time      `json:"credentials_expires_at,omitempty"`
	Status            ConnectorStatus `json:"status"`
	IsEnabled         bool            `json:"is_enabled"`
	Settings          map[string]any  `json:"settings,omitempty"`
	LastSyncAt        *time.Time      `json:"last_sync_at"`
	LastSyncStatus    SyncStatus      `json:"last_sync_status"`
	LastSyncError     *string         `json:"last_sync_error,omitempty"`
	Version           int64           `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// IsSyncRunning reports whether a sync run currently holds the connector.
func (c *Connector) IsSyncRunning() bool {
	return c.LastSyncStatus == SyncStatusRunning
}

// SyncBlocker returns the reason a sync cannot start, or "" when it can.
// A running sync is reported separately by IsSyncRunning.
func (c *Connector) SyncBlocker() string {
	if !c.IsEnabled {
		return "connector is disabled"
	}
	if c.Status != ConnectorStatusConnected && c.Status != ConnectorStatusActive {
		return "connector is not connected"
	}
	return ""
}

// NextSyncType picks full for a connector that never synced successfully.
func (c *Connector) NextSyncType() SyncType {
	if c.LastSyncAt == nil {
		return SyncTypeFull
	}
	return SyncTypeIncremental
}
