package dto

import (
	"time"

	"connector-hub/internal/core/domain"
)

// APIKeyRequest is the request body for connecting a static-key provider.
type APIKeyRequest struct {
	Fields map[string]string `json:"fields" binding:"required,min=1,dive,keys,safe_id,max=64,endkeys,required,max=4096"`
}

// CreateEndpointRequest is the request body for registering an outbound endpoint.
type CreateEndpointRequest struct {
	URL               string   `json:"url" binding:"required,safe_url,max=2048" sanitize:"trim"`
	SubscribedEvents  []string `json:"subscribed_events" binding:"required,min=1,dive,outbound_event"`
	MaxRetries        int      `json:"max_retries" binding:"omitempty,min=1,max=10"`
	RetryDelaySeconds int      `json:"retry_delay_seconds" binding:"omitempty,min=1,max=86400"`
}

// ListQuery is the common limit query parameter.
type ListQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// AuthorizeResponse carries the provider consent URL.
type AuthorizeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// SyncResponse is the result of a completed sync trigger.
type SyncResponse struct {
	Success          bool                `json:"success"`
	SyncID           string              `json:"sync_id"`
	RecordsProcessed domain.EntityCounts `json:"records_processed"`
}

// SyncRunSummary is one ledger entry in the sync status view.
type SyncRunSummary struct {
	ID               string                   `json:"id"`
	SyncType         string                   `json:"sync_type"`
	Status           string                   `json:"status"`
	Trigger          string                   `json:"trigger"`
	StartedAt        time.Time                `json:"started_at"`
	CompletedAt      *time.Time               `json:"completed_at,omitempty"`
	RecordsProcessed domain.EntityCounts      `json:"records_processed"`
	Errors           []domain.SyncErrorDetail `json:"errors"`
}

// SyncStatusResponse is the current sync state plus recent runs.
type SyncStatusResponse struct {
	ConnectorID    string           `json:"connector_id"`
	LastSyncAt     *time.Time       `json:"last_sync_at"`
	LastSyncStatus string           `json:"last_sync_status"`
	LastSyncError  *string          `json:"last_sync_error,omitempty"`
	Runs           []SyncRunSummary `json:"runs"`
}

// ConnectorResponse is the tenant-facing connector view.
type ConnectorResponse struct {
	ID                   string     `json:"id"`
	Provider             string     `json:"provider"`
	ExternalAccountID    string     `json:"external_account_id,omitempty"`
	Status               string     `json:"status"`
	IsEnabled            bool       `json:"is_enabled"`
	CredentialsExpiresAt *time.Time `json:"credentials_expires_at,omitempty"`
	LastSyncAt           *time.Time `json:"last_sync_at"`
	LastSyncStatus       string     `json:"last_sync_status"`
	LastSyncError        *string    `json:"last_sync_error,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TestConnectionResponse reports whether the provider accepted the credentials.
type TestConnectionResponse struct {
	Connected bool `json:"connected"`
}

// WebhookReceivedResponse acknowledges an inbound provider webhook.
type WebhookReceivedResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id"`
	Action    string `json:"action"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// EndpointResponse is the outbound endpoint view. SigningSecret is set only
// in the creation response.
type EndpointResponse struct {
	ID                string     `json:"id"`
	URL               string     `json:"url"`
	SubscribedEvents  []string   `json:"subscribed_events"`
	IsActive          bool       `json:"is_active"`
	MaxRetries        int        `json:"max_retries"`
	RetryDelaySeconds int        `json:"retry_delay_seconds"`
	SuccessCount      int64      `json:"success_count"`
	FailureCount      int64      `json:"failure_count"`
	SigningSecret     string     `json:"signing_secret,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
}

// ToConnectorResponse converts a domain connector to its API view.
func ToConnectorResponse(c *domain.Connector) ConnectorResponse {
	return ConnectorResponse{
		ID:                   c.ID.String(),
		Provider:             string(c.ProviderType),
		ExternalAccountID:    c.ExternalAccountID,
		Status:               string(c.Status),
		IsEnabled:            c.IsEnabled,
		CredentialsExpiresAt: c.CredentialsExpiry,
		LastSyncAt:           c.LastSyncAt,
		LastSyncStatus:       string(c.LastSyncStatus),
		LastSyncError:        c.LastSyncError,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// ToSyncStatusResponse converts a connector and its recent runs.
func ToSyncStatusResponse(c *domain.Connector, runs []domain.SyncRun) SyncStatusResponse {
	resp := SyncStatusResponse{
		ConnectorID:    c.ID.String(),
		LastSyncAt:     c.LastSyncAt,
		LastSyncStatus: string(c.LastSyncStatus),
		LastSyncError:  c.LastSyncError,
		Runs:           make([]SyncRunSummary, 0, len(runs)),
	}
	for _, r := range runs {
		errs := r.Errors
		if errs == nil {
			errs = []domain.SyncErrorDetail{}
		}
		resp.Runs = append(resp.Runs, SyncRunSummary{
			ID:               r.ID.String(),
			SyncType:         string(r.SyncType),
			Status:           string(r.Status),
			Trigger:          string(r.Trigger),
			StartedAt:        r.StartedAt,
			CompletedAt:      r.CompletedAt,
			RecordsProcessed: r.RecordsProcessed,
			Errors:           errs,
		})
	}
	return resp
}

// ToEndpointResponse converts a domain endpoint to its API view.
func ToEndpointResponse(e *domain.OutboundWebhookEndpoint) EndpointResponse {
	return EndpointResponse{
		ID:                e.ID.String(),
		URL:               e.URL,
		SubscribedEvents:  e.SubscribedEvents,
		IsActive:          e.IsActive,
		MaxRetries:        e.MaxRetries,
		RetryDelaySeconds: e.RetryDelaySeconds,
		SuccessCount:      e.SuccessCount,
		FailureCount:      e.FailureCount,
		CreatedAt:         e.CreatedAt,
		RevokedAt:         e.RevokedAt,
	}
}
