package ports

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"connector-hub/internal/core/domain"

	"github.com/google/uuid"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService signs outbound webhook payloads.
type SignatureService interface {
	// Sign returns the header value "t=<unix>,v1=<hex hmac>" over "<unix>.<payload>".
	Sign(secret string, timestamp int64, payload []byte) string
	Verify(secret, header string, payload []byte, now time.Time, tolerance time.Duration) bool
	GenerateSecret() (string, error)
}

// TokenService handles tenant API tokens and OAuth state tokens.
type TokenService interface {
	Generate(tenantID uuid.UUID, userID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
	SignState(state OAuthState, ttl time.Duration) (string, error)
	ParseState(token string) (*OAuthState, error)
}

// TokenClaims holds the parsed tenant API token claims.
type TokenClaims struct {
	TenantID uuid.UUID
	UserID   string
}

// OAuthState is carried through the provider's authorization redirect.
type OAuthState struct {
	TenantID     uuid.UUID
	UserID       string
	Provider     domain.ProviderType
	Nonce        string
	CodeVerifier string // encrypted
}

// WebhookOutcomeCache is the Redis fast path for inbound event outcomes.
type WebhookOutcomeCache interface {
	Get(ctx context.Context, key string) (*domain.WebhookOutcome, error)
	Set(ctx context.Context, key string, outcome *domain.WebhookOutcome, ttl time.Duration) error
}

// NonceStore manages single-use nonces.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error)
}

// --- Service Ports (Business Logic) ---

// CredentialService owns the connector credential lifecycle.
type CredentialService interface {
	AuthorizationURL(ctx context.Context, req AuthorizeRequest) (string, error)
	CompleteOAuth(ctx context.Context, req OAuthCallback) (*domain.Connector, error)
	ConnectAPIKey(ctx context.Context, req APIKeyConnectRequest) (*domain.Connector, error)
	// Resolve decrypts and validates the connector's credentials, refreshing
	// expiring tokens. Missing or incomplete credentials yield
	// *domain.AuthenticationError.
	Resolve(ctx context.Context, c *domain.Connector) (domain.Credentials, error)
	TestConnection(ctx context.Context, c *domain.Connector) (bool, error)
}

// AuthorizeRequest starts an OAuth flow.
type AuthorizeRequest struct {
	TenantID uuid.UUID
	UserID   string
	Provider domain.ProviderType
	Params   url.Values
}

// OAuthCallback is the provider's redirect back to us.
type OAuthCallback struct {
	Provider domain.ProviderType
	Code     string
	State    string
	Params   url.Values
	ClientIP string
}

// APIKeyConnectRequest connects a static-key provider.
type APIKeyConnectRequest struct {
	TenantID uuid.UUID
	UserID   string
	Provider domain.ProviderType
	Fields   map[string]string
}

// ConnectorService manages connector lifecycle for tenants.
type ConnectorService interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.Connector, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*domain.Connector, error)
	SetEnabled(ctx context.Context, tenantID, id uuid.UUID, enabled bool) (*domain.Connector, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	TestConnection(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

// SyncService drives sync runs.
type SyncService interface {
	// Trigger runs one sync to completion. tenantID uuid.Nil skips the
	// tenant ownership check for internal triggers.
	Trigger(ctx context.Context, tenantID, connectorID uuid.UUID, trigger domain.SyncTrigger) (*domain.SyncRun, error)
	Status(ctx context.Context, tenantID, connectorID uuid.UUID) (*SyncStatusView, error)
	RunScheduled(ctx context.Context) (int, error)
	RecoverStale(ctx context.Context) (int, error)
}

// SyncStatusView is the connector's current sync state plus recent runs.
type SyncStatusView struct {
	Connector *domain.Connector
	Runs      []domain.SyncRun
}

// InboundWebhookService is the inbound webhook gateway.
type InboundWebhookService interface {
	Handle(ctx context.Context, req InboundWebhookRequest) (*domain.WebhookOutcome, error)
	Describe(provider domain.ProviderType) (*WebhookProviderInfo, error)
	ListEvents(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.InboundWebhookEvent, error)
}

// InboundWebhookRequest is a raw provider push.
type InboundWebhookRequest struct {
	Provider    domain.ProviderType
	ConnectorID *uuid.UUID // set when the provider posts to a per-connector URL
	Header      http.Header
	Body        []byte
}

// WebhookProviderInfo describes webhook support for a provider.
type WebhookProviderInfo struct {
	Provider        domain.ProviderType `json:"provider"`
	Configured      bool                `json:"configured"`
	SupportedEvents []string            `json:"supported_events"`
}

// EventPublisher fans internal events out to subscribed endpoints.
type EventPublisher interface {
	Publish(ctx context.Context, evt domain.OutboundEvent) error
}

// WebhookDispatcher delivers outbound webhooks.
type WebhookDispatcher interface {
	EventPublisher
	// RetryDue re-attempts due deliveries and returns how many it attempted.
	RetryDue(ctx context.Context) (int, error)
}

// WebhookEndpointService registers outbound endpoints.
type WebhookEndpointService interface {
	Create(ctx context.Context, req CreateEndpointRequest) (*CreatedEndpoint, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.OutboundWebhookEndpoint, error)
	Revoke(ctx context.Context, tenantID, id uuid.UUID) error
	ListDeliveries(ctx context.Context, tenantID, endpointID uuid.UUID, limit int) ([]domain.OutboundWebhookDelivery, error)
}

// CreateEndpointRequest holds validated endpoint input.
type CreateEndpointRequest struct {
	TenantID          uuid.UUID
	URL               string
	SubscribedEvents  []string
	MaxRetries        int
	RetryDelaySeconds int
}

// CreatedEndpoint carries the signing secret, shown only once.
type CreatedEndpoint struct {
	Endpoint      *domain.OutboundWebhookEndpoint
	SigningSecret string
}

// AuditService records audited actions. Log never blocks the caller on failure.
type AuditService interface {
	Log(ctx context.Context, log *domain.AuditLog)
}
