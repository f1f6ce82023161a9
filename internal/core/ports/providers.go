package ports

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"connector-hub/internal/core/domain"
)

// EntityWriter receives the records of one entity step. It is bound to a
// connector by the caller, adapters never see tenant identity.
type EntityWriter interface {
	Write(ctx context.Context, entity string, records []domain.Record) (int, error)
}

// ProviderAdapter pulls records from one provider.
type ProviderAdapter interface {
	Provider() domain.ProviderType
	// Entities lists entity steps in the order a sync runs them.
	Entities() []string
	// TestConnection makes a light authenticated call. It reports false on
	// auth or network failure rather than returning an error.
	TestConnection(ctx context.Context, creds domain.Credentials) bool
	// FullSync and IncrementalSync always return a result. When a step fails
	// the error is a *domain.SyncError and later steps did not run.
	FullSync(ctx context.Context, creds domain.Credentials, w EntityWriter) (*domain.SyncResult, error)
	IncrementalSync(ctx context.Context, creds domain.Credentials, since time.Time, w EntityWriter) (*domain.SyncResult, error)
}

// RawWebhook is an inbound provider request as received.
type RawWebhook struct {
	Body       []byte
	Signature  string
	Header     http.Header
	ReceivedAt time.Time
}

// WebhookAdapter verifies and routes inbound provider webhooks.
type WebhookAdapter interface {
	Provider() domain.ProviderType
	SignatureHeader() string
	// EventRoutes is the supported event set keyed by provider event type.
	EventRoutes() map[string]domain.EventRoute
	// ResolveAccount returns the provider account id carried by the request,
	// or "" when the request does not name one.
	ResolveAccount(header http.Header, body []byte) string
	// WebhookSecret selects the secret that signs this connector's webhooks.
	WebhookSecret(creds domain.Credentials) (string, error)
	// VerifyAndParseWebhook checks the signature in constant time before
	// decoding. It returns *domain.SignatureVerificationError or
	// *domain.PayloadError.
	VerifyAndParseWebhook(raw RawWebhook, secret string) (*domain.ParsedEvent, error)
	ExtractRecord(evt *domain.ParsedEvent) (domain.Record, error)
	// Configured reports whether verification can work at all, e.g. an app
	// secret is present for providers that sign with one.
	Configured() bool
}

// OAuthAdapter runs the authorization code flow for one provider.
type OAuthAdapter interface {
	Provider() domain.ProviderType
	UsesPKCE() bool
	AuthorizationURL(state, codeVerifier string, params url.Values) (string, error)
	// VerifyCallback checks provider-specific callback integrity, such as a
	// signed query string.
	VerifyCallback(params url.Values) error
	// ExchangeCode returns the credentials and the provider account id the
	// connector is bound to.
	ExchangeCode(ctx context.Context, code, codeVerifier string, params url.Values) (domain.Credentials, string, error)
}

// TokenRefresher renews expiring OAuth credentials.
type TokenRefresher interface {
	RefreshCredentials(ctx context.Context, creds domain.Credentials) (domain.Credentials, error)
}

// APIKeyAdapter builds credentials from static key input.
type APIKeyAdapter interface {
	Provider() domain.ProviderType
	// CredentialsFromInput returns the credentials and provider account id.
	CredentialsFromInput(fields map[string]string) (domain.Credentials, string, error)
}

// ProviderRegistry resolves adapters by provider key and capability.
// Lookups of unknown providers or missing capabilities return
// *domain.UnsupportedProviderError.
type ProviderRegistry interface {
	Sync(provider domain.ProviderType) (ProviderAdapter, error)
	Webhook(provider domain.ProviderType) (WebhookAdapter, error)
	OAuth(provider domain.ProviderType) (OAuthAdapter, error)
	APIKey(provider domain.ProviderType) (APIKeyAdapter, error)
	Refresher(provider domain.ProviderType) (TokenRefresher, bool)
	Providers() []domain.ProviderType
}
