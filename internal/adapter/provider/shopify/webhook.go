package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
)

const (
	headerHMAC      = "X-Shopify-Hmac-Sha256"
	headerTopic     = "X-Shopify-Topic"
	headerShop      = "X-Shopify-Shop-Domain"
	headerWebhookID = "X-Shopify-Webhook-Id"
	headerTriggered = "X-Shopify-Triggered-At"
)

const webhookSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": ["integer", "string"]}
	}
}`

var routes = map[string]domain.EventRoute{
	"customers/create": {Entity: "customers", Op: domain.RecordOpUpsert},
	"customers/update": {Entity: "customers", Op: domain.RecordOpUpsert},
	"customers/delete": {Entity: "customers", Op: domain.RecordOpDelete},
	"products/create":  {Entity: "products", Op: domain.RecordOpUpsert},
	"products/update":  {Entity: "products", Op: domain.RecordOpUpsert},
	"products/delete":  {Entity: "products", Op: domain.RecordOpDelete},
	"orders/create":    {Entity: "orders", Op: domain.RecordOpUpsert},
	"orders/updated":   {Entity: "orders", Op: domain.RecordOpUpsert},
	"orders/delete":    {Entity: "orders", Op: domain.RecordOpDelete},
	"app/uninstalled":  {Op: domain.RecordOpRevoke},
}

func (a *Adapter) SignatureHeader() string { return headerHMAC }

func (a *Adapter) EventRoutes() map[string]domain.EventRoute {
	out := make(map[string]domain.EventRoute, len(routes))
	for k, v := range routes {
		out[k] = v
	}
	return out
}

// ResolveAccount returns the shop domain Shopify stamps on every delivery.
func (a *Adapter) ResolveAccount(header http.Header, _ []byte) string {
	return normalizeShop(header.Get(headerShop))
}

// WebhookSecret prefers a per-shop secret and falls back to the app secret,
// which signs webhooks registered through the app.
func (a *Adapter) WebhookSecret(creds domain.Credentials) (string, error) {
	if c, ok := creds.(*domain.ShopifyCredentials); ok && c.WebhookSecret != "" {
		return c.WebhookSecret, nil
	}
	if a.cfg.ClientSecret != "" {
		return a.cfg.ClientSecret, nil
	}
	return "", &domain.AuthenticationError{Provider: domain.ProviderShopify, Reason: "no webhook secret configured"}
}

func (a *Adapter) Configured() bool { return a.cfg.ClientSecret != "" }

func (a *Adapter) VerifyAndParseWebhook(raw ports.RawWebhook, secret string) (*domain.ParsedEvent, error) {
	if raw.Signature == "" {
		return nil, &domain.SignatureVerificationError{Provider: domain.ProviderShopify, Reason: "missing " + headerHMAC}
	}
	if secret == "" {
		return nil, &domain.SignatureVerificationError{Provider: domain.ProviderShopify, Reason: "no secret to verify against"}
	}
	got, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw.Signature))
	if err != nil {
		return nil, &domain.SignatureVerificationError{Provider: domain.ProviderShopify, Reason: "signature is not base64"}
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(raw.Body)
	if !hmac.Equal(mac.Sum(nil), got) {
		return nil, &domain.SignatureVerificationError{Provider: domain.ProviderShopify, Reason: "signature mismatch"}
	}

	if err := a.schema.Validate(raw.Body); err != nil {
		return nil, err
	}
	topic := raw.Header.Get(headerTopic)
	if topic == "" {
		return nil, &domain.PayloadError{Provider: domain.ProviderShopify, Reason: "missing " + headerTopic}
	}
	eventID := raw.Header.Get(headerWebhookID)
	if eventID == "" {
		return nil, &domain.PayloadError{Provider: domain.ProviderShopify, Reason: "missing " + headerWebhookID}
	}

	occurred := raw.ReceivedAt
	if ts, err := time.Parse(time.RFC3339Nano, raw.Header.Get(headerTriggered)); err == nil {
		occurred = ts
	}

	return &domain.ParsedEvent{
		ID:         eventID,
		Type:       topic,
		Provider:   domain.ProviderShopify,
		Account:    normalizeShop(raw.Header.Get(headerShop)),
		OccurredAt: occurred.UTC(),
		Object:     raw.Body,
		Raw:        raw.Body,
	}, nil
}

// ExtractRecord keys the webhook body by its object id. Delete payloads only
// carry the id, so the event time orders them against sync data.
func (a *Adapter) ExtractRecord(evt *domain.ParsedEvent) (domain.Record, error) {
	rec, err := toRecord(evt.Object, evt.OccurredAt)
	if err != nil {
		return domain.Record{}, &domain.PayloadError{Provider: domain.ProviderShopify, Reason: err.Error()}
	}
	return rec, nil
}
