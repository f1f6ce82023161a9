package stripe

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/signature"
)

const headerSignature = "Stripe-Signature"

const eventSchema = `{
	"type": "object",
	"required": ["id", "type", "created", "data"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"type": {"type": "string", "minLength": 1},
		"created": {"type": "integer"},
		"account": {"type": "string"},
		"data": {
			"type": "object",
			"required": ["object"],
			"properties": {"object": {"type": "object"}}
		}
	}
}`

var routes = map[string]domain.EventRoute{
	"customer.created":                 {Entity: "customers", Op: domain.RecordOpUpsert},
	"customer.updated":                 {Entity: "customers", Op: domain.RecordOpUpsert},
	"customer.deleted":                 {Entity: "customers", Op: domain.RecordOpDelete},
	"product.created":                  {Entity: "products", Op: domain.RecordOpUpsert},
	"product.updated":                  {Entity: "products", Op: domain.RecordOpUpsert},
	"product.deleted":                  {Entity: "products", Op: domain.RecordOpDelete},
	"invoice.created":                  {Entity: "invoices", Op: domain.RecordOpUpsert},
	"invoice.updated":                  {Entity: "invoices", Op: domain.RecordOpUpsert},
	"invoice.paid":                     {Entity: "invoices", Op: domain.RecordOpUpsert},
	"invoice.finalized":                {Entity: "invoices", Op: domain.RecordOpUpsert},
	"invoice.payment_failed":           {Entity: "invoices", Op: domain.RecordOpUpsert},
	"invoice.deleted":                  {Entity: "invoices", Op: domain.RecordOpDelete},
	"account.application.deauthorized": {Op: domain.RecordOpRevoke},
}

type event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Account string `json:"account"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

func (a *Adapter) SignatureHeader() string { return headerSignature }

func (a *Adapter) EventRoutes() map[string]domain.EventRoute {
	out := make(map[string]domain.EventRoute, len(routes))
	for k, v := range routes {
		out[k] = v
	}
	return out
}

// ResolveAccount reads the connected account id from the event body. Events
// for a platform's own account carry none.
func (a *Adapter) ResolveAccount(_ http.Header, body []byte) string {
	var envelope struct {
		Account string `json:"account"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Account
}

// WebhookSecret is the endpoint secret stored with the connector. Stripe
// signs each endpoint with its own secret, there is no app-wide fallback.
func (a *Adapter) WebhookSecret(creds domain.Credentials) (string, error) {
	if c, ok := creds.(*domain.StripeCredentials); ok && c.WebhookSecret != "" {
		return c.WebhookSecret, nil
	}
	return "", &domain.AuthenticationError{Provider: domain.ProviderStripe, Reason: "connector has no webhook_secret"}
}

func (a *Adapter) Configured() bool { return true }

// VerifyAndParseWebhook checks "t=<unix>,v1=<hex>" over "<t>.<body>" within
// the replay tolerance.
func (a *Adapter) VerifyAndParseWebhook(raw ports.RawWebhook, secret string) (*domain.ParsedEvent, error) {
	if raw.Signature == "" {
		return nil, &domain.SignatureVerificationError{Provider: domain.ProviderStripe, Reason: "missing " + headerSignature}
	}
	if secret == "" {
		return nil, &domain.SignatureVerificationError{Provider: domain.ProviderStripe, Reason: "no secret to verify against"}
	}
	if err := signature.Verify(secret, raw.Signature, raw.Body, a.now(), a.tolerance); err != nil {
		reason := err.Error()
		if errors.Is(err, signature.ErrMalformed) {
			reason = "malformed " + headerSignature
		}
		return nil, &domain.SignatureVerificationError{Provider: domain.ProviderStripe, Reason: reason}
	}

	if err := a.schema.Validate(raw.Body); err != nil {
		return nil, err
	}
	var evt event
	if err := json.Unmarshal(raw.Body, &evt); err != nil {
		return nil, &domain.PayloadError{Provider: domain.ProviderStripe, Reason: "decode event: " + err.Error()}
	}
	return &domain.ParsedEvent{
		ID:         evt.ID,
		Type:       evt.Type,
		Provider:   domain.ProviderStripe,
		Account:    evt.Account,
		OccurredAt: time.Unix(evt.Created, 0).UTC(),
		Object:     evt.Data.Object,
		Raw:        raw.Body,
	}, nil
}

// ExtractRecord keys data.object by its id, ordered by the event time.
func (a *Adapter) ExtractRecord(evt *domain.ParsedEvent) (domain.Record, error) {
	rec, err := toRecord(evt.Object, evt.OccurredAt)
	if err != nil {
		return domain.Record{}, &domain.PayloadError{Provider: domain.ProviderStripe, Reason: err.Error()}
	}
	return rec, nil
}

