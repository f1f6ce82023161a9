// Package stripe adapts the Stripe REST API. Connectors authenticate with a
// secret or restricted key; one webhook URL serves every tenant, so events
// are routed by their connected account id or by a per-connector URL.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"connector-hub/config"
	"connector-hub/internal/adapter/provider"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
)

const pageLimit = "100"

var entities = []string{"customers", "products", "invoices"}

// Adapter implements ports.ProviderAdapter, ports.WebhookAdapter and
// ports.APIKeyAdapter for Stripe.
type Adapter struct {
	baseURL   string
	tolerance time.Duration
	client    *provider.Client
	schema    *provider.Schema
	now       func() time.Time
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithClock replaces the clock used for webhook tolerance and record times.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// New creates the Stripe adapter.
func New(cfg config.StripeConfig, timeout time.Duration, opts ...Option) *Adapter {
	base := strings.TrimRight(cfg.APIBaseURL, "/")
	if base == "" {
		base = "https://api.stripe.com"
	}
	tolerance := cfg.WebhookTolerance
	if tolerance <= 0 {
		tolerance = 5 * time.Minute
	}
	a := &Adapter{
		baseURL:   base,
		tolerance: tolerance,
		client:    provider.NewClient(domain.ProviderStripe, nil, timeout),
		schema:    provider.MustCompileSchema(domain.ProviderStripe, "stripe-event.json", eventSchema),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Provider() domain.ProviderType { return domain.ProviderStripe }

func (a *Adapter) Entities() []string {
	out := make([]string, len(entities))
	copy(out, entities)
	return out
}

func (a *Adapter) TestConnection(ctx context.Context, creds domain.Credentials) bool {
	c, err := credentials(creds)
	if err != nil {
		return false
	}
	return a.client.Ping(ctx, provider.Request{URL: a.baseURL + "/v1/account", Header: authHeader(c)})
}

func (a *Adapter) FullSync(ctx context.Context, creds domain.Credentials, w ports.EntityWriter) (*domain.SyncResult, error) {
	return a.sync(ctx, creds, time.Time{}, w)
}

// IncrementalSync filters on creation time; Stripe list endpoints cannot
// filter on updates, which arrive through webhooks instead.
func (a *Adapter) IncrementalSync(ctx context.Context, creds domain.Credentials, since time.Time, w ports.EntityWriter) (*domain.SyncResult, error) {
	return a.sync(ctx, creds, since, w)
}

func (a *Adapter) sync(ctx context.Context, creds domain.Credentials, since time.Time, w ports.EntityWriter) (*domain.SyncResult, error) {
	c, err := credentials(creds)
	if err != nil {
		return &domain.SyncResult{}, err
	}
	steps := make([]provider.Step, 0, len(entities))
	for _, entity := range entities {
		steps = append(steps, a.listStep(c, entity, since))
	}
	return provider.RunSteps(ctx, domain.ProviderStripe, steps, w)
}

type listPage struct {
	Data    []json.RawMessage `json:"data"`
	HasMore bool              `json:"has_more"`
}

func (a *Adapter) listStep(c *domain.StripeCredentials, entity string, since time.Time) provider.Step {
	return provider.Step{
		Entity: entity,
		Run: func(ctx context.Context, emit provider.Emit) error {
			cursor := ""
			for {
				q := url.Values{"limit": {pageLimit}}
				if !since.IsZero() {
					q.Set("created[gte]", strconv.FormatInt(since.Unix(), 10))
				}
				if cursor != "" {
					q.Set("starting_after", cursor)
				}

				var page listPage
				_, err := a.client.Do(ctx, provider.Request{
					URL:    a.baseURL + "/v1/" + entity + "?" + q.Encode(),
					Header: authHeader(c),
				}, &page)
				if err != nil {
					return err
				}

				fetched := a.now().UTC()
				records := make([]domain.Record, 0, len(page.Data))
				for _, raw := range page.Data {
					rec, err := toRecord(raw, fetched)
					if err != nil {
						return fmt.Errorf("%s: %w", entity, err)
					}
					records = append(records, rec)
				}
				if err := emit(records); err != nil {
					return err
				}
				if !page.HasMore || len(records) == 0 {
					return nil
				}
				cursor = records[len(records)-1].ExternalID
			}
		},
	}
}

// CredentialsFromInput validates a pasted key. The account id, when given,
// routes shared-endpoint webhooks to this connector.
func (a *Adapter) CredentialsFromInput(fields map[string]string) (domain.Credentials, string, error) {
	c := &domain.StripeCredentials{
		APIKey:        strings.TrimSpace(fields["api_key"]),
		WebhookSecret: strings.TrimSpace(fields["webhook_secret"]),
		AccountID:     strings.TrimSpace(fields["account_id"]),
	}
	if err := c.Validate(); err != nil {
		return nil, "", err
	}
	if !strings.HasPrefix(c.APIKey, "sk_") && !strings.HasPrefix(c.APIKey, "rk_") {
		return nil, "", &domain.AuthenticationError{Provider: domain.ProviderStripe, Reason: "api_key must be a secret (sk_) or restricted (rk_) key"}
	}
	if c.WebhookSecret != "" && !strings.HasPrefix(c.WebhookSecret, "whsec_") {
		return nil, "", &domain.AuthenticationError{Provider: domain.ProviderStripe, Reason: "webhook_secret must start with whsec_"}
	}
	if c.AccountID != "" && !strings.HasPrefix(c.AccountID, "acct_") {
		return nil, "", &domain.AuthenticationError{Provider: domain.ProviderStripe, Reason: "account_id must start with acct_"}
	}
	return c, c.AccountID, nil
}

func credentials(creds domain.Credentials) (*domain.StripeCredentials, error) {
	c, ok := creds.(*domain.StripeCredentials)
	if !ok || c == nil {
		return nil, &domain.AuthenticationError{Provider: domain.ProviderStripe, Reason: "credentials are not stripe credentials"}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func authHeader(c *domain.StripeCredentials) http.Header {
	h := http.Header{"Authorization": {"Bearer " + c.APIKey}}
	if c.AccountID != "" {
		h.Set("Stripe-Account", c.AccountID)
	}
	return h
}

type object struct {
	ID string `json:"id"`
}

// toRecord keys a Stripe object by id. Stripe objects carry no update
// timestamp, so the caller supplies the time the object was observed.
func toRecord(raw json.RawMessage, observed time.Time) (domain.Record, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Record{}, fmt.Errorf("decode object: %w", err)
	}
	if obj.ID == "" {
		return domain.Record{}, fmt.Errorf("object has no id")
	}
	return domain.Record{ExternalID: obj.ID, Data: raw, UpdatedAt: observed}, nil
}
