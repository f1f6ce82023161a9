// Package shopify adapts the Shopify Admin REST API: OAuth install per shop,
// paginated pulls of customers, products and orders, and HMAC signed
// webhooks routed by shop domain.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"connector-hub/config"
	"connector-hub/internal/adapter/provider"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
)

const pageLimit = "250"

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-]*\.myshopify\.com$`)

// Reference entities first, then dependents, then transactional entities.
var entities = []string{"customers", "products", "orders"}

// Adapter implements ports.ProviderAdapter, ports.WebhookAdapter,
// ports.OAuthAdapter and ports.APIKeyAdapter for Shopify.
type Adapter struct {
	cfg         config.ShopifyConfig
	redirectURL string
	client      *provider.Client
	shopURL     func(shop string) string
	schema      *provider.Schema
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithShopURL overrides how a shop domain maps to its base URL.
func WithShopURL(fn func(shop string) string) Option {
	return func(a *Adapter) { a.shopURL = fn }
}

// WithHTTPClient replaces the HTTP client used for API and token calls.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.client = provider.NewClient(domain.ProviderShopify, c, 0) }
}

// New creates the Shopify adapter. redirectURL is the OAuth callback.
func New(cfg config.ShopifyConfig, redirectURL string, timeout time.Duration, opts ...Option) *Adapter {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-10"
	}
	a := &Adapter{
		cfg:         cfg,
		redirectURL: redirectURL,
		client:      provider.NewClient(domain.ProviderShopify, nil, timeout),
		shopURL:     func(shop string) string { return "https://" + shop },
		schema:      provider.MustCompileSchema(domain.ProviderShopify, "shopify-webhook.json", webhookSchema),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Provider() domain.ProviderType { return domain.ProviderShopify }

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
	return a.client.Ping(ctx, provider.Request{
		URL:    a.apiURL(c.ShopDomain, "shop.json"),
		Header: authHeader(c),
	})
}

func (a *Adapter) FullSync(ctx context.Context, creds domain.Credentials, w ports.EntityWriter) (*domain.SyncResult, error) {
	return a.sync(ctx, creds, time.Time{}, w)
}

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
	return provider.RunSteps(ctx, domain.ProviderShopify, steps, w)
}

// listStep pages through one REST collection by following Link rel="next".
func (a *Adapter) listStep(c *domain.ShopifyCredentials, entity string, since time.Time) provider.Step {
	return provider.Step{
		Entity: entity,
		Run: func(ctx context.Context, emit provider.Emit) error {
			q := url.Values{"limit": {pageLimit}}
			if !since.IsZero() {
				q.Set("updated_at_min", since.UTC().Format(time.RFC3339))
			}
			if entity == "orders" {
				q.Set("status", "any")
			}
			next := a.apiURL(c.ShopDomain, entity+".json") + "?" + q.Encode()

			for next != "" {
				var page map[string][]json.RawMessage
				header, err := a.client.Do(ctx, provider.Request{URL: next, Header: authHeader(c)}, &page)
				if err != nil {
					return err
				}
				records := make([]domain.Record, 0, len(page[entity]))
				for _, raw := range page[entity] {
					rec, err := toRecord(raw, time.Time{})
					if err != nil {
						return fmt.Errorf("%s: %w", entity, err)
					}
					records = append(records, rec)
				}
				if err := emit(records); err != nil {
					return err
				}
				next = nextLink(header.Get("Link"))
			}
			return nil
		},
	}
}

func (a *Adapter) apiURL(shop, path string) string {
	return a.shopURL(shop) + "/admin/api/" + a.cfg.APIVersion + "/" + path
}

// CredentialsFromInput connects a custom app by its Admin API token.
func (a *Adapter) CredentialsFromInput(fields map[string]string) (domain.Credentials, string, error) {
	shop := normalizeShop(fields["shop_domain"])
	if !ValidShopDomain(shop) {
		return nil, "", &domain.AuthenticationError{Provider: domain.ProviderShopify, Reason: "invalid shop_domain"}
	}
	c := &domain.ShopifyCredentials{
		ShopDomain:    shop,
		AccessToken:   strings.TrimSpace(fields["access_token"]),
		WebhookSecret: strings.TrimSpace(fields["webhook_secret"]),
	}
	if err := c.Validate(); err != nil {
		return nil, "", err
	}
	return c, shop, nil
}

// ValidShopDomain reports whether shop looks like "<name>.myshopify.com".
func ValidShopDomain(shop string) bool {
	return shopDomainPattern.MatchString(shop)
}

func normalizeShop(shop string) string {
	return strings.ToLower(strings.TrimSpace(shop))
}

func credentials(creds domain.Credentials) (*domain.ShopifyCredentials, error) {
	c, ok := creds.(*domain.ShopifyCredentials)
	if !ok || c == nil {
		return nil, &domain.AuthenticationError{Provider: domain.ProviderShopify, Reason: "credentials are not shopify credentials"}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func authHeader(c *domain.ShopifyCredentials) http.Header {
	return http.Header{"X-Shopify-Access-Token": {c.AccessToken}}
}

type object struct {
	ID        json.Number `json:"id"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// toRecord keys a Shopify object by its numeric id. fallback is used when
// the object carries no updated_at, as delete payloads do.
func toRecord(raw json.RawMessage, fallback time.Time) (domain.Record, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Record{}, fmt.Errorf("decode object: %w", err)
	}
	if _, err := strconv.ParseInt(obj.ID.String(), 10, 64); err != nil {
		return domain.Record{}, fmt.Errorf("object id %q is not numeric", obj.ID)
	}
	updated := obj.UpdatedAt
	if updated.IsZero() {
		updated = fallback
	}
	return domain.Record{ExternalID: obj.ID.String(), Data: raw, UpdatedAt: updated.UTC()}, nil
}

// nextLink extracts the rel="next" URL from an RFC 8288 Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segs := strings.Split(part, ";")
		if len(segs) < 2 {
			continue
		}
		target := strings.TrimSpace(segs[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, p := range segs[1:] {
			if strings.TrimSpace(p) == `rel="next"` {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}
