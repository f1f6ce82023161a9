package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Credentials is a closed set of per-provider credential shapes. Only types
// in this package implement it.
type Credentials interface {
	Provider() ProviderType
	// Validate returns an *AuthenticationError when a required field is missing.
	Validate() error
	sealed()
}

// Refreshable credentials carry an expiring access token.
type Refreshable interface {
	Credentials
	NeedsRefresh(now time.Time, skew time.Duration) bool
	Expiry() *time.Time
}

// WebhookSigned credentials carry a per-connector webhook signing secret.
type WebhookSigned interface {
	Credentials
	SigningSecret() string
}

// ShopifyCredentials holds an offline Admin API token for one shop.
type ShopifyCredentials struct {
	ShopDomain    string `json:"shop_domain"`
	AccessToken   string `json:"access_token"`
	Scope         string `json:"scope,omitempty"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
}

func (*ShopifyCredentials) Provider() ProviderType { return ProviderShopify }
func (*ShopifyCredentials) sealed()                {}

func (c *ShopifyCredentials) Validate() error {
	return requireFields(ProviderShopify, map[string]string{
		"shop_domain":  c.ShopDomain,
		"access_token": c.AccessToken,
	})
}

func (c *ShopifyCredentials) SigningSecret() string { return c.WebhookSecret }

// StripeCredentials holds a restricted or secret API key.
type StripeCredentials struct {
	APIKey        string `json:"api_key"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
	AccountID     string `json:"account_id,omitempty"`
}

func (*StripeCredentials) Provider() ProviderType { return ProviderStripe }
func (*StripeCredentials) sealed()                {}

func (c *StripeCredentials) Validate() error {
	return requireFields(ProviderStripe, map[string]string{
		"api_key": c.APIKey,
	})
}

func (c *StripeCredentials) SigningSecret() string { return c.WebhookSecret }

// GoogleAnalyticsCredentials holds an OAuth token pair.
type GoogleAnalyticsCredentials struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	AccountID    string     `json:"account_id,omitempty"`
}

func (*GoogleAnalyticsCredentials) Provider() ProviderType { return ProviderGoogleAnalytics }
func (*GoogleAnalyticsCredentials) sealed()                {}

func (c *GoogleAnalyticsCredentials) Validate() error {
	return requireFields(ProviderGoogleAnalytics, map[string]string{
		"access_token":  c.AccessToken,
		"refresh_token": c.RefreshToken,
	})
}

func (c *GoogleAnalyticsCredentials) Expiry() *time.Time { return c.ExpiresAt }

func (c *GoogleAnalyticsCredentials) NeedsRefresh(now time.Time, skew time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Add(skew).Before(*c.ExpiresAt)
}

func requireFields(provider ProviderType, fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &AuthenticationError{
		Provider: provider,
		Reason:   "missing credential fields: " + strings.Join(missing, ", "),
	}
}

type credentialsEnvelope struct {
	Provider ProviderType    `json:"provider"`
	Data     json.RawMessage `json:"data"`
}

// MarshalCredentials encodes credentials with their provider tag.
func MarshalCredentials(c Credentials) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("marshal credentials: nil")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}
	return json.Marshal(credentialsEnvelope{Provider: c.Provider(), Data: data})
}

// UnmarshalCredentials decodes a tagged envelope produced by MarshalCredentials.
func UnmarshalCredentials(b []byte) (Credentials, error) {
	var env credentialsEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("unmarshal credentials: %w", err)
	}

	var c Credentials
	switch env.Provider {
	case ProviderShopify:
		c = &ShopifyCredentials{}
	case ProviderStripe:
		c = &StripeCredentials{}
	case ProviderGoogleAnalytics:
		c = &GoogleAnalyticsCredentials{}
	default:
		return nil, &UnsupportedProviderError{Provider: string(env.Provider)}
	}
	if err := json.Unmarshal(env.Data, c); err != nil {
		return nil, fmt.Errorf("unmarshal %s credentials: %w", env.Provider, err)
	}
	return c, nil
}
