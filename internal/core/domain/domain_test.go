package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProvider(t *testing.T) {
	assert.Equal(t, ProviderGoogleAnalytics, NormalizeProvider(" Google-Analytics "))
	assert.Equal(t, ProviderShopify, NormalizeProvider("SHOPIFY"))
}

func TestConnector_SyncBlocker(t *testing.T) {
	tests := []struct {
		name    string
		status  ConnectorStatus
		enabled bool
		want    string
	}{
		{"connected", ConnectorStatusConnected, true, ""},
		{"active", ConnectorStatusActive, true, ""},
		{"disabled flag", ConnectorStatusActive, false, "connector is disabled"},
		{"draft", ConnectorStatusDraft, true, "connector is not connected"},
		{"error", ConnectorStatusError, true, "connector is not connected"},
		{"disabled status", ConnectorStatusDisabled, true, "connector is not connected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Connector{Status: tt.status, IsEnabled: tt.enabled}
			assert.Equal(t, tt.want, c.SyncBlocker())
		})
	}
}

func TestConnector_NextSyncType(t *testing.T) {
	c := &Connector{}
	assert.Equal(t, SyncTypeFull, c.NextSyncType())

	now := time.Now()
	c.LastSyncAt = &now
	assert.Equal(t, SyncTypeIncremental, c.NextSyncType())
}

func TestCredentials_EnvelopeKeepsProviderTag(t *testing.T) {
	in := &ShopifyCredentials{ShopDomain: "acme.myshopify.com", AccessToken: "shpat_1"}

	b, err := MarshalCredentials(in)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "shopify", raw["provider"])

	out, err := UnmarshalCredentials(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshalCredentials_UnknownProvider(t *testing.T) {
	_, err := UnmarshalCredentials([]byte(`{"provider":"acme","data":{}}`))

	var provErr *UnsupportedProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "acme", provErr.Provider)
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		missing string
	}{
		{"shopify ok", &ShopifyCredentials{ShopDomain: "a", AccessToken: "b"}, ""},
		{"shopify no token", &ShopifyCredentials{ShopDomain: "a"}, "access_token"},
		{"shopify empty", &ShopifyCredentials{}, "access_token, shop_domain"},
		{"stripe ok", &StripeCredentials{APIKey: "sk_test"}, ""},
		{"stripe blank key", &StripeCredentials{APIKey: "  "}, "api_key"},
		{"ga no refresh", &GoogleAnalyticsCredentials{AccessToken: "x"}, "refresh_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.missing == "" {
				assert.NoError(t, err)
				return
			}
			var authErr *AuthenticationError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.creds.Provider(), authErr.Provider)
			assert.Contains(t, authErr.Reason, tt.missing)
		})
	}
}

func TestGoogleAnalyticsCredentials_NeedsRefresh(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(20 * time.Second)
	c := &GoogleAnalyticsCredentials{ExpiresAt: &exp}

	assert.True(t, c.NeedsRefresh(now, 30*time.Second))
	assert.False(t, c.NeedsRefresh(now, 10*time.Second))
	assert.False(t, (&GoogleAnalyticsCredentials{}).NeedsRefresh(now, time.Hour))
}

func TestEntityCounts_OrderPreserved(t *testing.T) {
	var ec EntityCounts
	ec.Set("orders", 1)
	ec.Set("customers", 10)
	ec.Set("orders", 3)

	b, err := json.Marshal(ec)
	require.NoError(t, err)
	assert.Equal(t, `{"orders":3,"customers":10}`, string(b))

	var decoded EntityCounts
	require.NoError(t, json.Unmarshal([]byte(`{"customers":5,"products":2,"orders":0}`), &decoded))
	assert.Equal(t, []string{"customers", "products", "orders"}, decoded.Entities())
	assert.Equal(t, 7, decoded.Total())

	n, ok := decoded.Get("products")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestEntityCounts_RejectsNonObject(t *testing.T) {
	var ec EntityCounts
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &ec))
	require.NoError(t, json.Unmarshal([]byte(`null`), &ec))
	assert.Nil(t, ec)
}

func TestDelivery_RecordAttempt_BoundedRetry(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &OutboundWebhookDelivery{Status: DeliveryStatusPending}

	for i := 1; i <= 3; i++ {
		now := start.Add(time.Duration(i) * time.Minute)
		d.RecordAttempt(now, 500, "HTTP 500", 3, time.Minute)
		assert.Equal(t, i, d.Attempts)
		if i < 3 {
			assert.Equal(t, DeliveryStatusRetrying, d.Status)
			require.NotNil(t, d.NextRetryAt)
			assert.Equal(t, now.Add(time.Minute), *d.NextRetryAt)
		}
	}

	assert.Equal(t, DeliveryStatusFailed, d.Status)
	assert.Nil(t, d.NextRetryAt, "no fourth attempt is scheduled")
	assert.True(t, d.IsTerminal())
}

func TestDelivery_RecordAttempt_Success(t *testing.T) {
	d := &OutboundWebhookDelivery{Status: DeliveryStatusRetrying, Attempts: 1}
	d.RecordAttempt(time.Now(), 204, "", 3, time.Minute)

	assert.Equal(t, DeliveryStatusSuccess, d.Status)
	assert.Equal(t, 2, d.Attempts)
	require.NotNil(t, d.ResponseStatusCode)
	assert.Equal(t, 204, *d.ResponseStatusCode)
	assert.Nil(t, d.ErrorMessage)
}

func TestDelivery_RecordAttempt_NetworkError(t *testing.T) {
	d := &OutboundWebhookDelivery{}
	d.RecordAttempt(time.Now(), 0, "dial tcp: refused", 1, time.Minute)

	assert.Equal(t, DeliveryStatusFailed, d.Status)
	assert.Nil(t, d.ResponseStatusCode)
	require.NotNil(t, d.ErrorMessage)
	assert.Equal(t, "dial tcp: refused", *d.ErrorMessage)
}

func TestEndpoint_Subscribes(t *testing.T) {
	e := &OutboundWebhookEndpoint{SubscribedEvents: []string{"sync.completed"}}
	assert.True(t, e.Subscribes(EventSyncCompleted))
	assert.False(t, e.Subscribes(EventSyncFailed))

	all := &OutboundWebhookEndpoint{SubscribedEvents: []string{"*"}}
	assert.True(t, all.Subscribes(EventRecordDeleted))
}

func TestIsValidOutboundEvent(t *testing.T) {
	assert.True(t, IsValidOutboundEvent("record.upserted"))
	assert.False(t, IsValidOutboundEvent("order.created"))
}

func TestInboundWebhookEvent_IsStale(t *testing.T) {
	now := time.Now()
	e := &InboundWebhookEvent{Status: InboundStatusProcessing, ReceivedAt: now.Add(-10 * time.Minute)}
	assert.True(t, e.IsStale(now, 5*time.Minute))
	assert.False(t, e.IsStale(now, 15*time.Minute))

	e.Status = InboundStatusCompleted
	assert.False(t, e.IsStale(now, time.Second))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"auth", &AuthenticationError{Provider: ProviderStripe}, false},
		{"connection", &ConnectionError{Provider: ProviderStripe, Err: errors.New("reset")}, true},
		{"sync over connection", &SyncError{Entity: "orders", Err: errors.New("502")}, true},
		{"sync over auth", &SyncError{Entity: "orders", Err: &AuthenticationError{}}, false},
		{"signature", &SignatureVerificationError{}, false},
		{"payload", &PayloadError{}, false},
		{"deadline", fmt.Errorf("wrap: %w", context.DeadlineExceeded), true},
		{"unknown", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, ErrorKindTimeout, ErrorKind(&SyncError{Entity: "x", Err: context.DeadlineExceeded}))
	assert.Equal(t, ErrorKindAuthentication, ErrorKind(&AuthenticationError{}))
	assert.Equal(t, ErrorKindConnection, ErrorKind(&ConnectionError{Err: errors.New("x")}))
	assert.Equal(t, ErrorKindSync, ErrorKind(&SyncError{Entity: "x", Err: errors.New("x")}))
	assert.Equal(t, ErrorKindInternal, ErrorKind(errors.New("x")))
}
