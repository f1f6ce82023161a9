package service

import (
	"context"
	"testing"
	"time"

	"connector-hub/config"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type endpointTestDeps struct {
	svc          ports.WebhookEndpointService
	endpointRepo *mocks.MockWebhookEndpointRepository
	deliveryRepo *mocks.MockWebhookDeliveryRepository
	enc          *AESEncryptionService
	ctrl         *gomock.Controller
}

func setupEndpointService(t *testing.T) *endpointTestDeps {
	ctrl := gomock.NewController(t)
	enc, err := NewAESEncryptionService(testMasterKey, PurposeEndpointSecrets)
	require.NoError(t, err)
	d := &endpointTestDeps{
		endpointRepo: mocks.NewMockWebhookEndpointRepository(ctrl),
		deliveryRepo: mocks.NewMockWebhookDeliveryRepository(ctrl),
		enc:          enc,
		ctrl:         ctrl,
	}
	d.svc = NewEndpointService(d.endpointRepo, d.deliveryRepo, enc, NewHMACSignatureService(), config.WebhooksConfig{
		DefaultMaxRetries: 5,
		DefaultRetryDelay: 60,
	}, newTestLogger())
	return d
}

func TestEndpointService_Create_AppliesDefaults(t *testing.T) {
	d := setupEndpointService(t)
	defer d.ctrl.Finish()

	tenantID := uuid.New()
	var stored *domain.OutboundWebhookEndpoint
	d.endpointRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ep *domain.OutboundWebhookEndpoint) error {
			stored = ep
			return nil
		},
	)

	created, err := d.svc.Create(context.Background(), ports.CreateEndpointRequest{
		TenantID:         tenantID,
		URL:              "https://tenant.example.com/hooks",
		SubscribedEvents: []string{"sync.completed", "sync.failed"},
	})
	require.NoError(t, err)
	assert.Equal(t, tenantID, created.Endpoint.TenantID)
	assert.Equal(t, 5, created.Endpoint.MaxRetries)
	assert.Equal(t, 60, created.Endpoint.RetryDelaySeconds)
	assert.Equal(t, time.Minute, created.Endpoint.RetryDelay())
	assert.True(t, created.Endpoint.IsActive)
	assert.Contains(t, created.SigningSecret, "whsec_")

	// Only the encrypted secret is stored.
	require.NotNil(t, stored)
	assert.NotEqual(t, created.SigningSecret, stored.SigningSecretEnc)
	plain, err := d.enc.Decrypt(stored.SigningSecretEnc)
	require.NoError(t, err)
	assert.Equal(t, created.SigningSecret, plain)
}

func TestEndpointService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  ports.CreateEndpointRequest
	}{
		{name: "relative url", req: ports.CreateEndpointRequest{URL: "/hooks", SubscribedEvents: []string{"*"}}},
		{name: "ftp url", req: ports.CreateEndpointRequest{URL: "ftp://example.com", SubscribedEvents: []string{"*"}}},
		{name: "no events", req: ports.CreateEndpointRequest{URL: "https://example.com"}},
		{name: "unknown event", req: ports.CreateEndpointRequest{URL: "https://example.com", SubscribedEvents: []string{"order.created"}}},
		{name: "too many retries", req: ports.CreateEndpointRequest{URL: "https://example.com", SubscribedEvents: []string{"*"}, MaxRetries: 11}},
		{name: "negative delay", req: ports.CreateEndpointRequest{URL: "https://example.com", SubscribedEvents: []string{"*"}, RetryDelaySeconds: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupEndpointService(t)
			defer d.ctrl.Finish()

			_, err := d.svc.Create(context.Background(), tt.req)
			requireAppCode(t, err, "VAL_001")
		})
	}
}

func TestEndpointService_Revoke_NotFound(t *testing.T) {
	d := setupEndpointService(t)
	defer d.ctrl.Finish()

	tenantID, id := uuid.New(), uuid.New()
	d.endpointRepo.EXPECT().Revoke(gomock.Any(), tenantID, id).Return(false, nil)

	err := d.svc.Revoke(context.Background(), tenantID, id)
	requireAppCode(t, err, "EP_001")
}

func TestEndpointService_ListDeliveries(t *testing.T) {
	d := setupEndpointService(t)
	defer d.ctrl.Finish()

	tenantID := uuid.New()
	ep := &domain.OutboundWebhookEndpoint{ID: uuid.New(), TenantID: tenantID}
	d.endpointRepo.EXPECT().GetByID(gomock.Any(), ep.ID).Return(ep, nil).Times(2)
	d.deliveryRepo.EXPECT().ListByEndpoint(gomock.Any(), ep.ID, defaultDeliveryLimit).
		Return([]domain.OutboundWebhookDelivery{{ID: uuid.New()}}, nil)

	ds, err := d.svc.ListDeliveries(context.Background(), tenantID, ep.ID, 0)
	require.NoError(t, err)
	assert.Len(t, ds, 1)

	_, err = d.svc.ListDeliveries(context.Background(), uuid.New(), ep.ID, 10)
	requireAppCode(t, err, "EP_001")
}
