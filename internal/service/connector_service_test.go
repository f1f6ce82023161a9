package service

import (
	"context"
	"errors"
	"testing"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConnectorService_Get_HidesOtherTenants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRepo := mocks.NewMockConnectorRepository(ctrl)
	svc := NewConnectorService(connRepo, mocks.NewMockCredentialService(ctrl), mocks.NewMockEventPublisher(ctrl), newTestLogger())

	conn := testConnector(uuid.New())
	connRepo.EXPECT().GetByID(gomock.Any(), conn.ID).Return(conn, nil)

	_, err := svc.Get(context.Background(), uuid.New(), conn.ID)
	requireAppCode(t, err, "CON_001")
}

func TestConnectorService_SetEnabled(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.ConnectorStatus
		isEnabled bool
		enable    bool
		wantWrite bool
		wantCode  string
	}{
		{name: "disable", status: domain.ConnectorStatusActive, isEnabled: true, enable: false, wantWrite: true},
		{name: "enable", status: domain.ConnectorStatusConnected, isEnabled: false, enable: true, wantWrite: true},
		{name: "already enabled", status: domain.ConnectorStatusActive, isEnabled: true, enable: true},
		{name: "enable disconnected", status: domain.ConnectorStatusDisabled, isEnabled: false, enable: true, wantCode: "CON_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			connRepo := mocks.NewMockConnectorRepository(ctrl)
			svc := NewConnectorService(connRepo, mocks.NewMockCredentialService(ctrl), mocks.NewMockEventPublisher(ctrl), newTestLogger())

			tenantID := uuid.New()
			conn := testConnector(tenantID)
			conn.Status = tt.status
			conn.IsEnabled = tt.isEnabled

			connRepo.EXPECT().GetByID(gomock.Any(), conn.ID).Return(conn, nil)
			if tt.wantWrite {
				connRepo.EXPECT().SetEnabled(gomock.Any(), conn.ID, tt.enable).Return(nil)
			}

			got, err := svc.SetEnabled(context.Background(), tenantID, conn.ID, tt.enable)
			if tt.wantCode != "" {
				requireAppCode(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.enable, got.IsEnabled)
		})
	}
}

func TestConnectorService_Delete_PublishesDisconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRepo := mocks.NewMockConnectorRepository(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	svc := NewConnectorService(connRepo, mocks.NewMockCredentialService(ctrl), publisher, newTestLogger())

	tenantID := uuid.New()
	conn := testConnector(tenantID)
	connRepo.EXPECT().GetByID(gomock.Any(), conn.ID).Return(conn, nil)
	connRepo.EXPECT().Disconnect(gomock.Any(), conn.ID).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, evt domain.OutboundEvent) error {
			assert.Equal(t, domain.EventConnectorDisconnected, evt.Type)
			data := evt.Data.(map[string]any)
			assert.Equal(t, domain.ConnectorStatusDisabled, data["status"])
			return errors.New("publisher down")
		},
	)

	require.NoError(t, svc.Delete(context.Background(), tenantID, conn.ID))
}

func TestConnectorService_TestConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRepo := mocks.NewMockConnectorRepository(ctrl)
	credSvc := mocks.NewMockCredentialService(ctrl)
	svc := NewConnectorService(connRepo, credSvc, mocks.NewMockEventPublisher(ctrl), newTestLogger())

	tenantID := uuid.New()
	conn := testConnector(tenantID)
	connRepo.EXPECT().GetByID(gomock.Any(), conn.ID).Return(conn, nil)
	credSvc.EXPECT().TestConnection(gomock.Any(), conn).Return(true, nil)

	ok, err := svc.TestConnection(context.Background(), tenantID, conn.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
