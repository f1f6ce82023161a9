package service

import (
	"context"
	"fmt"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type connectorService struct {
	connRepo  ports.ConnectorRepository
	credSvc   ports.CredentialService
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewConnectorService creates the tenant-facing connector lifecycle service.
func NewConnectorService(
	connRepo ports.ConnectorRepository,
	credSvc ports.CredentialService,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) ports.ConnectorService {
	return &connectorService{
		connRepo:  connRepo,
		credSvc:   credSvc,
		publisher: publisher,
		log:       logger.Component(log, "connectors"),
	}
}

func (s *connectorService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Connector, error) {
	conns, err := s.connRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list connectors: %w", err))
	}
	return conns, nil
}

// Get hides connectors of other tenants behind not found.
func (s *connectorService) Get(ctx context.Context, tenantID, id uuid.UUID) (*domain.Connector, error) {
	return loadTenantConnector(ctx, s.connRepo, tenantID, id)
}

func (s *connectorService) SetEnabled(ctx context.Context, tenantID, id uuid.UUID, enabled bool) (*domain.Connector, error) {
	conn, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if enabled && conn.Status == domain.ConnectorStatusDisabled {
		return nil, apperror.ErrConnectorNotSyncable("connector was disconnected, connect it again")
	}
	if conn.IsEnabled == enabled {
		return conn, nil
	}
	if err := s.connRepo.SetEnabled(ctx, id, enabled); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("set enabled: %w", err))
	}
	conn.IsEnabled = enabled
	conn.UpdatedAt = time.Now().UTC()

	s.log.Info().Str("connector_id", id.String()).Bool("enabled", enabled).Msg("connector toggled")
	return conn, nil
}

// Delete soft-deletes the connector and wipes its credentials.
func (s *connectorService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	conn, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.connRepo.Disconnect(ctx, id); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("disconnect: %w", err))
	}
	conn.Status = domain.ConnectorStatusDisabled
	conn.IsEnabled = false

	s.log.Info().Str("connector_id", id.String()).Str("provider", string(conn.ProviderType)).Msg("connector disconnected")
	if err := s.publisher.Publish(ctx, domain.OutboundEvent{
		ID:         uuid.New(),
		Type:       domain.EventConnectorDisconnected,
		TenantID:   tenantID,
		OccurredAt: time.Now().UTC(),
		Data:       connectorEventData(conn),
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to publish connector.disconnected")
	}
	return nil
}

func (s *connectorService) TestConnection(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	conn, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return false, err
	}
	ok, err := s.credSvc.TestConnection(ctx, conn)
	if err != nil {
		return false, toAppError(err)
	}
	return ok, nil
}

func loadTenantConnector(ctx context.Context, repo ports.ConnectorRepository, tenantID, id uuid.UUID) (*domain.Connector, error) {
	conn, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get connector: %w", err))
	}
	if conn == nil || (tenantID != uuid.Nil && conn.TenantID != tenantID) {
		return nil, apperror.ErrConnectorNotFound()
	}
	return conn, nil
}
