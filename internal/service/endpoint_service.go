package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"connector-hub/config"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxEndpointRetries   = 10
	defaultDeliveryLimit = 50
	maxDeliveryLimit     = 200
)

type endpointService struct {
	endpointRepo ports.WebhookEndpointRepository
	deliveryRepo ports.WebhookDeliveryRepository
	encSvc       ports.EncryptionService
	sigSvc       ports.SignatureService
	cfg          config.WebhooksConfig
	log          zerolog.Logger
}

// NewEndpointService creates the outbound endpoint registration service.
func NewEndpointService(
	endpointRepo ports.WebhookEndpointRepository,
	deliveryRepo ports.WebhookDeliveryRepository,
	encSvc ports.EncryptionService,
	sigSvc ports.SignatureService,
	cfg config.WebhooksConfig,
	log zerolog.Logger,
) ports.WebhookEndpointService {
	return &endpointService{
		endpointRepo: endpointRepo,
		deliveryRepo: deliveryRepo,
		encSvc:       encSvc,
		sigSvc:       sigSvc,
		cfg:          cfg,
		log:          log,
	}
}

func (s *endpointService) Create(ctx context.Context, req ports.CreateEndpointRequest) (*ports.CreatedEndpoint, error) {
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, apperror.Validation("url must be an absolute http(s) URL")
	}
	if len(req.SubscribedEvents) == 0 {
		return nil, apperror.Validation("at least one event type is required")
	}
	for _, e := range req.SubscribedEvents {
		if e != "*" && !domain.IsValidOutboundEvent(e) {
			return nil, apperror.Validation(fmt.Sprintf("unknown event type %q", e))
		}
	}

	maxRetries := req.MaxRetries
	if maxRetries == 0 {
		maxRetries = s.cfg.DefaultMaxRetries
	}
	if maxRetries < 1 || maxRetries > maxEndpointRetries {
		return nil, apperror.Validation(fmt.Sprintf("max_retries must be between 1 and %d", maxEndpointRetries))
	}
	retryDelay := req.RetryDelaySeconds
	if retryDelay == 0 {
		retryDelay = s.cfg.DefaultRetryDelay
	}
	if retryDelay < 1 {
		return nil, apperror.Validation("retry_delay_seconds must be positive")
	}

	secret, err := s.sigSvc.GenerateSecret()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate signing secret: %w", err))
	}
	secretEnc, err := s.encSvc.Encrypt(secret)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	now := time.Now().UTC()
	ep := &domain.OutboundWebhookEndpoint{
		ID:                uuid.New(),
		TenantID:          req.TenantID,
		URL:               req.URL,
		SigningSecretEnc:  secretEnc,
		SubscribedEvents:  req.SubscribedEvents,
		IsActive:          true,
		MaxRetries:        maxRetries,
		RetryDelaySeconds: retryDelay,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.endpointRepo.Create(ctx, ep); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create endpoint: %w", err))
	}

	s.log.Info().
		Str("endpoint_id", ep.ID.String()).
		Str("tenant_id", ep.TenantID.String()).
		Strs("events", ep.SubscribedEvents).
		Msg("webhook endpoint created")

	return &ports.CreatedEndpoint{Endpoint: ep, SigningSecret: secret}, nil
}

func (s *endpointService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.OutboundWebhookEndpoint, error) {
	eps, err := s.endpointRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list endpoints: %w", err))
	}
	return eps, nil
}

// Revoke deactivates the endpoint. Pending deliveries fail on their next
// claim.
func (s *endpointService) Revoke(ctx context.Context, tenantID, id uuid.UUID) error {
	ok, err := s.endpointRepo.Revoke(ctx, tenantID, id)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("revoke endpoint: %w", err))
	}
	if !ok {
		return apperror.ErrEndpointNotFound()
	}
	s.log.Info().Str("endpoint_id", id.String()).Msg("webhook endpoint revoked")
	return nil
}

func (s *endpointService) ListDeliveries(ctx context.Context, tenantID, endpointID uuid.UUID, limit int) ([]domain.OutboundWebhookDelivery, error) {
	ep, err := s.endpointRepo.GetByID(ctx, endpointID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get endpoint: %w", err))
	}
	if ep == nil || ep.TenantID != tenantID {
		return nil, apperror.ErrEndpointNotFound()
	}
	if limit <= 0 {
		limit = defaultDeliveryLimit
	}
	if limit > maxDeliveryLimit {
		limit = maxDeliveryLimit
	}
	ds, err := s.deliveryRepo.ListByEndpoint(ctx, endpointID, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list deliveries: %w", err))
	}
	return ds, nil
}
