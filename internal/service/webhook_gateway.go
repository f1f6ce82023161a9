package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"connector-hub/config"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultEventsLimit = 50
	maxEventsLimit     = 200
)

// WebhookGatewayImpl implements ports.InboundWebhookService. The owning
// connector is resolved before verification, from a per-connector URL or
// from the account id the provider stamps on the request, so exactly one
// secret is ever tried.
type WebhookGatewayImpl struct {
	registry  ports.ProviderRegistry
	connRepo  ports.ConnectorRepository
	eventRepo ports.InboundWebhookRepository
	credSvc   ports.CredentialService
	records   ports.RecordStore
	cache     ports.WebhookOutcomeCache
	publisher ports.EventPublisher
	cfg       config.WebhooksConfig
	now       func() time.Time
	log       zerolog.Logger
}

// NewWebhookGateway creates a new WebhookGatewayImpl.
func NewWebhookGateway(
	registry ports.ProviderRegistry,
	connRepo ports.ConnectorRepository,
	eventRepo ports.InboundWebhookRepository,
	credSvc ports.CredentialService,
	records ports.RecordStore,
	cache ports.WebhookOutcomeCache,
	publisher ports.EventPublisher,
	cfg config.WebhooksConfig,
	log zerolog.Logger,
) *WebhookGatewayImpl {
	return &WebhookGatewayImpl{
		registry:  registry,
		connRepo:  connRepo,
		eventRepo: eventRepo,
		credSvc:   credSvc,
		records:   records,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
		log:       logger.Component(log, "webhook_gateway"),
	}
}

// Handle verifies, deduplicates and applies one provider webhook. Returned
// AppErrors are 4xx for permanent failures and 5xx when a redelivery may
// succeed.
func (s *WebhookGatewayImpl) Handle(ctx context.Context, req ports.InboundWebhookRequest) (*domain.WebhookOutcome, error) {
	adapter, err := s.registry.Webhook(req.Provider)
	if err != nil {
		return nil, apperror.ErrWebhookProviderUnknown(string(req.Provider))
	}

	conn, err := s.resolveConnector(ctx, adapter, req)
	if err != nil {
		return nil, err
	}
	log := s.log.With().
		Str("provider", string(req.Provider)).
		Str("connector_id", conn.ID.String()).
		Logger()

	creds, err := s.credSvc.Resolve(ctx, conn)
	if err != nil {
		var authErr *domain.AuthenticationError
		if errors.As(err, &authErr) {
			log.Warn().Err(err).Msg("webhook for connector without usable credentials")
			return nil, apperror.ErrUnresolvableWebhook()
		}
		return nil, apperror.ErrWebhookProcessing(fmt.Errorf("resolve credentials: %w", err))
	}
	secret, err := adapter.WebhookSecret(creds)
	if err != nil {
		log.Warn().Err(err).Msg("no webhook secret to verify with")
		return nil, apperror.ErrInvalidSignature()
	}

	now := s.now()
	evt, err := adapter.VerifyAndParseWebhook(ports.RawWebhook{
		Body:       req.Body,
		Signature:  req.Header.Get(adapter.SignatureHeader()),
		Header:     req.Header,
		ReceivedAt: now,
	}, secret)
	if err != nil {
		log.Warn().Str("kind", domain.ErrorKind(err)).Msg("webhook rejected")
		return nil, toAppError(err)
	}
	log = log.With().Str("event_id", evt.ID).Str("event_type", evt.Type).Logger()

	cacheKey := string(req.Provider) + ":" + evt.ID
	if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
		log.Warn().Err(err).Msg("outcome cache read failed, falling through to DB")
	} else if cached != nil {
		cached.Duplicate = true
		return cached, nil
	}

	if outcome, err := s.completedOutcome(ctx, req.Provider, evt); err != nil || outcome != nil {
		return outcome, err
	}

	record := &domain.InboundWebhookEvent{
		ID:              uuid.New(),
		Provider:        req.Provider,
		EventType:       evt.Type,
		ProviderEventID: evt.ID,
		ConnectorID:     &conn.ID,
		TenantID:        &conn.TenantID,
		Payload:         req.Body,
		Status:          domain.InboundStatusProcessing,
		ReceivedAt:      now,
	}
	claimed, err := s.eventRepo.Claim(ctx, record, now.Add(-s.cfg.ProcessingTimeout))
	if err != nil {
		return nil, apperror.ErrWebhookProcessing(fmt.Errorf("claim event: %w", err))
	}
	if !claimed {
		// A concurrent delivery owns the event or just finished it.
		outcome, err := s.completedOutcome(ctx, req.Provider, evt)
		if err != nil || outcome != nil {
			return outcome, err
		}
		return nil, apperror.ErrEventInProgress()
	}

	action := domain.WebhookActionIgnored
	route, supported := adapter.EventRoutes()[evt.Type]
	if supported {
		if err := s.apply(ctx, adapter, conn, evt, route); err != nil {
			if markErr := s.eventRepo.MarkFailed(ctx, record.ID, err.Error()); markErr != nil {
				log.Error().Err(markErr).Msg("failed to mark webhook event failed")
			}
			log.Warn().Err(err).Msg("webhook processing failed")
			if !domain.IsTransient(err) {
				return nil, toAppError(err)
			}
			return nil, apperror.ErrWebhookProcessing(err)
		}
		action = domain.WebhookActionProcessed
	}

	if err := s.eventRepo.MarkCompleted(ctx, record.ID, action); err != nil {
		return nil, apperror.ErrWebhookProcessing(fmt.Errorf("complete event: %w", err))
	}
	outcome := &domain.WebhookOutcome{EventID: evt.ID, EventType: evt.Type, Action: action}
	if err := s.cache.Set(ctx, cacheKey, outcome, s.cfg.OutcomeCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache webhook outcome")
	}
	log.Info().Str("action", string(action)).Msg("webhook handled")
	return outcome, nil
}

func (s *WebhookGatewayImpl) resolveConnector(ctx context.Context, adapter ports.WebhookAdapter, req ports.InboundWebhookRequest) (*domain.Connector, error) {
	var (
		conn *domain.Connector
		err  error
	)
	if req.ConnectorID != nil {
		conn, err = s.connRepo.GetByID(ctx, *req.ConnectorID)
		if conn != nil && conn.ProviderType != req.Provider {
			conn = nil
		}
	} else {
		account := adapter.ResolveAccount(req.Header, req.Body)
		if account == "" {
			return nil, apperror.ErrUnresolvableWebhook()
		}
		conn, err = s.connRepo.FindByExternalAccount(ctx, req.Provider, account)
	}
	if err != nil {
		return nil, apperror.ErrWebhookProcessing(fmt.Errorf("resolve connector: %w", err))
	}
	if conn == nil || conn.Status == domain.ConnectorStatusDisabled {
		return nil, apperror.ErrUnresolvableWebhook()
	}
	return conn, nil
}

// completedOutcome returns the recorded outcome when the event was already
// completed, or nil.
func (s *WebhookGatewayImpl) completedOutcome(ctx context.Context, provider domain.ProviderType, evt *domain.ParsedEvent) (*domain.WebhookOutcome, error) {
	existing, err := s.eventRepo.GetByProviderEventID(ctx, provider, evt.ID)
	if err != nil {
		return nil, apperror.ErrWebhookProcessing(fmt.Errorf("lookup event: %w", err))
	}
	if existing == nil || existing.Status != domain.InboundStatusCompleted {
		return nil, nil
	}
	outcome := &domain.WebhookOutcome{
		EventID:   existing.ProviderEventID,
		EventType: existing.EventType,
		Action:    existing.Action,
	}
	if err := s.cache.Set(ctx, string(provider)+":"+evt.ID, outcome, s.cfg.OutcomeCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache webhook outcome")
	}
	dup := *outcome
	dup.Duplicate = true
	return &dup, nil
}

// apply performs the routed mirror change. Records are keyed by the
// provider's id, so applying the same event twice is harmless.
func (s *WebhookGatewayImpl) apply(ctx context.Context, adapter ports.WebhookAdapter, conn *domain.Connector, evt *domain.ParsedEvent, route domain.EventRoute) error {
	scope := domain.RecordScope{TenantID: conn.TenantID, ConnectorID: conn.ID, Provider: conn.ProviderType}
	data := map[string]any{
		"connector_id":    conn.ID,
		"provider":        conn.ProviderType,
		"source_event_id": evt.ID,
	}

	var evtType domain.OutboundEventType
	switch route.Op {
	case domain.RecordOpUpsert:
		rec, err := adapter.ExtractRecord(evt)
		if err != nil {
			return err
		}
		if _, err := s.records.UpsertRecords(ctx, scope, route.Entity, []domain.Record{rec}); err != nil {
			return fmt.Errorf("upsert record: %w", err)
		}
		evtType = domain.EventRecordUpserted
		data["entity"] = route.Entity
		data["external_id"] = rec.ExternalID
		data["record"] = rec.Data
	case domain.RecordOpDelete:
		rec, err := adapter.ExtractRecord(evt)
		if err != nil {
			return err
		}
		if err := s.records.DeleteRecord(ctx, scope, route.Entity, rec.ExternalID, rec.UpdatedAt); err != nil {
			return fmt.Errorf("delete record: %w", err)
		}
		evtType = domain.EventRecordDeleted
		data["entity"] = route.Entity
		data["external_id"] = rec.ExternalID
	case domain.RecordOpRevoke:
		if err := s.connRepo.Disconnect(ctx, conn.ID); err != nil {
			return fmt.Errorf("disconnect: %w", err)
		}
		evtType = domain.EventConnectorDisconnected
		data["status"] = domain.ConnectorStatusDisabled
		data["reason"] = evt.Type
	default:
		return fmt.Errorf("unknown record op %q", route.Op)
	}

	if err := s.publisher.Publish(ctx, domain.OutboundEvent{
		ID:         uuid.New(),
		Type:       evtType,
		TenantID:   conn.TenantID,
		OccurredAt: evt.OccurredAt,
		Data:       data,
	}); err != nil {
		s.log.Warn().Err(err).Str("event_type", string(evtType)).Msg("failed to publish event")
	}
	return nil
}

// Describe reports whether the provider's webhooks can be verified and
// which event types are handled.
func (s *WebhookGatewayImpl) Describe(provider domain.ProviderType) (*ports.WebhookProviderInfo, error) {
	adapter, err := s.registry.Webhook(provider)
	if err != nil {
		return nil, apperror.ErrWebhookProviderUnknown(string(provider))
	}
	routes := adapter.EventRoutes()
	events := make([]string, 0, len(routes))
	for t := range routes {
		events = append(events, t)
	}
	sort.Strings(events)
	return &ports.WebhookProviderInfo{
		Provider:        provider,
		Configured:      adapter.Configured(),
		SupportedEvents: events,
	}, nil
}

func (s *WebhookGatewayImpl) ListEvents(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.InboundWebhookEvent, error) {
	if limit <= 0 {
		limit = defaultEventsLimit
	}
	if limit > maxEventsLimit {
		limit = maxEventsLimit
	}
	events, err := s.eventRepo.ListByTenant(ctx, tenantID, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list webhook events: %w", err))
	}
	return events, nil
}
