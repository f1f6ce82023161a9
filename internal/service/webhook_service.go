package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"connector-hub/config"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Outbound webhook headers.
const (
	HeaderWebhookSignature = "X-Webhook-Signature"
	HeaderWebhookEvent     = "X-Webhook-Event"
	HeaderWebhookID        = "X-Webhook-Id"
	HeaderWebhookDelivery  = "X-Webhook-Delivery"
	HeaderWebhookTimestamp = "X-Webhook-Timestamp"

	webhookUserAgent = "connector-hub-webhooks/1.0"
	maxResponseBody  = 4 << 10
)

// WebhookPayload is the JSON body POSTed to tenant endpoints.
type WebhookPayload struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Data      any       `json:"data"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookDispatcherImpl implements ports.WebhookDispatcher. Each delivery is
// persisted before its first attempt and carries a lease in next_retry_at,
// so a crash mid-attempt leaves it for the retry worker.
type WebhookDispatcherImpl struct {
	endpointRepo ports.WebhookEndpointRepository
	deliveryRepo ports.WebhookDeliveryRepository
	encSvc       ports.EncryptionService
	sigSvc       ports.SignatureService
	httpClient   HTTPClient
	cfg          config.WebhooksConfig
	now          func() time.Time
	log          zerolog.Logger
}

// NewWebhookDispatcher creates a new outbound webhook dispatcher.
func NewWebhookDispatcher(
	endpointRepo ports.WebhookEndpointRepository,
	deliveryRepo ports.WebhookDeliveryRepository,
	encSvc ports.EncryptionService,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	cfg config.WebhooksConfig,
	log zerolog.Logger,
) *WebhookDispatcherImpl {
	return &WebhookDispatcherImpl{
		endpointRepo: endpointRepo,
		deliveryRepo: deliveryRepo,
		encSvc:       encSvc,
		sigSvc:       sigSvc,
		httpClient:   httpClient,
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
		log:          logger.Component(log, "webhook_dispatcher"),
	}
}

// Publish creates one delivery per subscribed endpoint and attempts each
// once. Every row is written before the first attempt, so a slow endpoint
// cannot keep later deliveries from being persisted. Rows not attempted
// before ctx ends, and failed attempts, are left for RetryDue.
func (s *WebhookDispatcherImpl) Publish(ctx context.Context, evt domain.OutboundEvent) error {
	endpoints, err := s.endpointRepo.ListSubscribed(ctx, evt.TenantID, evt.Type)
	if err != nil {
		return fmt.Errorf("list subscribed endpoints: %w", err)
	}
	if len(endpoints) == 0 {
		s.log.Debug().Str("event_type", string(evt.Type)).Str("tenant_id", evt.TenantID.String()).Msg("no subscribers")
		return nil
	}

	payload, err := json.Marshal(WebhookPayload{
		ID:        evt.ID,
		Type:      string(evt.Type),
		CreatedAt: evt.OccurredAt.UTC(),
		Data:      evt.Data,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	type pending struct {
		ep *domain.OutboundWebhookEndpoint
		d  *domain.OutboundWebhookDelivery
	}
	var (
		errs   []error
		queued = make([]pending, 0, len(endpoints))
	)
	for i := range endpoints {
		ep := &endpoints[i]
		now := s.now()
		lease := now.Add(s.cfg.Lease)
		d := &domain.OutboundWebhookDelivery{
			ID:          uuid.New(),
			EndpointID:  ep.ID,
			TenantID:    evt.TenantID,
			EventType:   string(evt.Type),
			EventID:     evt.ID,
			Payload:     payload,
			Status:      domain.DeliveryStatusPending,
			NextRetryAt: &lease,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.deliveryRepo.Create(ctx, d); err != nil {
			errs = append(errs, fmt.Errorf("create delivery for endpoint %s: %w", ep.ID, err))
			continue
		}
		queued = append(queued, pending{ep: ep, d: d})
	}

	for i, q := range queued {
		if ctx.Err() != nil {
			s.log.Warn().
				Str("event_id", evt.ID.String()).
				Int("deferred", len(queued)-i).
				Msg("publish deadline reached, remaining deliveries left for retry")
			break
		}
		if err := s.attempt(ctx, q.ep, q.d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RetryDue claims due deliveries and attempts each once more.
func (s *WebhookDispatcherImpl) RetryDue(ctx context.Context) (int, error) {
	due, err := s.deliveryRepo.ClaimDue(ctx, s.now(), s.cfg.Lease, s.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim due deliveries: %w", err)
	}

	endpoints := make(map[uuid.UUID]*domain.OutboundWebhookEndpoint)
	var errs []error
	for i := range due {
		d := &due[i]
		ep, ok := endpoints[d.EndpointID]
		if !ok {
			ep, err = s.endpointRepo.GetByID(ctx, d.EndpointID)
			if err != nil {
				errs = append(errs, fmt.Errorf("get endpoint %s: %w", d.EndpointID, err))
				continue
			}
			endpoints[d.EndpointID] = ep
		}
		if ep == nil || !ep.IsActive {
			s.abandon(ctx, d)
			continue
		}
		if err := s.attempt(ctx, ep, d); err != nil {
			errs = append(errs, err)
		}
	}
	return len(due), errors.Join(errs...)
}

// attempt POSTs the delivery once and persists the outcome.
func (s *WebhookDispatcherImpl) attempt(ctx context.Context, ep *domain.OutboundWebhookEndpoint, d *domain.OutboundWebhookDelivery) error {
	log := s.log.With().
		Str("delivery_id", d.ID.String()).
		Str("endpoint_id", ep.ID.String()).
		Str("event_type", d.EventType).
		Logger()

	statusCode, errMsg := s.send(ctx, ep, d)
	d.RecordAttempt(s.now(), statusCode, errMsg, ep.MaxRetries, ep.RetryDelay())

	if err := s.deliveryRepo.Update(ctx, d); err != nil {
		return fmt.Errorf("update delivery %s: %w", d.ID, err)
	}
	success := d.Status == domain.DeliveryStatusSuccess
	if err := s.endpointRepo.IncrementCounters(ctx, ep.ID, success); err != nil {
		log.Warn().Err(err).Msg("failed to update endpoint counters")
	}

	switch d.Status {
	case domain.DeliveryStatusSuccess:
		log.Info().Int("attempt", d.Attempts).Int("status", statusCode).Msg("webhook: delivered successfully")
	case domain.DeliveryStatusFailed:
		log.Error().Int("attempt", d.Attempts).Str("error", errMsg).Msg("webhook: all retry attempts exhausted")
	default:
		log.Warn().Int("attempt", d.Attempts).Str("error", errMsg).Time("next_retry_at", *d.NextRetryAt).Msg("webhook: delivery failed, will retry")
	}
	return nil
}

// send returns the response status, or 0 and a reason when none arrived.
func (s *WebhookDispatcherImpl) send(ctx context.Context, ep *domain.OutboundWebhookEndpoint, d *domain.OutboundWebhookDelivery) (int, string) {
	secret, err := s.encSvc.Decrypt(ep.SigningSecretEnc)
	if err != nil {
		s.log.Error().Err(err).Str("endpoint_id", ep.ID.String()).Msg("webhook: failed to decrypt signing secret")
		return 0, "signing secret unavailable"
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.DeliveryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(d.Payload))
	if err != nil {
		return 0, fmt.Sprintf("build request: %v", err)
	}
	ts := s.now().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", webhookUserAgent)
	req.Header.Set(HeaderWebhookSignature, s.sigSvc.Sign(secret, ts, d.Payload))
	req.Header.Set(HeaderWebhookEvent, d.EventType)
	req.Header.Set(HeaderWebhookID, d.EventID.String())
	req.Header.Set(HeaderWebhookDelivery, d.ID.String())
	req.Header.Set(HeaderWebhookTimestamp, strconv.FormatInt(ts, 10))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.StatusCode, ""
	}
	return resp.StatusCode, fmt.Sprintf("endpoint responded %d", resp.StatusCode)
}

// abandon fails a claimed delivery whose endpoint was revoked.
func (s *WebhookDispatcherImpl) abandon(ctx context.Context, d *domain.OutboundWebhookDelivery) {
	now := s.now()
	msg := "endpoint revoked"
	d.Status = domain.DeliveryStatusFailed
	d.NextRetryAt = nil
	d.ErrorMessage = &msg
	d.UpdatedAt = now
	if err := s.deliveryRepo.Update(ctx, d); err != nil {
		s.log.Warn().Err(err).Str("delivery_id", d.ID.String()).Msg("failed to abandon delivery")
	}
}
