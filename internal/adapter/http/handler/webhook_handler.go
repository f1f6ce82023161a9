package handler

import (
	"errors"
	"io"
	"net/http"

	"connector-hub/internal/adapter/http/dto"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WebhookHandler handles inbound provider webhooks.
type WebhookHandler struct {
	gateway ports.InboundWebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(gateway ports.InboundWebhookService) *WebhookHandler {
	return &WebhookHandler{gateway: gateway}
}

// Receive handles POST /webhooks/:provider and /webhooks/:provider/:connectorId.
// Signature checks need the exact bytes, so the body is read raw.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrPayloadTooLarge(tooLarge.Limit))
			return
		}
		response.Error(c, apperror.ErrInvalidPayload("request body unreadable"))
		return
	}

	req := ports.InboundWebhookRequest{
		Provider: providerParam(c),
		Header:   c.Request.Header,
		Body:     body,
	}
	if raw := c.Param("connectorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.ErrUnresolvableWebhook())
			return
		}
		req.ConnectorID = &id
	}

	outcome, err := h.gateway.Handle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WebhookReceivedResponse{
		Received:  true,
		EventID:   outcome.EventID,
		Action:    string(outcome.Action),
		Duplicate: outcome.Duplicate,
	})
}

// Describe handles GET /webhooks/:provider.
func (h *WebhookHandler) Describe(c *gin.Context) {
	info, err := h.gateway.Describe(providerParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

// ListEvents handles GET /api/v1/webhook-events.
func (h *WebhookHandler) ListEvents(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	limit, ok := listLimit(c)
	if !ok {
		return
	}

	events, err := h.gateway.ListEvents(c.Request.Context(), tenantID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if events == nil {
		events = []domain.InboundWebhookEvent{}
	}
	response.OK(c, events)
}
