package handler

import (
	"connector-hub/internal/adapter/http/dto"
	"connector-hub/internal/adapter/http/middleware"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// EndpointHandler handles outbound webhook endpoint registration.
type EndpointHandler struct {
	endpointSvc ports.WebhookEndpointService
}

// NewEndpointHandler creates a new EndpointHandler.
func NewEndpointHandler(endpointSvc ports.WebhookEndpointService) *EndpointHandler {
	return &EndpointHandler{endpointSvc: endpointSvc}
}

// Create handles POST /api/v1/webhook-endpoints. The signing secret is
// only ever returned here.
func (h *EndpointHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	created, err := h.endpointSvc.Create(c.Request.Context(), ports.CreateEndpointRequest{
		TenantID:          tenantID,
		URL:               req.URL,
		SubscribedEvents:  req.SubscribedEvents,
		MaxRetries:        req.MaxRetries,
		RetryDelaySeconds: req.RetryDelaySeconds,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.ToEndpointResponse(created.Endpoint)
	resp.SigningSecret = created.SigningSecret
	c.Set(middleware.CtxResourceID, created.Endpoint.ID.String())
	response.Created(c, resp)
}

// List handles GET /api/v1/webhook-endpoints.
func (h *EndpointHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	endpoints, err := h.endpointSvc.List(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EndpointResponse, 0, len(endpoints))
	for i := range endpoints {
		items = append(items, dto.ToEndpointResponse(&endpoints[i]))
	}
	response.OK(c, items)
}

// Revoke handles DELETE /api/v1/webhook-endpoints/:id.
func (h *EndpointHandler) Revoke(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", apperror.ErrEndpointNotFound)
	if !ok {
		return
	}

	if err := h.endpointSvc.Revoke(c.Request.Context(), tenantID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "endpoint revoked"})
}

// ListDeliveries handles GET /api/v1/webhook-endpoints/:id/deliveries.
func (h *EndpointHandler) ListDeliveries(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", apperror.ErrEndpointNotFound)
	if !ok {
		return
	}
	limit, ok := listLimit(c)
	if !ok {
		return
	}

	deliveries, err := h.endpointSvc.ListDeliveries(c.Request.Context(), tenantID, id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if deliveries == nil {
		deliveries = []domain.OutboundWebhookDelivery{}
	}
	response.OK(c, deliveries)
}
