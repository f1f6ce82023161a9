package handler

import (
	"connector-hub/internal/adapter/http/dto"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// ConnectorHandler handles connector lifecycle endpoints.
type ConnectorHandler struct {
	connectorSvc ports.ConnectorService
}

// NewConnectorHandler creates a new ConnectorHandler.
func NewConnectorHandler(connectorSvc ports.ConnectorService) *ConnectorHandler {
	return &ConnectorHandler{connectorSvc: connectorSvc}
}

// List handles GET /api/v1/connectors.
func (h *ConnectorHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	connectors, err := h.connectorSvc.List(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ConnectorResponse, 0, len(connectors))
	for i := range connectors {
		items = append(items, dto.ToConnectorResponse(&connectors[i]))
	}
	response.OK(c, items)
}

// Get handles GET /api/v1/connectors/:id.
func (h *ConnectorHandler) Get(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", apperror.ErrConnectorNotFound)
	if !ok {
		return
	}

	conn, err := h.connectorSvc.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToConnectorResponse(conn))
}

// Enable handles POST /api/v1/connectors/:id/enable.
func (h *ConnectorHandler) Enable(c *gin.Context) {
	h.setEnabled(c, true)
}

// Disable handles POST /api/v1/connectors/:id/disable.
func (h *ConnectorHandler) Disable(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *ConnectorHandler) setEnabled(c *gin.Context, enabled bool) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", apperror.ErrConnectorNotFound)
	if !ok {
		return
	}

	conn, err := h.connectorSvc.SetEnabled(c.Request.Context(), tenantID, id, enabled)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToConnectorResponse(conn))
}

// Delete handles DELETE /api/v1/connectors/:id.
func (h *ConnectorHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", apperror.ErrConnectorNotFound)
	if !ok {
		return
	}

	if err := h.connectorSvc.Delete(c.Request.Context(), tenantID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "connector disconnected"})
}

// TestConnection handles POST /api/v1/connectors/:id/test.
func (h *ConnectorHandler) TestConnection(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", apperror.ErrConnectorNotFound)
	if !ok {
		return
	}

	connected, err := h.connectorSvc.TestConnection(c.Request.Context(), tenantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.TestConnectionResponse{Connected: connected})
}
