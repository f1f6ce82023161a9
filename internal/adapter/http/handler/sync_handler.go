package handler

import (
	"connector-hub/internal/adapter/http/dto"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// SyncHandler handles sync trigger and status endpoints.
type SyncHandler struct {
	syncSvc ports.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncSvc ports.SyncService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc}
}

// Trigger handles POST /api/v1/connectors/:id/sync. The run completes
// before the response is written.
func (h *SyncHandler) Trigger(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", apperror.ErrConnectorNotFound)
	if !ok {
		return
	}

	run, err := h.syncSvc.Trigger(c.Request.Context(), tenantID, id, domain.SyncTriggerAPI)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SyncResponse{
		Success:          true,
		SyncID:           run.ID.String(),
		RecordsProcessed: run.RecordsProcessed,
	})
}

// Status handles GET /api/v1/connectors/:id/sync.
func (h *SyncHandler) Status(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", apperror.ErrConnectorNotFound)
	if !ok {
		return
	}

	view, err := h.syncSvc.Status(c.Request.Context(), tenantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToSyncStatusResponse(view.Connector, view.Runs))
}
