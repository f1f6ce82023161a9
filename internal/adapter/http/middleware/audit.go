package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
// It maps route templates and methods to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var tenantID *uuid.UUID
		if id, ok := TenantID(c); ok {
			tenantID = &id
		}
		resourceID := c.Param("id")
		if resourceID == "" {
			resourceID = c.GetString(CtxResourceID)
		}

		details, _ := json.Marshal(map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			TenantID:     tenantID,
			UserID:       UserID(c),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

// CtxResourceID lets a handler name the resource it created.
const CtxResourceID = "audit_resource_id"

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/connectors/:id/sync" && method == http.MethodPost:
		return domain.AuditActionSyncTrigger, "connector"
	case route == "/api/v1/connectors/:id/enable" && method == http.MethodPost:
		return domain.AuditActionEnable, "connector"
	case route == "/api/v1/connectors/:id/disable" && method == http.MethodPost:
		return domain.AuditActionDisable, "connector"
	case route == "/api/v1/connectors/:id" && method == http.MethodDelete:
		return domain.AuditActionDisconnect, "connector"
	case route == "/api/v1/providers/:provider/api-key" && method == http.MethodPost:
		return domain.AuditActionConnect, "connector"
	case route == "/api/v1/webhook-endpoints" && method == http.MethodPost:
		return domain.AuditActionCreateEndpoint, "webhook_endpoint"
	case route == "/api/v1/webhook-endpoints/:id" && method == http.MethodDelete:
		return domain.AuditActionRevokeEndpoint, "webhook_endpoint"
	}
	return "", ""
}
