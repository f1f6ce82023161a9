package handler

import (
	"connector-hub/internal/adapter/http/dto"
	"connector-hub/internal/adapter/http/middleware"
	"connector-hub/internal/core/domain"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tenantFromContext returns the authenticated tenant or writes 401.
func tenantFromContext(c *gin.Context) (uuid.UUID, bool) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return uuid.Nil, false
	}
	return tenantID, true
}

// uuidParam parses a path parameter as a UUID or writes notFound.
func uuidParam(c *gin.Context, name string, notFound func() *apperror.AppError) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, notFound())
		return uuid.Nil, false
	}
	return id, true
}

// providerParam reads :provider, so "Shopify" and "google-analytics" resolve
// to their registered keys.
func providerParam(c *gin.Context) domain.ProviderType {
	return domain.NormalizeProvider(c.Param("provider"))
}

// listLimit binds ?limit=, returning 0 when absent.
func listLimit(c *gin.Context) (int, bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return 0, false
	}
	return q.Limit, true
}
