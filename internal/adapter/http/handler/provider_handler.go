package handler

import (
	"errors"
	"net/http"
	"net/url"

	"connector-hub/internal/adapter/http/dto"
	"connector-hub/internal/adapter/http/middleware"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/logger"
	"connector-hub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProviderHandler handles provider-keyed connect flows.
type ProviderHandler struct {
	credentialSvc ports.CredentialService
	statusPageURL string
	log           zerolog.Logger
}

// NewProviderHandler creates a new ProviderHandler. OAuth callbacks redirect
// to statusPageURL; when it is empty they answer with JSON instead.
func NewProviderHandler(credentialSvc ports.CredentialService, statusPageURL string, log zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{
		credentialSvc: credentialSvc,
		statusPageURL: statusPageURL,
		log:           logger.Component(log, "oauth_handler"),
	}
}

// Authorize handles GET /api/v1/providers/:provider/authorize.
func (h *ProviderHandler) Authorize(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	authURL, err := h.credentialSvc.AuthorizationURL(c.Request.Context(), ports.AuthorizeRequest{
		TenantID: tenantID,
		UserID:   middleware.UserID(c),
		Provider: providerParam(c),
		Params:   c.Request.URL.Query(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.AuthorizeResponse{AuthorizationURL: authURL})
}

// Callback handles GET /api/v1/providers/:provider/callback. The provider
// redirects the user's browser here, so it is unauthenticated and always
// ends on the status page.
func (h *ProviderHandler) Callback(c *gin.Context) {
	provider := providerParam(c)
	query := c.Request.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		h.log.Info().Str("provider", string(provider)).Str("provider_error", providerErr).Msg("user denied authorization")
		h.finish(c, nil, apperror.ErrInvalidState().WithDetails(map[string]string{"provider_error": providerErr}))
		return
	}

	conn, err := h.credentialSvc.CompleteOAuth(c.Request.Context(), ports.OAuthCallback{
		Provider: provider,
		Code:     query.Get("code"),
		State:    query.Get("state"),
		Params:   query,
		ClientIP: c.ClientIP(),
	})
	h.finish(c, conn, err)
}

func (h *ProviderHandler) finish(c *gin.Context, conn *domain.Connector, err error) {
	if h.statusPageURL == "" {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, dto.ToConnectorResponse(conn))
		return
	}

	q := url.Values{}
	if err != nil {
		code := "SYS_000"
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			code = appErr.Code
		}
		q.Set("error", code)
	} else {
		q.Set("success", string(conn.ProviderType))
		q.Set("connector_id", conn.ID.String())
	}
	c.Redirect(http.StatusFound, h.statusPageURL+"?"+q.Encode())
}

// ConnectAPIKey handles POST /api/v1/providers/:provider/api-key.
func (h *ProviderHandler) ConnectAPIKey(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req dto.APIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	conn, err := h.credentialSvc.ConnectAPIKey(c.Request.Context(), ports.APIKeyConnectRequest{
		TenantID: tenantID,
		UserID:   middleware.UserID(c),
		Provider: providerParam(c),
		Fields:   req.Fields,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, conn.ID.String())
	response.Created(c, dto.ToConnectorResponse(conn))
}
