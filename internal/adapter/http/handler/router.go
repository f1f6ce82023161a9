package handler

import (
	"connector-hub/config"
	"connector-hub/internal/adapter/http/middleware"
	"connector-hub/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ConnectorSvc   ports.ConnectorService
	SyncSvc        ports.SyncService
	CredentialSvc  ports.CredentialService
	GatewaySvc     ports.InboundWebhookService
	EndpointSvc    ports.WebhookEndpointService
	TokenSvc       ports.TokenService
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	RateLimits     config.RateLimitConfig
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	MaxBodyBytes   int64
	MaxWebhookBody int64
	StatusPageURL  string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	apiBody := deps.MaxBodyBytes
	if apiBody <= 0 {
		apiBody = middleware.DefaultAPIBodyBytes
	}
	webhookBody := deps.MaxWebhookBody
	if webhookBody <= 0 {
		webhookBody = middleware.DefaultWebhookBodyBytes
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (deep: postgres, redis, record mirror)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.RateLimitRules(deps.RateLimits)

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok || rule.Limit <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Inbound provider webhooks (authenticated by provider signature) ---
	webhookHandler := NewWebhookHandler(deps.GatewaySvc)
	webhooks := r.Group("/webhooks/:provider", rl(middleware.GroupWebhooks), middleware.BodyLimit(webhookBody))
	{
		webhooks.GET("", webhookHandler.Describe)
		webhooks.POST("", webhookHandler.Receive)
		webhooks.POST("/:connectorId", webhookHandler.Receive)
	}

	v1 := r.Group("/api/v1", middleware.BodyLimit(apiBody))
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	api := rl(middleware.GroupAPI)

	// --- Provider connect flows ---
	providerHandler := NewProviderHandler(deps.CredentialSvc, deps.StatusPageURL, deps.Logger)
	providers := v1.Group("/providers/:provider")
	{
		// Reached by browser redirect from the provider; the signed state
		// carries the tenant.
		providers.GET("/callback", api, providerHandler.Callback)
		providers.GET("/authorize", jwtAuth, api, providerHandler.Authorize)
		providers.POST("/api-key", jwtAuth, api, providerHandler.ConnectAPIKey)
	}

	// --- Connectors (JWT-authenticated) ---
	connectorHandler := NewConnectorHandler(deps.ConnectorSvc)
	syncHandler := NewSyncHandler(deps.SyncSvc)
	connectors := v1.Group("/connectors", jwtAuth, api)
	{
		connectors.GET("", connectorHandler.List)
		connectors.GET("/:id", connectorHandler.Get)
		connectors.DELETE("/:id", connectorHandler.Delete)
		connectors.POST("/:id/enable", connectorHandler.Enable)
		connectors.POST("/:id/disable", connectorHandler.Disable)
		connectors.POST("/:id/test", connectorHandler.TestConnection)
		connectors.POST("/:id/sync", syncHandler.Trigger)
		connectors.GET("/:id/sync", syncHandler.Status)
	}

	// --- Outbound webhook endpoints ---
	endpointHandler := NewEndpointHandler(deps.EndpointSvc)
	endpoints := v1.Group("/webhook-endpoints", jwtAuth, api)
	{
		endpoints.POST("", endpointHandler.Create)
		endpoints.GET("", endpointHandler.List)
		endpoints.DELETE("/:id", endpointHandler.Revoke)
		endpoints.GET("/:id/deliveries", endpointHandler.ListDeliveries)
	}

	v1.GET("/webhook-events", jwtAuth, api, webhookHandler.ListEvents)

	return r
}
