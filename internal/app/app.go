// Package app wires configuration, storage and services into the
// components shared by the API server and the worker.
package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"connector-hub/config"
	"connector-hub/internal/adapter/provider"
	"connector-hub/internal/adapter/provider/googleanalytics"
	"connector-hub/internal/adapter/provider/shopify"
	"connector-hub/internal/adapter/provider/stripe"
	"connector-hub/internal/adapter/storage/mirror"
	pgStorage "connector-hub/internal/adapter/storage/postgres"
	redisStorage "connector-hub/internal/adapter/storage/redis"
	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App holds the process-wide dependencies.
type App struct {
	Config *config.Config
	Log    zerolog.Logger

	Pool    *pgxpool.Pool
	Redis   *goredis.Client
	Records *mirror.Store

	Registry       *provider.Registry
	TokenSvc       *service.JWTTokenService
	AuditSvc       ports.AuditService
	CredentialSvc  *service.CredentialServiceImpl
	ConnectorSvc   ports.ConnectorService
	SyncSvc        *service.SyncServiceImpl
	GatewaySvc     *service.WebhookGatewayImpl
	EndpointSvc    ports.WebhookEndpointService
	Dispatcher     *service.WebhookDispatcherImpl
	Publisher      *service.AsyncPublisher
	RateLimitStore *redisStorage.RateLimitStore
	HealthCheckers []ports.HealthChecker
}

// CallbackURL is the OAuth redirect URL registered with provider.
func CallbackURL(publicURL string, p domain.ProviderType) string {
	return fmt.Sprintf("%s/api/v1/providers/%s/callback", strings.TrimRight(publicURL, "/"), p)
}

// NewRegistry registers every supported provider adapter.
func NewRegistry(cfg *config.Config) (*provider.Registry, error) {
	timeout := cfg.Providers.HTTPTimeout
	return provider.NewRegistry(
		shopify.New(cfg.Providers.Shopify, CallbackURL(cfg.Server.PublicURL, domain.ProviderShopify), timeout),
		stripe.New(cfg.Providers.Stripe, timeout),
		googleanalytics.New(cfg.Providers.GoogleAnalytics, CallbackURL(cfg.Server.PublicURL, domain.ProviderGoogleAnalytics), timeout),
	)
}

// New connects to PostgreSQL, Redis and the record mirror and builds
// every service. Call Close when done.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.Pool = pool

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.Redis = rdb

	records, err := mirror.Open(ctx, cfg.Mirror.DSN)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open record mirror: %w", err)
	}
	a.Records = records

	if err := a.build(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build() error {
	cfg, log := a.Config, a.Log

	registry, err := NewRegistry(cfg)
	if err != nil {
		return fmt.Errorf("register providers: %w", err)
	}
	a.Registry = registry

	// Repositories
	connRepo := pgStorage.NewConnectorRepo(a.Pool)
	runRepo := pgStorage.NewSyncRunRepo(a.Pool)
	eventRepo := pgStorage.NewInboundEventRepo(a.Pool)
	endpointRepo := pgStorage.NewWebhookEndpointRepo(a.Pool)
	deliveryRepo := pgStorage.NewWebhookDeliveryRepo(a.Pool)
	auditRepo := pgStorage.NewAuditRepo(a.Pool)
	transactor := pgStorage.NewTransactor(a.Pool)

	// Redis stores
	nonceStore := redisStorage.NewNonceStore(a.Redis)
	outcomeCache := redisStorage.NewOutcomeCache(a.Redis)
	a.RateLimitStore = redisStorage.NewRateLimitStore(a.Redis)

	// Core services
	credEnc, err := service.NewAESEncryptionService(cfg.Encryption.Key, service.PurposeConnectorCredentials)
	if err != nil {
		return fmt.Errorf("credential encryption: %w", err)
	}
	secretEnc, err := service.NewAESEncryptionService(cfg.Encryption.Key, service.PurposeEndpointSecrets)
	if err != nil {
		return fmt.Errorf("endpoint secret encryption: %w", err)
	}
	sigSvc := service.NewHMACSignatureService()
	a.TokenSvc = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	a.AuditSvc = service.NewAuditService(auditRepo, log)

	// Outbound webhooks
	httpClient := &http.Client{Timeout: cfg.Webhooks.DeliveryTimeout}
	a.Dispatcher = service.NewWebhookDispatcher(endpointRepo, deliveryRepo, secretEnc, sigSvc, httpClient, cfg.Webhooks, log)
	a.Publisher = service.NewAsyncPublisher(a.Dispatcher, cfg.Webhooks.DeliveryTimeout*2, log)
	a.EndpointSvc = service.NewEndpointService(endpointRepo, deliveryRepo, secretEnc, sigSvc, cfg.Webhooks, log)

	// Business services
	a.CredentialSvc = service.NewCredentialService(
		connRepo,
		registry,
		credEnc,
		a.TokenSvc,
		nonceStore,
		a.Publisher,
		a.AuditSvc,
		cfg.OAuth.StateTTL,
		cfg.OAuth.RefreshSkew,
		log,
	)
	a.ConnectorSvc = service.NewConnectorService(connRepo, a.CredentialSvc, a.Publisher, log)
	a.SyncSvc = service.NewSyncService(
		connRepo,
		runRepo,
		transactor,
		a.CredentialSvc,
		registry,
		a.Records,
		a.Publisher,
		cfg.Sync,
		log,
	)
	a.GatewaySvc = service.NewWebhookGateway(
		registry,
		connRepo,
		eventRepo,
		a.CredentialSvc,
		a.Records,
		outcomeCache,
		a.Publisher,
		cfg.Webhooks,
		log,
	)

	a.HealthCheckers = []ports.HealthChecker{
		pgStorage.NewHealthCheck(a.Pool),
		redisStorage.NewHealthCheck(a.Redis),
		a.Records,
	}
	return nil
}

// Close waits for in-flight event publishes and releases connections.
func (a *App) Close() {
	if a.Publisher != nil {
		a.Publisher.Wait()
	}
	if a.Records != nil {
		if err := a.Records.Close(); err != nil {
			a.Log.Warn().Err(err).Msg("closing record mirror")
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn().Err(err).Msg("closing redis")
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
