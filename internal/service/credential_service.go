package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
	"connector-hub/pkg/apperror"
	"connector-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const oauthNonceScope = "oauth_state"

// CredentialServiceImpl implements ports.CredentialService: the OAuth dance,
// static API keys, and decrypt-validate-refresh for callers that need usable
// credentials.
type CredentialServiceImpl struct {
	connRepo    ports.ConnectorRepository
	registry    ports.ProviderRegistry
	encSvc      ports.EncryptionService
	tokenSvc    ports.TokenService
	nonces      ports.NonceStore
	publisher   ports.EventPublisher
	audit       ports.AuditService
	stateTTL    time.Duration
	refreshSkew time.Duration
	now         func() time.Time
	log         zerolog.Logger
}

// NewCredentialService creates a new CredentialServiceImpl.
func NewCredentialService(
	connRepo ports.ConnectorRepository,
	registry ports.ProviderRegistry,
	encSvc ports.EncryptionService,
	tokenSvc ports.TokenService,
	nonces ports.NonceStore,
	publisher ports.EventPublisher,
	audit ports.AuditService,
	stateTTL time.Duration,
	refreshSkew time.Duration,
	log zerolog.Logger,
) *CredentialServiceImpl {
	return &CredentialServiceImpl{
		connRepo:    connRepo,
		registry:    registry,
		encSvc:      encSvc,
		tokenSvc:    tokenSvc,
		nonces:      nonces,
		publisher:   publisher,
		audit:       audit,
		stateTTL:    stateTTL,
		refreshSkew: refreshSkew,
		now:         func() time.Time { return time.Now().UTC() },
		log:         logger.Component(log, "credentials"),
	}
}

// AuthorizationURL signs the tenant, user and a single-use nonce into the
// state token. A PKCE verifier travels inside the state, encrypted.
func (s *CredentialServiceImpl) AuthorizationURL(ctx context.Context, req ports.AuthorizeRequest) (string, error) {
	adapter, err := s.registry.OAuth(req.Provider)
	if err != nil {
		return "", toAppError(err)
	}

	state := ports.OAuthState{
		TenantID: req.TenantID,
		UserID:   req.UserID,
		Provider: req.Provider,
		Nonce:    uuid.NewString(),
	}
	var verifier string
	if adapter.UsesPKCE() {
		verifier = oauth2.GenerateVerifier()
		enc, err := s.encSvc.Encrypt(verifier)
		if err != nil {
			return "", apperror.ErrEncryptionFailure(fmt.Errorf("encrypt code verifier: %w", err))
		}
		state.CodeVerifier = enc
	}

	token, err := s.tokenSvc.SignState(state, s.stateTTL)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("sign oauth state: %w", err))
	}
	authURL, err := adapter.AuthorizationURL(token, verifier, req.Params)
	if err != nil {
		return "", apperror.Validation(err.Error())
	}
	return authURL, nil
}

// CompleteOAuth validates the callback, exchanges the code and connects.
func (s *CredentialServiceImpl) CompleteOAuth(ctx context.Context, cb ports.OAuthCallback) (*domain.Connector, error) {
	adapter, err := s.registry.OAuth(cb.Provider)
	if err != nil {
		return nil, toAppError(err)
	}

	state, err := s.tokenSvc.ParseState(cb.State)
	if err != nil || state.Provider != cb.Provider {
		return nil, apperror.ErrInvalidState()
	}
	if err := adapter.VerifyCallback(cb.Params); err != nil {
		var sigErr *domain.SignatureVerificationError
		if errors.As(err, &sigErr) {
			return nil, apperror.ErrInvalidState()
		}
		return nil, toAppError(err)
	}
	if cb.Code == "" {
		return nil, apperror.Validation("missing authorization code")
	}

	fresh, err := s.nonces.CheckAndSet(ctx, oauthNonceScope, state.Nonce, s.stateTTL)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check oauth nonce: %w", err))
	}
	if !fresh {
		return nil, apperror.ErrInvalidState()
	}

	var verifier string
	if state.CodeVerifier != "" {
		verifier, err = s.encSvc.Decrypt(state.CodeVerifier)
		if err != nil {
			return nil, apperror.ErrInvalidState()
		}
	}

	creds, account, err := adapter.ExchangeCode(ctx, cb.Code, verifier, cb.Params)
	if err != nil {
		s.log.Warn().Err(err).Str("provider", string(cb.Provider)).Msg("oauth code exchange failed")
		return nil, apperror.ErrCodeExchange(err)
	}

	conn, err := s.saveConnection(ctx, state.TenantID, cb.Provider, creds, account)
	if err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]string{"provider": string(cb.Provider), "flow": "oauth"})
	s.audit.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		TenantID:     &conn.TenantID,
		UserID:       state.UserID,
		Action:       domain.AuditActionConnect,
		ResourceType: "connector",
		ResourceID:   conn.ID.String(),
		Details:      string(details),
		IPAddress:    cb.ClientIP,
		CreatedAt:    s.now(),
	})
	return conn, nil
}

// ConnectAPIKey validates static key input and proves it works before
// storing it.
func (s *CredentialServiceImpl) ConnectAPIKey(ctx context.Context, req ports.APIKeyConnectRequest) (*domain.Connector, error) {
	keyAdapter, err := s.registry.APIKey(req.Provider)
	if err != nil {
		return nil, toAppError(err)
	}
	syncAdapter, err := s.registry.Sync(req.Provider)
	if err != nil {
		return nil, toAppError(err)
	}

	creds, account, err := keyAdapter.CredentialsFromInput(req.Fields)
	if err != nil {
		return nil, toAppError(err)
	}
	if !syncAdapter.TestConnection(ctx, creds) {
		return nil, apperror.ErrProviderConnection(&domain.ConnectionError{
			Provider: req.Provider,
			Err:      errors.New("test connection failed"),
		})
	}
	return s.saveConnection(ctx, req.TenantID, req.Provider, creds, account)
}

// saveConnection reconnects the tenant's existing connector for provider, or
// creates one.
func (s *CredentialServiceImpl) saveConnection(ctx context.Context, tenantID uuid.UUID, provider domain.ProviderType, creds domain.Credentials, account string) (*domain.Connector, error) {
	if err := creds.Validate(); err != nil {
		return nil, toAppError(err)
	}
	enc, expiry, err := s.seal(creds)
	if err != nil {
		return nil, err
	}

	existing, err := s.connRepo.FindByTenantProvider(ctx, tenantID, provider)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find connector: %w", err))
	}

	now := s.now()
	conn := existing
	if conn != nil {
		conn.CredentialsEnc = enc
		conn.CredentialsExpiry = expiry
		conn.ExternalAccountID = account
		conn.Status = domain.ConnectorStatusConnected
		conn.IsEnabled = true
		conn.UpdatedAt = now
		if err := s.connRepo.UpdateConnection(ctx, conn); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("update connector: %w", err))
		}
	} else {
		conn = &domain.Connector{
			ID:                uuid.New(),
			TenantID:          tenantID,
			ProviderType:      provider,
			ExternalAccountID: account,
			CredentialsEnc:    enc,
			CredentialsExpiry: expiry,
			Status:            domain.ConnectorStatusConnected,
			IsEnabled:         true,
			Settings:          map[string]any{},
			LastSyncStatus:    domain.SyncStatusNone,
			Version:           1,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := s.connRepo.Create(ctx, conn); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("create connector: %w", err))
		}
	}

	s.log.Info().
		Str("connector_id", conn.ID.String()).
		Str("tenant_id", tenantID.String()).
		Str("provider", string(provider)).
		Bool("reconnected", existing != nil).
		Msg("connector connected")

	s.publish(ctx, domain.OutboundEvent{
		ID:         uuid.New(),
		Type:       domain.EventConnectorConnected,
		TenantID:   tenantID,
		OccurredAt: now,
		Data:       connectorEventData(conn),
	})
	return conn, nil
}

// Resolve returns usable credentials for c. Expiring OAuth tokens are
// refreshed and the new ones persisted before they are handed out.
func (s *CredentialServiceImpl) Resolve(ctx context.Context, c *domain.Connector) (domain.Credentials, error) {
	if c.CredentialsEnc == "" {
		return nil, &domain.AuthenticationError{Provider: c.ProviderType, Reason: "connector has no credentials"}
	}
	plain, err := s.encSvc.Decrypt(c.CredentialsEnc)
	if err != nil {
		return nil, fmt.Errorf("decrypt credentials: %w", err)
	}
	creds, err := domain.UnmarshalCredentials([]byte(plain))
	if err != nil {
		return nil, err
	}
	if creds.Provider() != c.ProviderType {
		return nil, &domain.AuthenticationError{Provider: c.ProviderType, Reason: "stored credentials belong to " + string(creds.Provider())}
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	r, ok := creds.(domain.Refreshable)
	if !ok || !r.NeedsRefresh(s.now(), s.refreshSkew) {
		return creds, nil
	}
	refresher, ok := s.registry.Refresher(c.ProviderType)
	if !ok {
		return nil, &domain.AuthenticationError{Provider: c.ProviderType, Reason: "access token expired"}
	}
	refreshed, err := refresher.RefreshCredentials(ctx, creds)
	if err != nil {
		return nil, err
	}

	enc, expiry, err := s.seal(refreshed)
	if err != nil {
		return nil, err
	}
	if err := s.connRepo.UpdateCredentials(ctx, c.ID, enc, expiry); err != nil {
		return nil, fmt.Errorf("store refreshed credentials: %w", err)
	}
	c.CredentialsEnc = enc
	c.CredentialsExpiry = expiry

	s.log.Info().Str("connector_id", c.ID.String()).Str("provider", string(c.ProviderType)).Msg("credentials refreshed")
	return refreshed, nil
}

// TestConnection reports false, not an error, for unusable credentials.
func (s *CredentialServiceImpl) TestConnection(ctx context.Context, c *domain.Connector) (bool, error) {
	adapter, err := s.registry.Sync(c.ProviderType)
	if err != nil {
		return false, err
	}
	creds, err := s.Resolve(ctx, c)
	if err != nil {
		var authErr *domain.AuthenticationError
		if errors.As(err, &authErr) {
			return false, nil
		}
		return false, err
	}
	return adapter.TestConnection(ctx, creds), nil
}

func (s *CredentialServiceImpl) seal(creds domain.Credentials) (string, *time.Time, error) {
	plain, err := domain.MarshalCredentials(creds)
	if err != nil {
		return "", nil, apperror.InternalError(err)
	}
	enc, err := s.encSvc.Encrypt(string(plain))
	if err != nil {
		return "", nil, apperror.ErrEncryptionFailure(fmt.Errorf("encrypt credentials: %w", err))
	}
	var expiry *time.Time
	if r, ok := creds.(domain.Refreshable); ok {
		expiry = r.Expiry()
	}
	return enc, expiry, nil
}

func (s *CredentialServiceImpl) publish(ctx context.Context, evt domain.OutboundEvent) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn().Err(err).Str("event_type", string(evt.Type)).Msg("failed to publish event")
	}
}

func connectorEventData(c *domain.Connector) map[string]any {
	return map[string]any{
		"connector_id": c.ID,
		"provider":     c.ProviderType,
		"status":       c.Status,
	}
}
