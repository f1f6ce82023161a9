package service

import (
	"fmt"
	"slices"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateAudience = "oauth-state"

type apiClaims struct {
	UserID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

type stateClaims struct {
	UserID       string `json:"uid"`
	Provider     string `json:"prv"`
	CodeVerifier string `json:"cv,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService using HS256 JWT. API tokens
// and OAuth state tokens share the key but are told apart by audience.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed API token for a tenant user.
func (s *JWTTokenService) Generate(tenantID uuid.UUID, userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := apiClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tenantID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Validate parses an API token. State tokens are rejected.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	var claims apiClaims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, s.keyFunc, s.parserOptions()...); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if slices.Contains(claims.Audience, stateAudience) {
		return nil, fmt.Errorf("state token used as API token")
	}

	tenantID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant ID in token: %w", err)
	}

	return &ports.TokenClaims{
		TenantID: tenantID,
		UserID:   claims.UserID,
	}, nil
}

// SignState issues the OAuth state token. Nonce travels as the token ID.
func (s *JWTTokenService) SignState(state ports.OAuthState, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := stateClaims{
		UserID:       state.UserID,
		Provider:     string(state.Provider),
		CodeVerifier: state.CodeVerifier,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        state.Nonce,
			Subject:   state.TenantID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{stateAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing state: %w", err)
	}
	return token, nil
}

// ParseState verifies signature, expiry and audience of a state token.
func (s *JWTTokenService) ParseState(token string) (*ports.OAuthState, error) {
	var claims stateClaims
	opts := append(s.parserOptions(), jwt.WithAudience(stateAudience))
	if _, err := jwt.ParseWithClaims(token, &claims, s.keyFunc, opts...); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}

	tenantID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant ID in state: %w", err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("state has no nonce")
	}

	return &ports.OAuthState{
		TenantID:     tenantID,
		UserID:       claims.UserID,
		Provider:     domain.ProviderType(claims.Provider),
		Nonce:        claims.ID,
		CodeVerifier: claims.CodeVerifier,
	}, nil
}

func (s *JWTTokenService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}

func (s *JWTTokenService) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	return opts
}
