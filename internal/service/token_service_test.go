package service

import (
	"testing"
	"time"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-key-for-unit-tests"

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, 24*time.Hour, "test-issuer")
	tenantID := uuid.New()

	tokenStr, expiresAt, err := svc.Generate(tenantID, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenStr)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTTokenService_ExpiredToken(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, -1*time.Hour, "test-issuer")

	tokenStr, _, err := svc.Generate(uuid.New(), "u")
	require.NoError(t, err)

	_, err = svc.Validate(tokenStr)
	assert.Error(t, err)
}

func TestJWTTokenService_InvalidSignatureAndIssuer(t *testing.T) {
	svc1 := NewJWTTokenService("secret-1", time.Hour, "issuer")
	svc2 := NewJWTTokenService("secret-2", time.Hour, "issuer")
	svc3 := NewJWTTokenService("secret-1", time.Hour, "other-issuer")

	tokenStr, _, err := svc1.Generate(uuid.New(), "u")
	require.NoError(t, err)

	_, err = svc2.Validate(tokenStr)
	assert.Error(t, err)
	_, err = svc3.Validate(tokenStr)
	assert.Error(t, err)
	_, err = svc1.Validate("not.a.jwt")
	assert.Error(t, err)
}

func TestJWTTokenService_StateRoundTrip(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "test-issuer")
	in := ports.OAuthState{
		TenantID:     uuid.New(),
		UserID:       "user-9",
		Provider:     domain.ProviderGoogleAnalytics,
		Nonce:        "nonce-1",
		CodeVerifier: "v1.cafe",
	}

	token, err := svc.SignState(in, 10*time.Minute)
	require.NoError(t, err)

	out, err := svc.ParseState(token)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestJWTTokenService_StateAndAPITokensDoNotMix(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "test-issuer")

	state, err := svc.SignState(ports.OAuthState{TenantID: uuid.New(), Nonce: "n"}, time.Minute)
	require.NoError(t, err)
	_, err = svc.Validate(state)
	assert.Error(t, err, "a state token must not authenticate API calls")

	api, _, err := svc.Generate(uuid.New(), "u")
	require.NoError(t, err)
	_, err = svc.ParseState(api)
	assert.Error(t, err, "an API token must not pass as OAuth state")
}

func TestJWTTokenService_ExpiredState(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, time.Hour, "test-issuer")

	token, err := svc.SignState(ports.OAuthState{TenantID: uuid.New(), Nonce: "n"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ParseState(token)
	assert.Error(t, err)
}
