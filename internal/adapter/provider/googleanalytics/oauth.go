package googleanalytics

import (
	"context"
	"errors"
	"net/url"

	"connector-hub/internal/core/domain"

	"golang.org/x/oauth2"
)

func (a *Adapter) UsesPKCE() bool { return true }

func (a *Adapter) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     a.cfg.ClientID,
		ClientSecret: a.cfg.ClientSecret,
		RedirectURL:  a.redirectURL,
		Scopes:       a.cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  a.cfg.AuthURL,
			TokenURL: a.cfg.TokenURL,
		},
	}
}

// AuthorizationURL requests offline access and forces the consent screen so
// Google issues a refresh token on every grant.
func (a *Adapter) AuthorizationURL(state, codeVerifier string, _ url.Values) (string, error) {
	if codeVerifier == "" {
		return "", errors.New("google analytics: code verifier required")
	}
	return a.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(codeVerifier),
	), nil
}

// VerifyCallback surfaces a denied consent screen as an authentication error.
func (a *Adapter) VerifyCallback(params url.Values) error {
	if e := params.Get("error"); e != "" {
		return &domain.AuthenticationError{Provider: domain.ProviderGoogleAnalytics, Reason: "authorization denied: " + e}
	}
	return nil
}

// ExchangeCode returns the token pair. The connector is not bound to a
// single account; one grant can read every account the user can see.
func (a *Adapter) ExchangeCode(ctx context.Context, code, codeVerifier string, _ url.Values) (domain.Credentials, string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client.HTTP())
	tok, err := a.oauthConfig().Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, "", a.tokenError(err)
	}
	creds := fromToken(tok)
	if err := creds.Validate(); err != nil {
		return nil, "", err
	}
	return creds, "", nil
}

// RefreshCredentials trades the refresh token for a new access token. Google
// omits the refresh token from refresh responses; the old one is kept.
func (a *Adapter) RefreshCredentials(ctx context.Context, creds domain.Credentials) (domain.Credentials, error) {
	c, ok := creds.(*domain.GoogleAnalyticsCredentials)
	if !ok || c == nil || c.RefreshToken == "" {
		return nil, &domain.AuthenticationError{Provider: domain.ProviderGoogleAnalytics, Reason: "no refresh token"}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client.HTTP())
	tok, err := a.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: c.RefreshToken}).Token()
	if err != nil {
		return nil, a.tokenError(err)
	}
	refreshed := fromToken(tok)
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = c.RefreshToken
	}
	refreshed.AccountID = c.AccountID
	return refreshed, nil
}

func (a *Adapter) tokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		reason := retrieveErr.ErrorCode
		if reason == "" {
			reason = "token endpoint rejected the request"
		}
		return &domain.AuthenticationError{Provider: domain.ProviderGoogleAnalytics, Reason: reason}
	}
	return &domain.ConnectionError{Provider: domain.ProviderGoogleAnalytics, Err: err}
}

func fromToken(tok *oauth2.Token) *domain.GoogleAnalyticsCredentials {
	creds := &domain.GoogleAnalyticsCredentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		exp := tok.Expiry.UTC()
		creds.ExpiresAt = &exp
	}
	return creds
}
