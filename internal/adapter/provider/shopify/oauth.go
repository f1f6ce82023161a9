package shopify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strings"

	"connector-hub/internal/core/domain"

	"golang.org/x/oauth2"
)

// ErrInvalidShopDomain is returned when the shop parameter is not a
// myshopify.com domain.
var ErrInvalidShopDomain = errors.New("shopify: invalid shop domain")

func (a *Adapter) UsesPKCE() bool { return false }

func (a *Adapter) oauthConfig(shop string) *oauth2.Config {
	base := a.shopURL(shop)
	return &oauth2.Config{
		ClientID:     a.cfg.ClientID,
		ClientSecret: a.cfg.ClientSecret,
		RedirectURL:  a.redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   base + "/admin/oauth/authorize",
			TokenURL:  base + "/admin/oauth/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthorizationURL needs the "shop" parameter; every shop has its own
// authorization endpoint.
func (a *Adapter) AuthorizationURL(state, _ string, params url.Values) (string, error) {
	shop := normalizeShop(params.Get("shop"))
	if !ValidShopDomain(shop) {
		return "", ErrInvalidShopDomain
	}
	// Shopify expects comma separated scopes.
	scope := oauth2.SetAuthURLParam("scope", strings.Join(a.cfg.Scopes, ","))
	return a.oauthConfig(shop).AuthCodeURL(state, scope), nil
}

// VerifyCallback checks the hmac Shopify adds to the redirect query: a hex
// HMAC-SHA256 of the remaining parameters, sorted, keyed by the app secret.
func (a *Adapter) VerifyCallback(params url.Values) error {
	if !ValidShopDomain(normalizeShop(params.Get("shop"))) {
		return ErrInvalidShopDomain
	}
	got, err := hex.DecodeString(params.Get("hmac"))
	if err != nil || len(got) == 0 {
		return &domain.SignatureVerificationError{Provider: domain.ProviderShopify, Reason: "callback hmac missing or malformed"}
	}
	if !hmac.Equal(callbackDigest(a.cfg.ClientSecret, params), got) {
		return &domain.SignatureVerificationError{Provider: domain.ProviderShopify, Reason: "callback hmac mismatch"}
	}
	return nil
}

func callbackDigest(secret string, params url.Values) []byte {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "hmac" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+strings.Join(params[k], ","))
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return mac.Sum(nil)
}

// ExchangeCode trades the code for an offline token bound to the shop.
func (a *Adapter) ExchangeCode(ctx context.Context, code, _ string, params url.Values) (domain.Credentials, string, error) {
	shop := normalizeShop(params.Get("shop"))
	if !ValidShopDomain(shop) {
		return nil, "", ErrInvalidShopDomain
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client.HTTP())
	tok, err := a.oauthConfig(shop).Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, "", &domain.AuthenticationError{Provider: domain.ProviderShopify, Reason: "code exchange rejected"}
		}
		return nil, "", &domain.ConnectionError{Provider: domain.ProviderShopify, Err: err}
	}

	scope, _ := tok.Extra("scope").(string)
	return &domain.ShopifyCredentials{
		ShopDomain:  shop,
		AccessToken: tok.AccessToken,
		Scope:       scope,
	}, shop, nil
}
