// Package provider holds the adapter registry and helpers shared by the
// per-provider packages. Adapters are registered at startup; optional
// capabilities (webhooks, OAuth, API keys, token refresh) are discovered by
// interface assertion, so adding a provider never touches a central switch.
package provider

import (
	"fmt"

	"connector-hub/internal/core/domain"
	"connector-hub/internal/core/ports"
)

// Registry implements ports.ProviderRegistry.
type Registry struct {
	order     []domain.ProviderType
	sync      map[domain.ProviderType]ports.ProviderAdapter
	webhook   map[domain.ProviderType]ports.WebhookAdapter
	oauth     map[domain.ProviderType]ports.OAuthAdapter
	apiKey    map[domain.ProviderType]ports.APIKeyAdapter
	refresher map[domain.ProviderType]ports.TokenRefresher
}

// NewRegistry registers adapters in the given order.
func NewRegistry(adapters ...ports.ProviderAdapter) (*Registry, error) {
	r := &Registry{
		sync:      make(map[domain.ProviderType]ports.ProviderAdapter),
		webhook:   make(map[domain.ProviderType]ports.WebhookAdapter),
		oauth:     make(map[domain.ProviderType]ports.OAuthAdapter),
		apiKey:    make(map[domain.ProviderType]ports.APIKeyAdapter),
		refresher: make(map[domain.ProviderType]ports.TokenRefresher),
	}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds an adapter and every capability it implements.
func (r *Registry) Register(a ports.ProviderAdapter) error {
	p := a.Provider()
	if _, dup := r.sync[p]; dup {
		return fmt.Errorf("provider %s registered twice", p)
	}
	r.order = append(r.order, p)
	r.sync[p] = a

	if w, ok := a.(ports.WebhookAdapter); ok {
		r.webhook[p] = w
	}
	if o, ok := a.(ports.OAuthAdapter); ok {
		r.oauth[p] = o
	}
	if k, ok := a.(ports.APIKeyAdapter); ok {
		r.apiKey[p] = k
	}
	if t, ok := a.(ports.TokenRefresher); ok {
		r.refresher[p] = t
	}
	return nil
}

func (r *Registry) Sync(p domain.ProviderType) (ports.ProviderAdapter, error) {
	if a, ok := r.sync[p]; ok {
		return a, nil
	}
	return nil, &domain.UnsupportedProviderError{Provider: string(p)}
}

func (r *Registry) Webhook(p domain.ProviderType) (ports.WebhookAdapter, error) {
	if a, ok := r.webhook[p]; ok {
		return a, nil
	}
	return nil, &domain.UnsupportedProviderError{Provider: string(p)}
}

func (r *Registry) OAuth(p domain.ProviderType) (ports.OAuthAdapter, error) {
	if a, ok := r.oauth[p]; ok {
		return a, nil
	}
	return nil, &domain.UnsupportedProviderError{Provider: string(p)}
}

func (r *Registry) APIKey(p domain.ProviderType) (ports.APIKeyAdapter, error) {
	if a, ok := r.apiKey[p]; ok {
		return a, nil
	}
	return nil, &domain.UnsupportedProviderError{Provider: string(p)}
}

func (r *Registry) Refresher(p domain.ProviderType) (ports.TokenRefresher, bool) {
	t, ok := r.refresher[p]
	return t, ok
}

// Providers lists registered providers in registration order.
func (r *Registry) Providers() []domain.ProviderType {
	out := make([]domain.ProviderType, len(r.order))
	copy(out, r.order)
	return out
}
