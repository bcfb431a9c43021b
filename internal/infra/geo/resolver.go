package geo

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"leadmarket/internal/domain/matching"
	"leadmarket/internal/pkg/config"
)

// Provider is a remote postcode lookup.
type Provider interface {
	Lookup(ctx context.Context, postcode string) (matching.Coordinates, error)
}

// Resolver turns postcodes into coordinates and never fails: cache first,
// then the provider, then the static area table, then the configured default
// area. Lead creation must not depend on a third-party API being up.
type Resolver struct {
	provider        Provider
	defaultPostcode string

	mu    sync.RWMutex
	cache map[string]matching.Coordinates
}

func NewResolver(provider Provider, cfg config.GeoConfig) *Resolver {
	return &Resolver{
		provider:        provider,
		defaultPostcode: cfg.DefaultPostcode,
		cache:           make(map[string]matching.Coordinates),
	}
}

func (r *Resolver) Resolve(ctx context.Context, postcode string) matching.Coordinates {
	key := normalize(postcode)
	if key == "" {
		key = normalize(r.defaultPostcode)
	}

	r.mu.RLock()
	if c, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return c
	}
	r.mu.RUnlock()

	c := r.lookup(ctx, key)

	r.mu.Lock()
	r.cache[key] = c
	r.mu.Unlock()

	return c
}

func (r *Resolver) lookup(ctx context.Context, key string) matching.Coordinates {
	if r.provider != nil {
		c, err := r.provider.Lookup(ctx, key)
		if err == nil {
			return c
		}
		slog.Warn("postcode lookup failed, using static fallback", "postcode", key, "error", err.Error())
	}

	if c, ok := areaCentre(key); ok {
		return c
	}

	if c, ok := areaCentre(r.defaultPostcode); ok {
		return c
	}
	// Central UK as the last resort.
	return matching.Coordinates{Lat: 52.4862, Lng: -1.8904}
}

func normalize(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), " "))
}
