// Package cache holds short-lived copies of upstream CRM responses so that
// list and lookup requests do not hit SAP CRM on every call.
package cache

import (
	"context"
	"fmt"
	"time"

	"opportunityrisks/internal/config"
)

// Cache stores opaque byte values under string keys. Backend failures are
// reported as misses; a cache must never fail the request it serves.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
	Close() error
}

// New builds the backend selected by cfg.Driver.
func New(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(cfg.TTL), nil
	case "redis":
		return NewRedis(RedisOptions{URL: cfg.RedisURL, TTL: cfg.TTL})
	case "none", "":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, string, []byte)        {}
func (Noop) Delete(context.Context, string)             {}
func (Noop) Close() error                               { return nil }

var _ Cache = Noop{}

// defaultTTL applies when a backend is built with a non-positive TTL.
const defaultTTL = 5 * time.Minute
