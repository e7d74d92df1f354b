package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mycurrency/internal/repository"
)

// ErrUnknownProvider indicates a provider configuration names no registered adapter.
var ErrUnknownProvider = errors.New("unknown provider name")

// Registered provider names. Selection is strictly by configuration name.
const (
	NameFixer = "Fixer"
	NameMock  = "Mock"
)

// CodeLister supplies the known currency codes adapters need for basket requests.
type CodeLister interface {
	ListCodes(ctx context.Context) ([]string, error)
}

// Registry instantiates the adapter matching a provider configuration's name.
// When a cache client is present, adapters are wrapped with response caching.
type Registry struct {
	codes   CodeLister
	cache   *redis.Client
	ttl     time.Duration
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewRegistry creates a Registry. cache may be nil to disable response caching.
func NewRegistry(codes CodeLister, cache *redis.Client, ttl, timeout time.Duration, logger *zap.SugaredLogger) *Registry {
	return &Registry{
		codes:   codes,
		cache:   cache,
		ttl:     ttl,
		timeout: timeout,
		log:     logger,
	}
}

// Adapter builds the adapter for the given provider configuration. An unknown
// name is a configuration error: it is logged and returned, and the caller
// must treat the provider as unusable and move on to the next one.
func (r *Registry) Adapter(ctx context.Context, cfg repository.Provider) (Adapter, error) {
	knownCodes, err := r.codes.ListCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list currency codes for provider %s: %w", cfg.Name, err)
	}

	var adapter Adapter
	switch cfg.Name {
	case NameFixer:
		adapter = NewFixerAdapter(cfg.BaseURL, cfg.APIKey, cfg.DefaultBase, knownCodes, r.timeout, r.log)
	case NameMock:
		adapter = NewMockAdapter(knownCodes)
	default:
		r.log.Errorw("Provider name not registered", "name", cfg.Name)
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Name)
	}

	if r.cache != nil {
		adapter = NewCachedAdapter(adapter, r.cache, r.ttl, cfg.Name)
	}
	return adapter, nil
}
