package engine

import (
	"context"

	"github.com/beintranet/go-translatable/behavior"
	"github.com/beintranet/go-translatable/internal/flush"
	"github.com/beintranet/go-translatable/internal/locale"
	"github.com/beintranet/go-translatable/internal/logging"
	"github.com/beintranet/go-translatable/internal/mapping"
	"github.com/beintranet/go-translatable/internal/resolver"
	"github.com/beintranet/go-translatable/internal/runtimeconfig"
	"github.com/beintranet/go-translatable/internal/slugsync"
	"github.com/beintranet/go-translatable/pkg/interfaces"
)

// Engine wires the load-time resolver, the flush-time synchronizer, and slug
// back-propagation behind the typed lifecycle listener contract hosts
// register at startup. It is safe to share across goroutines as long as the
// host serializes lifecycle events within one unit of work.
type Engine struct {
	registry *mapping.Registry
	state    *locale.State
	store    interfaces.TranslationStore
	logger   interfaces.Logger

	resolver     *resolver.Resolver
	synchronizer *flush.Synchronizer
	slugs        *slugsync.Propagator
}

var _ interfaces.Listener = (*Engine)(nil)

// Option customizes engine construction.
type Option func(*options)

type options struct {
	provider interfaces.LoggerProvider
}

// WithLoggerProvider supplies the logging provider used to derive the
// engine's module-scoped loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// New constructs an engine from validated configuration, a shared mapping
// registry, and a translation store.
func New(cfg runtimeconfig.Config, registry *mapping.Registry, store interfaces.TranslationStore, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	settings := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	state := locale.NewState()
	state.SetLocale(cfg.DefaultLocale)
	state.SetFallbackLocales(cfg.FallbackLocales)
	state.SetSkipOnLoad(cfg.SkipOnLoad)

	return &Engine{
		registry:     registry,
		state:        state,
		store:        store,
		logger:       logging.ModuleLogger(settings.provider, ""),
		resolver:     resolver.New(store, logging.ResolverLogger(settings.provider)),
		synchronizer: flush.New(store, logging.FlushLogger(settings.provider)),
		slugs:        slugsync.New(registry, logging.SlugLogger(settings.provider)),
	}, nil
}

// SetLocale selects the active locale for subsequent lifecycle events.
func (e *Engine) SetLocale(code string) {
	e.state.SetLocale(code)
}

// Locale returns the active locale.
func (e *Engine) Locale() string {
	return e.state.Locale()
}

// SetFallbackLocales replaces the ordered fallback chain.
func (e *Engine) SetFallbackLocales(codes []string) {
	e.state.SetFallbackLocales(codes)
}

// FallbackLocales returns the fallback chain in priority order.
func (e *Engine) FallbackLocales() []string {
	return e.state.FallbackLocales()
}

// SetSkipOnLoad toggles suppression of load-time resolution.
func (e *Engine) SetSkipOnLoad(skip bool) {
	e.state.SetSkipOnLoad(skip)
}

// SkipOnLoad reports whether load-time resolution is suppressed.
func (e *Engine) SkipOnLoad() bool {
	return e.state.SkipOnLoad()
}

// Registry exposes the shared mapping registry handle.
func (e *Engine) Registry() *mapping.Registry {
	return e.registry
}

// PostLoad overlays the active locale's translation onto a freshly loaded
// entity. Entities without translatable configuration pass through untouched.
func (e *Engine) PostLoad(ctx context.Context, uow interfaces.UnitOfWork, entity any) error {
	if e.state.SkipOnLoad() {
		return nil
	}
	translatable, ok := entity.(behavior.Translatable)
	if !ok {
		return nil
	}
	cfg, ok := e.registry.Lookup(translatable.Kind())
	if !ok {
		return nil
	}

	resolution, err := e.resolver.Resolve(ctx, uow, translatable, cfg, e.state.Locale(), e.state.FallbackLocales())
	if err != nil {
		return err
	}
	if resolution.FallbackUsed {
		e.logger.Debug("translation resolved through fallback",
			"kind", cfg.Kind,
			"requested", resolution.RequestedLocale,
			"resolved", resolution.ResolvedLocale,
		)
	}
	return nil
}

// OnFlush synchronizes translation records for every translatable entity
// staged in the current flush, inserts first, then updates.
func (e *Engine) OnFlush(ctx context.Context, uow interfaces.UnitOfWork) error {
	localeCode := e.state.Locale()

	for _, entity := range uow.ScheduledInserts() {
		cfg, ok := e.registry.Lookup(entity.Kind())
		if !ok {
			continue
		}
		if err := e.synchronizer.SyncInsert(ctx, uow, cfg, entity, localeCode); err != nil {
			return err
		}
	}
	for _, entity := range uow.ScheduledUpdates() {
		cfg, ok := e.registry.Lookup(entity.Kind())
		if !ok {
			continue
		}
		if err := e.synchronizer.SyncUpdate(ctx, uow, cfg, entity, localeCode); err != nil {
			return err
		}
	}
	return nil
}

// PostPersist runs slug back-propagation for persisted translation records.
func (e *Engine) PostPersist(ctx context.Context, uow interfaces.UnitOfWork, object any) error {
	return e.slugs.Propagate(ctx, uow, object)
}
