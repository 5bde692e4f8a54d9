// Package translatable attaches locale-aware translation behavior to
// persisted domain entities. The host persistence engine stays external and
// is consumed through the narrow contracts in pkg/interfaces; this package
// re-exports the stable public surface.
package translatable

import (
	"github.com/uptrace/bun"

	"github.com/beintranet/go-translatable/behavior"
	"github.com/beintranet/go-translatable/internal/engine"
	"github.com/beintranet/go-translatable/internal/locale"
	"github.com/beintranet/go-translatable/internal/logging"
	"github.com/beintranet/go-translatable/internal/logging/gologger"
	"github.com/beintranet/go-translatable/internal/mapping"
	"github.com/beintranet/go-translatable/internal/runtimeconfig"
	"github.com/beintranet/go-translatable/internal/store"
	"github.com/beintranet/go-translatable/internal/uow"
	"github.com/beintranet/go-translatable/pkg/interfaces"
)

// DefaultLocale is the active locale of a freshly constructed engine.
const DefaultLocale = locale.DefaultLocale

// Query hints let a read-query layer override locale resolution per query.
// The engine passes them through opaquely; interpreting them is the query
// layer's concern.
const (
	HintLocale          = "translatable.locale"
	HintFallbackLocales = "translatable.fallback_locales"
	HintInnerJoin       = "translatable.inner_join"
	HintSkipResolve     = "translatable.skip_resolve"
)

// Engine exports the lifecycle engine.
type Engine = engine.Engine

// Option exports the engine construction options.
type Option = engine.Option

// Config exports the engine runtime configuration.
type Config = runtimeconfig.Config

// LoggingConfig exports the logging options forwarded to the provider.
type LoggingConfig = runtimeconfig.LoggingConfig

// Registry exports the shared mapping configuration registry.
type Registry = mapping.Registry

// TypeConfig exports the per-type translation mapping.
type TypeConfig = behavior.TypeConfig

// SlugOptions exports slug linkage options.
type SlugOptions = behavior.SlugOptions

// StoreOptions exports storage adapter options.
type StoreOptions = behavior.StoreOptions

// Accessor exports the field accessor pair.
type Accessor = behavior.Accessor

// Translatable exports the entity contract.
type Translatable = behavior.Translatable

// TranslationRecord exports the translation record contract.
type TranslationRecord = behavior.TranslationRecord

// CollectionHolder exports the attached collection contract.
type CollectionHolder = behavior.CollectionHolder

// UnitOfWork exports the consumed change-tracking contract.
type UnitOfWork = interfaces.UnitOfWork

// TranslationStore exports the consumed lookup contract.
type TranslationStore = interfaces.TranslationStore

// Listener exports the lifecycle listener contract implemented by the engine.
type Listener = interfaces.Listener

// Logger exports the leveled logging contract consumed by the engine.
type Logger = interfaces.Logger

// LoggerProvider exports the named logger factory contract.
type LoggerProvider = interfaces.LoggerProvider

// ChangeSet exports the unit-of-work change-set mapping.
type ChangeSet = interfaces.ChangeSet

// Change exports a single change-set transition.
type Change = interfaces.Change

// MemoryUnitOfWork exports the in-memory reference unit of work.
type MemoryUnitOfWork = uow.Memory

// BunStore exports the bun-backed translation store.
type BunStore = store.BunStore

// MappingValidationError exports the fatal flush-time configuration error.
type MappingValidationError = behavior.MappingValidationError

var (
	ErrMappingValidation = behavior.ErrMappingValidation
	ErrNotTranslatable   = behavior.ErrNotTranslatable
	ErrLocaleRequired    = behavior.ErrLocaleRequired
)

// WithLoggerProvider exports the logging option for engine construction.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return engine.WithLoggerProvider(provider)
}

// DefaultConfig returns the baseline engine configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// New constructs a translation engine from configuration, a shared mapping
// registry, and a translation store.
func New(cfg Config, registry *Registry, translationStore TranslationStore, opts ...Option) (*Engine, error) {
	return engine.New(cfg, registry, translationStore, opts...)
}

// NewRegistry constructs an empty mapping registry.
func NewRegistry() *Registry {
	return mapping.NewRegistry()
}

// NewMemoryUnitOfWork constructs the in-memory reference unit of work, which
// also serves as a TranslationStore.
func NewMemoryUnitOfWork(registry *Registry, provider interfaces.LoggerProvider) *MemoryUnitOfWork {
	return uow.NewMemory(registry, logging.ModuleLogger(provider, "translatable.uow"))
}

// NewBunStore constructs a bun-backed translation store.
func NewBunStore(db *bun.DB, registry *Registry, provider interfaces.LoggerProvider) *BunStore {
	return store.NewBunStore(db, registry, logging.StoreLogger(provider))
}

// NewLoggerProvider constructs a go-logger backed provider from the logging
// configuration.
func NewLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	return gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
	})
}
