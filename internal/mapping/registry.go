package mapping

import (
	"sort"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/beintranet/go-translatable/behavior"
)

// Registry holds the immutable per-type translation configurations. It is an
// explicit shared handle passed to every cooperating component at
// construction time; there is no package-level registry.
type Registry struct {
	mu                sync.RWMutex
	byKind            map[string]*behavior.TypeConfig
	byTranslationKind map[string]*behavior.TypeConfig
}

// NewRegistry constructs an empty configuration registry.
func NewRegistry() *Registry {
	return &Registry{
		byKind:            map[string]*behavior.TypeConfig{},
		byTranslationKind: map[string]*behavior.TypeConfig{},
	}
}

// Register validates and stores a type configuration. Entries are immutable
// once registered; re-registering a kind fails.
//
// Translation-side accessors are deliberately not validated here: a missing
// translation accessor is the flush-time mapping validation error, so hosts
// observe configuration bugs on the first write attempt rather than at boot.
func (r *Registry) Register(cfg behavior.TypeConfig) error {
	if r == nil {
		return behavior.ErrKindRequired
	}
	normalized, err := normalizeConfig(cfg)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKind[normalized.Kind]; exists {
		return behavior.ErrKindAlreadyRegistered
	}
	r.byKind[normalized.Kind] = normalized
	r.byTranslationKind[normalized.TranslationKind] = normalized
	return nil
}

// Lookup returns the configuration for an entity kind.
func (r *Registry) Lookup(kind string) (*behavior.TypeConfig, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.byKind[strings.TrimSpace(kind)]
	return cfg, ok
}

// LookupByTranslationKind returns the configuration owning a translation kind.
func (r *Registry) LookupByTranslationKind(kind string) (*behavior.TypeConfig, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.byTranslationKind[strings.TrimSpace(kind)]
	return cfg, ok
}

// Kinds returns the registered entity kinds in sorted order.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.byKind))
	for kind := range r.byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func normalizeConfig(cfg behavior.TypeConfig) (*behavior.TypeConfig, error) {
	errs := validation.Errors{}

	cfg.Kind = strings.TrimSpace(cfg.Kind)
	cfg.TranslationKind = strings.TrimSpace(cfg.TranslationKind)

	if cfg.Kind == "" {
		errs["kind"] = validation.NewError("translatable.mapping.kind_required", behavior.ErrKindRequired.Error())
	}
	if cfg.TranslationKind == "" {
		errs["translation_kind"] = validation.NewError("translatable.mapping.translation_kind_required", behavior.ErrTranslationKindRequired.Error())
	}
	if cfg.NewTranslation == nil {
		errs["factory"] = validation.NewError("translatable.mapping.factory_required", behavior.ErrTranslationFactoryMissing.Error())
	}

	fields := make([]string, 0, len(cfg.Fields))
	seen := map[string]struct{}{}
	for _, field := range cfg.Fields {
		trimmed := strings.TrimSpace(field)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		fields = append(fields, trimmed)
	}
	if len(fields) == 0 {
		errs["fields"] = validation.NewError("translatable.mapping.fields_required", behavior.ErrNoTranslatableFields.Error())
	}
	cfg.Fields = fields

	for _, field := range fields {
		if _, ok := cfg.EntityAccess[field]; !ok {
			errs["fields."+field] = validation.NewError("translatable.mapping.entity_accessor_missing", behavior.ErrEntityAccessorMissing.Error())
		}
	}
	for field := range cfg.Slugs {
		if _, ok := cfg.EntityAccess[field]; !ok {
			errs["slugs."+field] = validation.NewError("translatable.mapping.slug_accessor_missing", behavior.ErrEntityAccessorMissing.Error())
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// Copy mutable members so later caller mutations cannot leak in.
	cfg.EntityAccess = copyAccessors(cfg.EntityAccess)
	cfg.TranslationAccess = copyAccessors(cfg.TranslationAccess)
	cfg.Slugs = copySlugs(cfg.Slugs)

	return &cfg, nil
}

func copyAccessors(src map[string]behavior.Accessor) map[string]behavior.Accessor {
	out := make(map[string]behavior.Accessor, len(src))
	for field, accessor := range src {
		out[field] = accessor
	}
	return out
}

func copySlugs(src map[string]behavior.SlugOptions) map[string]behavior.SlugOptions {
	if src == nil {
		return nil
	}
	out := make(map[string]behavior.SlugOptions, len(src))
	for field, opts := range src {
		out[field] = opts
	}
	return out
}
