package resolver

import (
	"context"
	"strings"

	"github.com/beintranet/go-translatable/behavior"
	"github.com/beintranet/go-translatable/internal/logging"
	"github.com/beintranet/go-translatable/pkg/interfaces"
)

// Resolution describes how a load was satisfied: which locale was requested,
// which one actually supplied the values, and whether anything matched.
type Resolution struct {
	RequestedLocale string
	ResolvedLocale  string
	FallbackUsed    bool
	Missing         bool
}

// Resolver overlays translated field values on freshly loaded entities and
// keeps the unit of work's original-value baselines aligned with what it
// wrote, so change-set computation treats the overlay as the loaded state.
type Resolver struct {
	store  interfaces.TranslationStore
	logger interfaces.Logger
}

// New constructs a load-time resolver bound to a translation store.
func New(store interfaces.TranslationStore, logger interfaces.Logger) *Resolver {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve finds the translation record for the active locale, else the first
// fallback locale with a record, and copies its configured field values onto
// the entity. When no locale matches, every configured field is cleared. All
// written values are registered as the entity's original baseline.
func (r *Resolver) Resolve(ctx context.Context, uow interfaces.UnitOfWork, entity behavior.Translatable, cfg *behavior.TypeConfig, localeCode string, fallbacks []string) (Resolution, error) {
	resolution := Resolution{RequestedLocale: localeCode}
	if entity == nil || cfg == nil || uow == nil {
		resolution.Missing = true
		return resolution, nil
	}
	if strings.TrimSpace(localeCode) == "" {
		return resolution, behavior.ErrLocaleRequired
	}

	record, err := r.store.FindTranslation(ctx, entity, localeCode, cfg.TranslationKind)
	if err != nil {
		return resolution, err
	}
	resolvedLocale := localeCode

	if record == nil {
		for _, fallback := range fallbacks {
			record, err = r.store.FindTranslation(ctx, entity, fallback, cfg.TranslationKind)
			if err != nil {
				return resolution, err
			}
			if record != nil {
				resolvedLocale = fallback
				resolution.FallbackUsed = true
				break
			}
		}
	}

	if record == nil {
		r.clearFields(uow, entity, cfg)
		resolution.Missing = true
		r.logger.Debug("no translation record resolved",
			"kind", cfg.Kind,
			"tracking_id", entity.TrackingID(),
			"locale", localeCode,
		)
		return resolution, nil
	}

	r.applyRecord(uow, entity, cfg, record)
	resolution.ResolvedLocale = resolvedLocale
	return resolution, nil
}

func (r *Resolver) applyRecord(uow interfaces.UnitOfWork, entity behavior.Translatable, cfg *behavior.TypeConfig, record behavior.TranslationRecord) {
	for _, field := range cfg.Fields {
		source, ok := cfg.TranslationAccess[field]
		if !ok {
			continue
		}
		target, ok := cfg.EntityAccess[field]
		if !ok {
			continue
		}
		value := source.Get(record)
		target.Set(entity, value)
		uow.SetOriginalProperty(entity, field, value)
	}
}

func (r *Resolver) clearFields(uow interfaces.UnitOfWork, entity behavior.Translatable, cfg *behavior.TypeConfig) {
	for _, field := range cfg.Fields {
		accessor, ok := cfg.EntityAccess[field]
		if !ok {
			continue
		}
		accessor.Set(entity, nil)
		uow.SetOriginalProperty(entity, field, nil)
	}
}
