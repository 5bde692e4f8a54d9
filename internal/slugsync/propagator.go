package slugsync

import (
	"context"
	"reflect"
	"strings"

	slug "github.com/goliatone/go-slug"

	"github.com/beintranet/go-translatable/behavior"
	"github.com/beintranet/go-translatable/internal/logging"
	"github.com/beintranet/go-translatable/internal/mapping"
	"github.com/beintranet/go-translatable/pkg/interfaces"
)

// Propagator copies committed slug values from translation records back onto
// their owning entities. It is stateless across calls; each invocation
// consumes only the persisted object and the in-progress unit of work.
type Propagator struct {
	registry *mapping.Registry
	logger   interfaces.Logger
}

// New constructs a slug propagator bound to the shared mapping registry.
func New(registry *mapping.Registry, logger interfaces.Logger) *Propagator {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Propagator{registry: registry, logger: logger}
}

// Propagate inspects a just-persisted object. Objects that are not
// translation records, or whose owning type has no slug linkage, are ignored.
// For each linked field the record's value is written onto the owner through
// an out-of-band extra update, and the owner's baseline is rewritten so it is
// not reported dirty again for the same value. An empty record value is first
// generated from the configured source field and scheduled back onto the
// record's own row, since the record committed without it.
func (p *Propagator) Propagate(ctx context.Context, uow interfaces.UnitOfWork, object any) error {
	record, ok := object.(behavior.TranslationRecord)
	if !ok {
		return nil
	}
	owner := record.Owner()
	if owner == nil {
		return nil
	}
	cfg, ok := p.registry.Lookup(owner.Kind())
	if !ok || len(cfg.Slugs) == 0 {
		return nil
	}

	for field, opts := range cfg.Slugs {
		recordAccess, ok := cfg.TranslationAccess[field]
		if !ok {
			continue
		}
		value := recordAccess.Get(record)
		if isEmpty(value) {
			generated, ok := p.generate(record, cfg, opts)
			if !ok {
				continue
			}
			recordAccess.Set(record, generated)
			// The record already committed without the slug, so its own row
			// must be updated inside the same flush as well.
			uow.ScheduleExtraUpdate(record, interfaces.ChangeSet{
				field: {Old: value, New: generated},
			})
			uow.SetOriginalProperty(record, field, generated)
			value = generated
		}

		ownerAccess, ok := cfg.EntityAccess[field]
		if !ok {
			continue
		}
		current := ownerAccess.Get(owner)
		if reflect.DeepEqual(current, value) {
			continue
		}

		ownerAccess.Set(owner, value)
		uow.ScheduleExtraUpdate(owner, interfaces.ChangeSet{
			field: {Old: current, New: value},
		})
		uow.SetOriginalProperty(owner, field, value)

		p.logger.Debug("slug propagated to owner",
			"kind", cfg.Kind,
			"field", field,
			"locale", record.Locale(),
		)
	}
	return nil
}

// generate derives a slug from the record's configured source field.
func (p *Propagator) generate(record behavior.TranslationRecord, cfg *behavior.TypeConfig, opts behavior.SlugOptions) (string, bool) {
	if strings.TrimSpace(opts.SourceField) == "" {
		return "", false
	}
	accessor, ok := cfg.TranslationAccess[opts.SourceField]
	if !ok {
		return "", false
	}
	source, ok := accessor.Get(record).(string)
	if !ok || strings.TrimSpace(source) == "" {
		return "", false
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		return "", false
	}
	return normalized, true
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	default:
		return false
	}
}
