package flush

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/beintranet/go-translatable/behavior"
	"github.com/beintranet/go-translatable/internal/logging"
	"github.com/beintranet/go-translatable/pkg/interfaces"
)

const mappingValidationCode = "TRANSLATABLE_MAPPING_INVALID"

// Synchronizer keeps translation records for the active locale in step with
// entity change-sets during a flush. It runs once per scheduled insert and
// once per scheduled update, before the batch commits, and schedules the
// touched record for persistence inside the same flush.
type Synchronizer struct {
	store  interfaces.TranslationStore
	logger interfaces.Logger
}

// New constructs a flush synchronizer bound to a translation store.
func New(store interfaces.TranslationStore, logger interfaces.Logger) *Synchronizer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Synchronizer{store: store, logger: logger}
}

// SyncInsert handles a scheduled entity insert: it either adopts a record the
// caller pre-populated in the attached collection, or creates a new record
// carrying the entity's changed field values for the active locale.
func (s *Synchronizer) SyncInsert(ctx context.Context, uow interfaces.UnitOfWork, cfg *behavior.TypeConfig, entity behavior.Translatable, localeCode string) error {
	if cfg == nil || entity == nil {
		return nil
	}
	if err := validateMapping(cfg); err != nil {
		return err
	}

	// A pre-populated record for the active locale is authoritative: the
	// entity is synchronized from it and no duplicate record is created.
	if record := attachedForLocale(s.store, entity, cfg, localeCode); record != nil {
		s.adoptRecord(uow, cfg, entity, record)
		return nil
	}

	record := cfg.NewTranslation()
	record.SetLocale(localeCode)
	record.SetOwner(entity)

	// Only fields present in the current change-set are copied. Fields that
	// merely equal their defaults stay untouched on the record so identical
	// defaults across locales never force every locale's record dirty.
	changes := uow.ChangeSetOf(entity)
	for _, field := range cfg.Fields {
		change, ok := changes[field]
		if !ok {
			continue
		}
		cfg.TranslationAccess[field].Set(record, change.New)
	}

	uow.SchedulePersist(record)
	uow.RecomputeChangeSet(record)

	if holder, ok := entity.(behavior.CollectionHolder); ok {
		addToCollection(holder, record)
	}

	s.logger.Debug("translation record created",
		"kind", cfg.Kind,
		"tracking_id", entity.TrackingID(),
		"locale", localeCode,
	)
	return nil
}

// SyncUpdate handles a scheduled entity update: changed field values are
// copied onto the existing record for the active locale. When no record
// exists yet the insert path runs instead, healing objects that were saved
// before they became translatable.
func (s *Synchronizer) SyncUpdate(ctx context.Context, uow interfaces.UnitOfWork, cfg *behavior.TypeConfig, entity behavior.Translatable, localeCode string) error {
	if cfg == nil || entity == nil {
		return nil
	}

	record, err := s.store.FindTranslation(ctx, entity, localeCode, cfg.TranslationKind)
	if err != nil {
		return err
	}
	if record == nil {
		return s.SyncInsert(ctx, uow, cfg, entity, localeCode)
	}

	changes := uow.ChangeSetOf(entity)
	touched := false
	for _, field := range cfg.Fields {
		change, ok := changes[field]
		if !ok {
			continue
		}
		accessor, ok := cfg.TranslationAccess[field]
		if !ok {
			continue
		}
		accessor.Set(record, change.New)
		touched = true
	}
	if !touched {
		return nil
	}

	uow.SchedulePersist(record)
	uow.RecomputeChangeSet(record)
	return nil
}

// adoptRecord copies the pre-populated record's configured values onto the
// entity and recomputes the entity's change-set so the flush persists the
// record's values, not the entity's stale ones.
func (s *Synchronizer) adoptRecord(uow interfaces.UnitOfWork, cfg *behavior.TypeConfig, entity behavior.Translatable, record behavior.TranslationRecord) {
	for _, field := range cfg.Fields {
		source, ok := cfg.TranslationAccess[field]
		if !ok {
			continue
		}
		cfg.EntityAccess[field].Set(entity, source.Get(record))
	}
	if record.Owner() == nil {
		record.SetOwner(entity)
	}
	uow.RecomputeChangeSet(entity)
}

// validateMapping fails fast when a configured field is missing from the
// translation type's accessor table. Raised before any record is mutated so
// a configuration bug never produces partial writes.
func validateMapping(cfg *behavior.TypeConfig) error {
	for _, field := range cfg.Fields {
		if _, ok := cfg.TranslationAccess[field]; !ok {
			cause := &behavior.MappingValidationError{
				Field:           field,
				TranslationKind: cfg.TranslationKind,
			}
			return goerrors.Wrap(cause, goerrors.CategoryValidation, "translation mapping validation failed").
				WithTextCode(mappingValidationCode)
		}
	}
	return nil
}

func attachedForLocale(store interfaces.TranslationStore, entity behavior.Translatable, cfg *behavior.TypeConfig, localeCode string) behavior.TranslationRecord {
	for _, record := range store.TranslationCollection(entity, cfg.TranslationKind) {
		if record == nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(record.Locale()), strings.TrimSpace(localeCode)) {
			return record
		}
	}
	return nil
}

func addToCollection(holder behavior.CollectionHolder, record behavior.TranslationRecord) {
	for _, existing := range holder.Translations() {
		if existing == record {
			return
		}
		if existing != nil && strings.EqualFold(existing.Locale(), record.Locale()) {
			return
		}
	}
	holder.AddTranslation(record)
}
