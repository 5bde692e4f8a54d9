package uow

import (
	"context"
	"reflect"
	"strings"

	"github.com/beintranet/go-translatable/behavior"
	"github.com/beintranet/go-translatable/internal/identity"
	"github.com/beintranet/go-translatable/internal/logging"
	"github.com/beintranet/go-translatable/internal/mapping"
	"github.com/beintranet/go-translatable/pkg/interfaces"
)

// ExtraUpdate captures an out-of-band update scheduled during a flush. Object
// may be a Translatable entity or a TranslationRecord.
type ExtraUpdate struct {
	Object  any
	Changes interfaces.ChangeSet
}

// Memory is an in-memory unit of work implementing the full persistence
// adapter contract: original-value baselines, change-set computation,
// scheduled insert/update batches, and translation record storage. It backs
// the integration tests and serves as the reference for host adapters.
//
// Lifecycle processing is cooperative and single-threaded: callers must not
// flush concurrently. Listener callbacks re-enter the unit of work, so the
// type is deliberately unsynchronized.
type Memory struct {
	registry *mapping.Registry
	logger   interfaces.Logger

	baselines  map[string]map[string]any
	changeSets map[string]interfaces.ChangeSet

	inserts  []behavior.Translatable
	updates  []behavior.Translatable
	persists []behavior.TranslationRecord
	extras   []ExtraUpdate

	stored map[string][]behavior.TranslationRecord

	surrogates    map[any]string
	nextSurrogate uint64
}

var (
	_ interfaces.UnitOfWork       = (*Memory)(nil)
	_ interfaces.TranslationStore = (*Memory)(nil)
)

// NewMemory constructs an empty in-memory unit of work sharing the registry
// handle with the engine it cooperates with.
func NewMemory(registry *mapping.Registry, logger interfaces.Logger) *Memory {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Memory{
		registry:   registry,
		logger:     logger,
		baselines:  map[string]map[string]any{},
		changeSets: map[string]interfaces.ChangeSet{},
		stored:     map[string][]behavior.TranslationRecord{},
		surrogates: map[any]string{},
	}
}

// StageInsert schedules entities for insertion in the next flush.
func (m *Memory) StageInsert(entities ...behavior.Translatable) {
	m.inserts = append(m.inserts, entities...)
}

// StageUpdate schedules entities for update in the next flush.
func (m *Memory) StageUpdate(entities ...behavior.Translatable) {
	m.updates = append(m.updates, entities...)
}

// Flush runs one unit-of-work cycle: change-sets are computed for the staged
// batch, the listener's flush hook runs, the batch and any scheduled
// translation records commit, and post-persist hooks fire per record. Any
// listener error aborts the flush and propagates to the caller; staged work
// is left in place for the host's own rollback handling.
func (m *Memory) Flush(ctx context.Context, listener interfaces.Listener) error {
	m.extras = nil
	m.changeSets = map[string]interfaces.ChangeSet{}
	for _, entity := range m.inserts {
		m.changeSets[m.trackingID(entity)] = m.computeChangeSet(entity)
	}
	for _, entity := range m.updates {
		m.changeSets[m.trackingID(entity)] = m.computeChangeSet(entity)
	}

	if listener != nil {
		if err := listener.OnFlush(ctx, m); err != nil {
			return err
		}
	}

	for _, entity := range m.inserts {
		m.rebase(entity)
	}
	for _, entity := range m.updates {
		m.rebase(entity)
	}

	persisted := m.persists
	for _, record := range persisted {
		m.storeRecord(record)
		m.rebase(record)
	}

	if listener != nil {
		for _, record := range persisted {
			if err := listener.PostPersist(ctx, m, record); err != nil {
				return err
			}
		}
	}

	m.inserts, m.updates, m.persists = nil, nil, nil
	m.changeSets = map[string]interfaces.ChangeSet{}
	return nil
}

// ExtraUpdates returns the out-of-band updates scheduled in the last flush.
func (m *Memory) ExtraUpdates() []ExtraUpdate {
	return append([]ExtraUpdate(nil), m.extras...)
}

// ChangeSetOf returns the object's change-set, computing and caching it on
// first access within a flush.
func (m *Memory) ChangeSetOf(object any) interfaces.ChangeSet {
	id := m.trackingID(object)
	if cached, ok := m.changeSets[id]; ok {
		return cached
	}
	computed := m.computeChangeSet(object)
	m.changeSets[id] = computed
	return computed
}

// SetOriginalProperty rewrites one field of an object's tracked baseline. The
// baseline is keyed the same way as change-set computation, so records that
// expose no identity of their own resolve to their assigned surrogate.
func (m *Memory) SetOriginalProperty(object any, field string, value any) {
	id := m.trackingID(object)
	base, ok := m.baselines[id]
	if !ok {
		base = map[string]any{}
		m.baselines[id] = base
	}
	base[field] = value
}

// RecomputeChangeSet refreshes the cached change-set for an object.
func (m *Memory) RecomputeChangeSet(object any) {
	m.changeSets[m.trackingID(object)] = m.computeChangeSet(object)
}

// SchedulePersist queues a translation record for the current flush.
// Scheduling the same record twice is a no-op.
func (m *Memory) SchedulePersist(record behavior.TranslationRecord) {
	if record == nil {
		return
	}
	for _, queued := range m.persists {
		if queued == record {
			return
		}
	}
	m.persists = append(m.persists, record)
}

// ScheduleExtraUpdate records an out-of-band update for an object on the
// in-progress unit of work.
func (m *Memory) ScheduleExtraUpdate(object any, changes interfaces.ChangeSet) {
	if object == nil || len(changes) == 0 {
		return
	}
	m.extras = append(m.extras, ExtraUpdate{Object: object, Changes: changes})
}

// ScheduledInserts enumerates entities staged for insertion.
func (m *Memory) ScheduledInserts() []behavior.Translatable {
	return append([]behavior.Translatable(nil), m.inserts...)
}

// ScheduledUpdates enumerates entities staged for update.
func (m *Memory) ScheduledUpdates() []behavior.Translatable {
	return append([]behavior.Translatable(nil), m.updates...)
}

// FindTranslation looks up a record in the owner's attached collection first,
// then in committed storage. When duplicates exist for the same (owner,
// locale) pair the earliest committed record wins.
func (m *Memory) FindTranslation(ctx context.Context, owner behavior.Translatable, localeCode, translationKind string) (behavior.TranslationRecord, error) {
	if owner == nil {
		return nil, nil
	}
	if record := matchLocale(m.TranslationCollection(owner, translationKind), localeCode); record != nil {
		return record, nil
	}
	record := matchLocale(m.stored[m.storageKey(owner, translationKind)], localeCode)
	if record == nil {
		return nil, nil
	}
	record.SetOwner(owner)
	return record, nil
}

// TranslationCollection returns the owner's attached in-memory records.
func (m *Memory) TranslationCollection(owner behavior.Translatable, translationKind string) []behavior.TranslationRecord {
	holder, ok := owner.(behavior.CollectionHolder)
	if !ok {
		return nil
	}
	return holder.Translations()
}

func (m *Memory) storeRecord(record behavior.TranslationRecord) {
	owner := record.Owner()
	if owner == nil {
		return
	}
	cfg, ok := m.registry.Lookup(owner.Kind())
	if !ok {
		return
	}
	key := m.storageKey(owner, cfg.TranslationKind)
	for _, existing := range m.stored[key] {
		if existing == record {
			return
		}
	}
	m.stored[key] = append(m.stored[key], record)
}

func (m *Memory) storageKey(owner behavior.Translatable, translationKind string) string {
	return m.trackingID(owner) + "/" + strings.TrimSpace(translationKind)
}

// trackingID resolves the stable identity key for a tracked object, assigning
// a deterministic surrogate to objects that expose no identity of their own.
func (m *Memory) trackingID(object any) string {
	switch typed := object.(type) {
	case behavior.Translatable:
		if id := strings.TrimSpace(typed.TrackingID()); id != "" {
			return id
		}
	case behavior.TranslationRecord:
		if id := strings.TrimSpace(typed.TrackingID()); id != "" {
			return id
		}
	}
	if id, ok := m.surrogates[object]; ok {
		return id
	}
	m.nextSurrogate++
	id := identity.SurrogateUUID("memory", m.nextSurrogate).String()
	m.surrogates[object] = id
	return id
}

// accessorsFor returns the accessor table tracking an object's fields:
// the entity table for translatable entities, the translation table for
// records (resolved through their owner's configuration).
func (m *Memory) accessorsFor(object any) map[string]behavior.Accessor {
	switch typed := object.(type) {
	case behavior.Translatable:
		if cfg, ok := m.registry.Lookup(typed.Kind()); ok {
			return cfg.EntityAccess
		}
	case behavior.TranslationRecord:
		owner := typed.Owner()
		if owner == nil {
			return nil
		}
		if cfg, ok := m.registry.Lookup(owner.Kind()); ok {
			return cfg.TranslationAccess
		}
	}
	return nil
}

func (m *Memory) computeChangeSet(object any) interfaces.ChangeSet {
	accessors := m.accessorsFor(object)
	if len(accessors) == 0 {
		return interfaces.ChangeSet{}
	}
	base := m.baselines[m.trackingID(object)]
	changes := interfaces.ChangeSet{}
	for field, accessor := range accessors {
		current := accessor.Get(object)
		old, tracked := base[field]
		if !tracked {
			if isZeroValue(current) {
				continue
			}
			old = nil
		}
		if equalValues(old, current) {
			continue
		}
		changes[field] = interfaces.Change{Old: old, New: current}
	}
	return changes
}

// rebase snapshots the object's current values as its tracked baseline.
func (m *Memory) rebase(object any) {
	accessors := m.accessorsFor(object)
	if len(accessors) == 0 {
		return
	}
	id := m.trackingID(object)
	base, ok := m.baselines[id]
	if !ok {
		base = map[string]any{}
		m.baselines[id] = base
	}
	for field, accessor := range accessors {
		base[field] = accessor.Get(object)
	}
}

func matchLocale(records []behavior.TranslationRecord, localeCode string) behavior.TranslationRecord {
	for _, record := range records {
		if record == nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(record.Locale()), strings.TrimSpace(localeCode)) {
			return record
		}
	}
	return nil
}

// equalValues compares a baseline value with a current value, treating a nil
// baseline and a zero current value as equal so untouched defaults never
// register as changes.
func equalValues(old, current any) bool {
	if old == nil {
		return isZeroValue(current)
	}
	if current == nil {
		return isZeroValue(old)
	}
	return reflect.DeepEqual(old, current)
}

func isZeroValue(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	return rv.IsZero()
}
