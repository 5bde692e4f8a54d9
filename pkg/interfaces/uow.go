package interfaces

import (
	"context"

	"github.com/beintranet/go-translatable/behavior"
)

// Change captures one field transition inside a unit-of-work change-set.
type Change struct {
	Old any
	New any
}

// ChangeSet maps field names to their pending transitions for one object.
type ChangeSet map[string]Change

// UnitOfWork is the narrow change-tracking contract the engine consumes from
// the host persistence layer. The engine mutates the unit of work directly
// (schedules extra updates, rewrites tracked baselines) and the host must
// treat those mutations as part of the in-progress flush, not a new cycle.
//
// Baseline rewrites performed through SetOriginalProperty must exactly match
// the values written to the object, otherwise the host will report spurious
// dirty fields on the next flush.
type UnitOfWork interface {
	// ChangeSetOf returns the pending change-set for a tracked object, which
	// may be a Translatable entity or a TranslationRecord.
	ChangeSetOf(object any) ChangeSet

	// SetOriginalProperty rewrites the tracked baseline for one field of the
	// object. The adapter resolves the object's stable identity key itself
	// (primary key or assigned surrogate), so records without an identity of
	// their own stay keyed consistently with change-set computation.
	SetOriginalProperty(object any, field string, value any)

	// RecomputeChangeSet forces recomputation of the object's change-set so
	// later work inside the same flush observes fresh values.
	RecomputeChangeSet(object any)

	// SchedulePersist queues a translation record for persistence within the
	// current flush. Scheduling the same record twice is a no-op.
	SchedulePersist(record behavior.TranslationRecord)

	// ScheduleExtraUpdate queues an out-of-band update for an object on the
	// already in-progress unit of work, bypassing a second full flush cycle.
	// Both Translatable entities and TranslationRecords may be scheduled.
	ScheduleExtraUpdate(object any, changes ChangeSet)

	// ScheduledInserts and ScheduledUpdates enumerate the entities staged in
	// the current flush batch.
	ScheduledInserts() []behavior.Translatable
	ScheduledUpdates() []behavior.Translatable
}

// TranslationStore finds translation records for owning entities. Adapters
// decide whether lookups hit storage or an already attached collection; the
// engine never issues queries itself.
type TranslationStore interface {
	// FindTranslation returns the record for (owner, locale, translationKind)
	// or nil when none exists. When duplicates exist the result is
	// implementation-defined; upstream uniqueness is the caller's concern.
	FindTranslation(ctx context.Context, owner behavior.Translatable, locale, translationKind string) (behavior.TranslationRecord, error)

	// TranslationCollection returns the owner's attached in-memory records,
	// or nil when the owner does not carry a collection.
	TranslationCollection(owner behavior.Translatable, translationKind string) []behavior.TranslationRecord
}

// Listener receives persistence lifecycle notifications from the host. One
// method per lifecycle stage; hosts register the listener once at startup.
type Listener interface {
	// PostLoad runs after an entity is hydrated from storage.
	PostLoad(ctx context.Context, uow UnitOfWork, entity any) error

	// OnFlush runs once per flush, after the host computed change-sets and
	// before the batch commits.
	OnFlush(ctx context.Context, uow UnitOfWork) error

	// PostPersist runs after an object was persisted within a flush.
	PostPersist(ctx context.Context, uow UnitOfWork, object any) error
}
