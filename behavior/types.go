package behavior

// Translatable is implemented by domain entities whose configured fields carry
// locale specific values. TrackingID must return a stable identity key (the
// primary key rendered as a string, or a caller assigned surrogate) so the
// engine can address change-tracking baselines without holding the entity.
type Translatable interface {
	TrackingID() string
	Kind() string
}

// TranslationRecord holds one locale's values for one owning entity. The
// record keeps a back-reference to its owner; it never owns the entity.
type TranslationRecord interface {
	TrackingID() string
	Locale() string
	SetLocale(code string)
	Owner() Translatable
	SetOwner(owner Translatable)
}

// CollectionHolder is optionally implemented by entities that keep their
// translation records attached in memory. When present, the engine reads and
// appends records through it instead of issuing lookups.
type CollectionHolder interface {
	Translations() []TranslationRecord
	AddTranslation(record TranslationRecord)
}

// Accessor reads and writes a single named field on a concrete type. Accessor
// tables replace runtime reflection for cross-schema field copying; they are
// resolved once when a TypeConfig is registered, not per call.
//
// Set must treat a nil value as "clear to the zero value". FieldAccessor
// produces accessors with that contract built in.
type Accessor struct {
	Get func(target any) any
	Set func(target any, value any)
}

// SlugOptions marks a translation-side field whose persisted value is copied
// back onto the same-named field of the owning entity after flush.
type SlugOptions struct {
	// SourceField names the translation field the slug is derived from when
	// the slug value is empty at persist time. Leave empty to propagate only.
	SourceField string
}

// StoreOptions describe how a storage adapter locates translation rows.
// Zero values fall back to DefaultOwnerColumn / DefaultLocaleColumn.
type StoreOptions struct {
	Table        string
	OwnerColumn  string
	LocaleColumn string
}

// Default column names used by storage adapters when StoreOptions are not set.
const (
	DefaultOwnerColumn  = "owner_id"
	DefaultLocaleColumn = "locale"
)

// TypeConfig is the immutable per-type translation mapping. Kind identifies
// the entity type, TranslationKind the auxiliary record type; both are
// registry keys, never runtime type names.
type TypeConfig struct {
	Kind            string
	TranslationKind string

	// Fields lists the translatable field names shared by both schemas.
	Fields []string

	// EntityAccess and TranslationAccess are the per-side accessor tables.
	// Every configured field needs an entity accessor at registration time;
	// a missing translation accessor surfaces as a mapping validation error
	// at flush time, before any record is mutated.
	EntityAccess      map[string]Accessor
	TranslationAccess map[string]Accessor

	// Slugs maps translation field names to their back-propagation options.
	Slugs map[string]SlugOptions

	Store StoreOptions

	// NewTranslation constructs an empty translation record. The factory
	// replaces instantiation of the translation type by name.
	NewTranslation func() TranslationRecord
}

// OwnerColumn returns the configured owner column or the default.
func (c TypeConfig) OwnerColumn() string {
	if c.Store.OwnerColumn != "" {
		return c.Store.OwnerColumn
	}
	return DefaultOwnerColumn
}

// LocaleColumn returns the configured locale column or the default.
func (c TypeConfig) LocaleColumn() string {
	if c.Store.LocaleColumn != "" {
		return c.Store.LocaleColumn
	}
	return DefaultLocaleColumn
}
