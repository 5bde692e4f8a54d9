package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/beintranet/go-translatable/behavior"
	"github.com/beintranet/go-translatable/internal/logging"
	"github.com/beintranet/go-translatable/internal/mapping"
	"github.com/beintranet/go-translatable/pkg/interfaces"
)

// BunStore resolves translation records through a bun database handle. When
// an owner already carries an attached collection the store treats it as
// authoritative and issues no query; otherwise a single lookup per call is
// performed, which is the documented worst-case cost per object per flush.
type BunStore struct {
	db       *bun.DB
	registry *mapping.Registry
	logger   interfaces.Logger
}

var _ interfaces.TranslationStore = (*BunStore)(nil)

// NewBunStore constructs a translation store backed by bun.
func NewBunStore(db *bun.DB, registry *mapping.Registry, logger interfaces.Logger) *BunStore {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &BunStore{db: db, registry: registry, logger: logger}
}

// FindTranslation returns the record for (owner, locale, translationKind) or
// nil when none exists. Should duplicate rows exist for the same pair, the
// first row the database yields wins; uniqueness is the schema's concern.
func (s *BunStore) FindTranslation(ctx context.Context, owner behavior.Translatable, localeCode, translationKind string) (behavior.TranslationRecord, error) {
	if owner == nil {
		return nil, nil
	}

	if attached := s.TranslationCollection(owner, translationKind); attached != nil {
		return matchLocale(attached, localeCode), nil
	}

	cfg, ok := s.registry.LookupByTranslationKind(translationKind)
	if !ok {
		return nil, &behavior.NotTranslatableError{Kind: translationKind}
	}

	record := cfg.NewTranslation()
	query := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.? = ?", bun.Ident(cfg.OwnerColumn()), owner.TrackingID()).
		Where("?TableAlias.? = ?", bun.Ident(cfg.LocaleColumn()), localeCode).
		Limit(1)
	if cfg.Store.Table != "" {
		query = query.ModelTableExpr("? AS ?TableAlias", bun.Ident(cfg.Store.Table))
	}

	if err := query.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("translation lookup error: %w", err)
	}

	record.SetOwner(owner)
	return record, nil
}

// TranslationCollection returns the owner's attached records, or nil when the
// owner does not expose a collection. An empty attached collection is
// returned as empty, not nil, so callers can distinguish "not preloaded"
// from "preloaded with no records".
func (s *BunStore) TranslationCollection(owner behavior.Translatable, translationKind string) []behavior.TranslationRecord {
	holder, ok := owner.(behavior.CollectionHolder)
	if !ok {
		return nil
	}
	return holder.Translations()
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
