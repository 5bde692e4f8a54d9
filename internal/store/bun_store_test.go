package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/beintranet/go-translatable/behavior"
	"github.com/beintranet/go-translatable/internal/mapping"
)

type product struct {
	id   string
	name string
}

func (p *product) TrackingID() string { return p.id }
func (p *product) Kind() string       { return "product" }

type loadedProduct struct {
	product
	translations []behavior.TranslationRecord
}

func (p *loadedProduct) Translations() []behavior.TranslationRecord { return p.translations }
func (p *loadedProduct) AddTranslation(record behavior.TranslationRecord) {
	p.translations = append(p.translations, record)
}

type productTranslationRow struct {
	bun.BaseModel `bun:"table:product_translations,alias:pt"`

	ID      string `bun:"id,pk"`
	OwnerID string `bun:"owner_id,notnull"`
	Loc     string `bun:"locale,notnull"`
	Name    string `bun:"name"`

	owner behavior.Translatable
}

func (r *productTranslationRow) TrackingID() string                   { return r.ID }
func (r *productTranslationRow) Locale() string                       { return r.Loc }
func (r *productTranslationRow) SetLocale(code string)                { r.Loc = code }
func (r *productTranslationRow) Owner() behavior.Translatable         { return r.owner }
func (r *productTranslationRow) SetOwner(owner behavior.Translatable) { r.owner = owner }

func newProductRegistry(t *testing.T) *mapping.Registry {
	t.Helper()
	registry := mapping.NewRegistry()
	err := registry.Register(behavior.TypeConfig{
		Kind:            "product",
		TranslationKind: "product_translation",
		Fields:          []string{"name"},
		EntityAccess: map[string]behavior.Accessor{
			"name": behavior.FieldAccessor(
				func(p *product) string { return p.name },
				func(p *product, v string) { p.name = v },
			),
		},
		TranslationAccess: map[string]behavior.Accessor{
			"name": behavior.FieldAccessor(
				func(r *productTranslationRow) string { return r.Name },
				func(r *productTranslationRow, v string) { r.Name = v },
			),
		},
		NewTranslation: func() behavior.TranslationRecord { return &productTranslationRow{} },
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return registry
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared&_fk=1", time.Now().UnixNano())
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.NewCreateTable().Model((*productTranslationRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func seedRow(t *testing.T, db *bun.DB, row *productTranslationRow) {
	t.Helper()
	if _, err := db.NewInsert().Model(row).Exec(context.Background()); err != nil {
		t.Fatalf("seed row: %v", err)
	}
}

func TestFindTranslationQueriesByOwnerAndLocale(t *testing.T) {
	db := newTestDB(t)
	store := NewBunStore(db, newProductRegistry(t), nil)
	ctx := context.Background()

	seedRow(t, db, &productTranslationRow{ID: "t-en", OwnerID: "p1", Loc: "en", Name: "Chair"})
	seedRow(t, db, &productTranslationRow{ID: "t-de", OwnerID: "p1", Loc: "de", Name: "Stuhl"})
	seedRow(t, db, &productTranslationRow{ID: "t-other", OwnerID: "p2", Loc: "de", Name: "Tisch"})

	owner := &product{id: "p1"}
	record, err := store.FindTranslation(ctx, owner, "de", "product_translation")
	if err != nil {
		t.Fatalf("FindTranslation() error = %v", err)
	}
	if record == nil {
		t.Fatalf("FindTranslation() = nil, want de record")
	}
	row := record.(*productTranslationRow)
	if row.ID != "t-de" || row.Name != "Stuhl" {
		t.Fatalf("FindTranslation() = %+v", row)
	}
	if row.Owner() != owner {
		t.Fatalf("owner not assigned on loaded record")
	}
}

func TestFindTranslationMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	store := NewBunStore(db, newProductRegistry(t), nil)

	record, err := store.FindTranslation(context.Background(), &product{id: "p1"}, "fr", "product_translation")
	if err != nil {
		t.Fatalf("FindTranslation() error = %v", err)
	}
	if record != nil {
		t.Fatalf("FindTranslation() = %+v, want nil", record)
	}
}

func TestFindTranslationUnknownKind(t *testing.T) {
	db := newTestDB(t)
	store := NewBunStore(db, newProductRegistry(t), nil)

	_, err := store.FindTranslation(context.Background(), &product{id: "p1"}, "en", "bogus_translation")
	var notTranslatable *behavior.NotTranslatableError
	if !errors.As(err, &notTranslatable) {
		t.Fatalf("FindTranslation() error = %v, want NotTranslatableError", err)
	}
	if !errors.Is(err, behavior.ErrNotTranslatable) {
		t.Fatalf("error does not unwrap to sentinel: %v", err)
	}
}

func TestFindTranslationAttachedCollectionWins(t *testing.T) {
	db := newTestDB(t)
	store := NewBunStore(db, newProductRegistry(t), nil)
	ctx := context.Background()

	seedRow(t, db, &productTranslationRow{ID: "t-en", OwnerID: "p1", Loc: "en", Name: "From database"})

	owner := &loadedProduct{product: product{id: "p1"}}
	attached := &productTranslationRow{ID: "t-mem", Loc: "en", Name: "From collection"}
	owner.AddTranslation(attached)

	record, err := store.FindTranslation(ctx, owner, "en", "product_translation")
	if err != nil {
		t.Fatalf("FindTranslation() error = %v", err)
	}
	if record != attached {
		t.Fatalf("FindTranslation() = %+v, want the attached record", record)
	}
}

func TestFindTranslationPreloadedEmptyCollection(t *testing.T) {
	db := newTestDB(t)
	store := NewBunStore(db, newProductRegistry(t), nil)
	ctx := context.Background()

	seedRow(t, db, &productTranslationRow{ID: "t-en", OwnerID: "p1", Loc: "en", Name: "From database"})

	owner := &loadedProduct{product: product{id: "p1"}, translations: []behavior.TranslationRecord{}}
	record, err := store.FindTranslation(ctx, owner, "en", "product_translation")
	if err != nil {
		t.Fatalf("FindTranslation() error = %v", err)
	}
	if record != nil {
		t.Fatalf("preloaded empty collection still queried the database: %+v", record)
	}
}
