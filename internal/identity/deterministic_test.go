package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("translation:doc-1:en")
	second := UUID("translation:doc-1:en")
	if first == uuid.Nil {
		t.Fatal("expected non-nil UUID")
	}
	if first != second {
		t.Fatalf("same key produced %s and %s", first, second)
	}
	if other := UUID("translation:doc-1:de"); other == first {
		t.Fatalf("distinct keys collided on %s", first)
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("blank key produced %s, want Nil", got)
	}
}

func TestTranslationUUIDNormalizesLocale(t *testing.T) {
	base := TranslationUUID("doc-1", "document_translation", "en")
	if TranslationUUID("doc-1", "document_translation", " EN ") != base {
		t.Fatal("locale case and whitespace changed the derived identity")
	}
	if TranslationUUID("doc-1", "document_translation", "de") == base {
		t.Fatal("different locales derived the same identity")
	}
	if TranslationUUID("doc-2", "document_translation", "en") == base {
		t.Fatal("different owners derived the same identity")
	}
}

func TestSurrogateUUIDPerIndex(t *testing.T) {
	first := SurrogateUUID("memory", 1)
	if first == uuid.Nil {
		t.Fatal("expected non-nil surrogate")
	}
	if first != SurrogateUUID("memory", 1) {
		t.Fatal("surrogate identity unstable for same index")
	}
	if SurrogateUUID("memory", 2) == first {
		t.Fatal("surrogate identities collided across indexes")
	}
}
