package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TranslationUUID derives a stable identity for a translation record from its
// owner identity, translation kind, and locale.
func TranslationUUID(ownerID, translationKind, localeCode string) uuid.UUID {
	return UUID("go-translatable:translation:" + strings.TrimSpace(ownerID) + ":" +
		strings.TrimSpace(translationKind) + ":" + strings.ToLower(strings.TrimSpace(localeCode)))
}

// SurrogateUUID derives a tracking identity for objects that expose no
// primary key, from an arena index assigned by the unit of work.
func SurrogateUUID(arena string, index uint64) uuid.UUID {
	return UUID("go-translatable:surrogate:" + strings.TrimSpace(arena) + ":" + strconv.FormatUint(index, 10))
}
