package locale

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLocale is the active locale a fresh State starts with.
const DefaultLocale = "en"

// State is the process-wide locale selection consulted by every lifecycle
// event. Callers set it before events fire and must keep it stable for the
// duration of a unit of work; the engine itself only reads it.
type State struct {
	mu         sync.RWMutex
	locale     string
	fallbacks  []string
	skipOnLoad bool
}

// NewState constructs locale state seeded with the default locale.
func NewState() *State {
	return &State{locale: DefaultLocale}
}

// SetLocale selects the active locale. Empty codes are ignored.
func (s *State) SetLocale(code string) {
	normalized := Normalize(code)
	if normalized == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = normalized
}

// Locale returns the active locale.
func (s *State) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// SetFallbackLocales replaces the ordered fallback chain. Empty and duplicate
// codes are dropped; the first entry has the highest priority.
func (s *State) SetFallbackLocales(codes []string) {
	normalized := make([]string, 0, len(codes))
	seen := map[string]struct{}{}
	for _, code := range codes {
		candidate := Normalize(code)
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		normalized = append(normalized, candidate)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbacks = normalized
}

// FallbackLocales returns a copy of the fallback chain in priority order.
func (s *State) FallbackLocales() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.fallbacks) == 0 {
		return nil
	}
	return append([]string(nil), s.fallbacks...)
}

// SetSkipOnLoad suppresses load-time resolution entirely. Hosts enable it
// when a bulk-query mechanism already embedded translated values.
func (s *State) SetSkipOnLoad(skip bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipOnLoad = skip
}

// SkipOnLoad reports whether load-time resolution is suppressed.
func (s *State) SkipOnLoad() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipOnLoad
}

// Normalize canonicalizes a locale code: trimmed, lowercased, underscores
// folded to BCP 47 hyphens. Codes that do not parse as language tags are kept
// as-is after basic cleanup so hosts can use private locale identifiers.
func Normalize(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	candidate := strings.ReplaceAll(trimmed, "_", "-")
	if tag, err := language.Parse(candidate); err == nil {
		return strings.ToLower(tag.String())
	}
	return strings.ToLower(candidate)
}
