package behavior

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrKindRequired              = errors.New("translatable: entity kind is required")
	ErrTranslationKindRequired   = errors.New("translatable: translation kind is required")
	ErrTranslationFactoryMissing = errors.New("translatable: translation factory is required")
	ErrNoTranslatableFields      = errors.New("translatable: at least one translatable field is required")
	ErrEntityAccessorMissing     = errors.New("translatable: entity field accessor is missing")
	ErrKindAlreadyRegistered     = errors.New("translatable: kind already registered")
	ErrNotTranslatable           = errors.New("translatable: type has no translatable configuration")
	ErrMappingValidation         = errors.New("translatable: configured field is not declared on the translation type")
	ErrLocaleRequired            = errors.New("translatable: locale code is required")
)

// MappingValidationError reports a configured translatable field that the
// translation type does not declare. It is fatal and raised at flush time
// before any record is mutated.
type MappingValidationError struct {
	Field           string
	TranslationKind string
}

func (e *MappingValidationError) Error() string {
	if e == nil {
		return ErrMappingValidation.Error()
	}
	field := strings.TrimSpace(e.Field)
	kind := strings.TrimSpace(e.TranslationKind)
	if field == "" && kind == "" {
		return ErrMappingValidation.Error()
	}
	return fmt.Sprintf("%s: field=%s translation_kind=%s", ErrMappingValidation.Error(), field, kind)
}

func (e *MappingValidationError) Unwrap() error {
	return ErrMappingValidation
}

// NotTranslatableError reports lookups for kinds missing from the registry.
type NotTranslatableError struct {
	Kind string
}

func (e *NotTranslatableError) Error() string {
	if e == nil || strings.TrimSpace(e.Kind) == "" {
		return ErrNotTranslatable.Error()
	}
	return fmt.Sprintf("%s: kind=%s", ErrNotTranslatable.Error(), strings.TrimSpace(e.Kind))
}

func (e *NotTranslatableError) Unwrap() error {
	return ErrNotTranslatable
}
