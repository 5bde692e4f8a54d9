package behavior

// FieldAccessor builds an Accessor from typed getter/setter functions. The
// returned setter clears the field to its zero value when handed nil, which
// is how the load-time resolver nulls fields with no translation record.
func FieldAccessor[T any, V any](get func(*T) V, set func(*T, V)) Accessor {
	return Accessor{
		Get: func(target any) any {
			return get(target.(*T))
		},
		Set: func(target any, value any) {
			if value == nil {
				var zero V
				set(target.(*T), zero)
				return
			}
			set(target.(*T), value.(V))
		},
	}
}
