package models

// Optional is one field of a partial update. Set reports whether the field
// was present in the request; a present field with a nil Value clears the
// column.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional with no value.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Apply overwrites *dst when the field is present.
func (o Optional[T]) Apply(dst **T) {
	if o.Set {
		*dst = o.Value
	}
}
