// Package optional provides field wrappers for partial updates that tell an
// absent JSON key apart from one that is present, and, for nullable columns,
// a present null apart from a present value.
package optional

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNull is returned when a non-nullable field is explicitly set to null.
var ErrNull = errors.New("field cannot be null")

var nullLiteral = []byte("null")

// Validatable is implemented by every wrapper in this package. ValidationValue
// returns a pointer to the wrapped value when one is present and nil otherwise,
// so that omitempty rules skip absent (and null) fields.
type Validatable interface {
	ValidationValue() any
}

// Field is a value that is either absent or present. It cannot hold null.
type Field[T any] struct {
	value T
	set   bool
}

// Of returns a present Field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Get returns the value and whether it is present.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// IsSet reports whether the field was present.
func (f Field[T]) IsSet() bool {
	return f.set
}

func (f Field[T]) ValidationValue() any {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		return ErrNull
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return nullLiteral, nil
	}
	return json.Marshal(f.value)
}

// Nullable is a value that is absent, present and null, or present with a value.
type Nullable[T any] struct {
	value T
	set   bool
	valid bool
}

// Value returns a present, non-null Nullable holding v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, set: true, valid: true}
}

// Null returns a present Nullable that clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true}
}

// FromPtr returns Null for a nil pointer and Value otherwise.
func FromPtr[T any](p *T) Nullable[T] {
	if p == nil {
		return Null[T]()
	}
	return Value(*p)
}

// Get returns the value and whether it is present and non-null.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.set && n.valid
}

// IsSet reports whether the field was present, null or not.
func (n Nullable[T]) IsSet() bool {
	return n.set
}

// IsNull reports whether the field was present and null.
func (n Nullable[T]) IsNull() bool {
	return n.set && !n.valid
}

// Ptr returns the value as a pointer, nil when absent or null.
func (n Nullable[T]) Ptr() *T {
	if !n.set || !n.valid {
		return nil
	}
	v := n.value
	return &v
}

func (n Nullable[T]) ValidationValue() any {
	if !n.set || !n.valid {
		return nil
	}
	v := n.value
	return &v
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		var zero T
		n.value = zero
		n.valid = false
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.value = v
	n.valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.set || !n.valid {
		return nullLiteral, nil
	}
	return json.Marshal(n.value)
}
