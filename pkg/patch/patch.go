// Package patch provides tri-state fields for partial-update payloads. A
// field is either absent from the request body, explicitly null, or set to a
// value, and the three cases are distinguishable after decoding.
package patch

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var null = []byte("null")

type Field[T any] struct {
	// Set is true when the key was present in the JSON body, even if null.
	Set   bool
	Null  bool
	Value T
}

// Of returns a field set to v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a field that was explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys that are present, which is what
// lets an absent key keep Set == false.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), null) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	// Returned unwrapped so the decoder can attach the field name to
	// *json.UnmarshalTypeError.
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return null, nil
	}
	b, err := json.Marshal(f.Value)
	return b, errors.WithStack(err)
}

// HasValue reports whether the field carries a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Ptr returns a pointer to a copy of the value, or nil when the field is
// absent or null.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}
