package shared

import (
	"bytes"
	"encoding/json"
)

type patchState uint8

const (
	patchUnset patchState = iota
	patchNull
	patchValue
)

// Patch is one field of a partial update: Unset (leave it alone), Null (clear
// it) or a value. The zero value is Unset.
//
// Decoding JSON keeps the three states apart: a missing key stays Unset, an
// explicit null becomes Null.
type Patch[T any] struct {
	state patchState
	value T
}

func Unset[T any]() Patch[T] { return Patch[T]{} }

func Null[T any]() Patch[T] { return Patch[T]{state: patchNull} }

func Set[T any](v T) Patch[T] { return Patch[T]{state: patchValue, value: v} }

// IsUnset reports whether the field was absent from the update.
func (p Patch[T]) IsUnset() bool { return p.state == patchUnset }

// IsNull reports whether the field was explicitly cleared.
func (p Patch[T]) IsNull() bool { return p.state == patchNull }

// IsSet reports whether the field carries a value.
func (p Patch[T]) IsSet() bool { return p.state == patchValue }

// Value returns the value and whether one is present.
func (p Patch[T]) Value() (T, bool) {
	return p.value, p.state == patchValue
}

// Ptr returns nil for Null and a pointer to the value otherwise. Callers check
// IsUnset first.
func (p Patch[T]) Ptr() *T {
	if p.state != patchValue {
		return nil
	}
	v := p.value
	return &v
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Set(v)
	return nil
}

func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if p.state != patchValue {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}
