// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extension

import "reflect"

// key is the map key for values of type T. Every instantiation is a
// distinct comparable type, so key[int]{} and key[string]{} never
// collide even though both are empty structs.
type key[T any] struct{}

// Map is a type-indexed store. The zero value is an empty map ready
// for use. A nil *Map behaves as an empty map for reads.
type Map struct {
	// values maps key[T]{} to *T. Storing a pointer lets GetMut hand
	// out a stable reference to the stored value.
	values map[any]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{}
}

// Insert stores value under its own type. If a value of the same type
// was already present it is replaced and returned with true.
func Insert[T any](m *Map, value T) (T, bool) {
	if m.values == nil {
		m.values = make(map[any]any)
	}
	boxed := &value
	previous, existed := m.values[key[T]{}]
	m.values[key[T]{}] = boxed
	if !existed {
		var zero T
		return zero, false
	}
	return *previous.(*T), true
}

// Get returns a copy of the stored value of type T.
func Get[T any](m *Map) (T, bool) {
	pointer, ok := GetMut[T](m)
	if !ok {
		var zero T
		return zero, false
	}
	return *pointer, true
}

// GetMut returns a pointer to the stored value of type T. Writes
// through the pointer are visible to later Get calls on the same Map.
// The pointer is invalidated (detached from the Map) by Remove, Clear,
// or a subsequent Insert of the same type.
func GetMut[T any](m *Map) (*T, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	stored, ok := m.values[key[T]{}]
	if !ok {
		return nil, false
	}
	return stored.(*T), true
}

// Remove deletes and returns the stored value of type T.
func Remove[T any](m *Map) (T, bool) {
	var zero T
	if m == nil || m.values == nil {
		return zero, false
	}
	stored, ok := m.values[key[T]{}]
	if !ok {
		return zero, false
	}
	delete(m.values, key[T]{})
	return *stored.(*T), true
}

// Contains reports whether a value of type T is stored.
func Contains[T any](m *Map) bool {
	_, ok := GetMut[T](m)
	return ok
}

// Clear removes every stored value.
func (m *Map) Clear() {
	if m == nil {
		return
	}
	clear(m.values)
}

// Len returns the number of stored values (one per distinct type).
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.values)
}

// IsEmpty reports whether the map holds no values.
func (m *Map) IsEmpty() bool {
	return m.Len() == 0
}

// TypeName returns the Go type name of T as it appears in source
// (e.g., "command.Body" or "*config.Config"). Used in rejection
// messages only; lookups never depend on it.
func TypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
