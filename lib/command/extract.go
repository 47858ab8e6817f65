// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/bureau-foundation/botkit/lib/extension"
)

// Extractor is the constraint satisfied by handler parameter types:
// *T must know how to fill itself from a message's parts. Extraction
// must not depend on being called more than once, and must not mutate
// the map except to remove a value it consumes.
type Extractor[T any] interface {
	*T
	FromMessage(ctx context.Context, parts *Parts) error
}

// Extract builds one T from parts. The returned error is the raw
// rejection; Func0..Func5 normalize it into *Error.
func Extract[T any, PT Extractor[T]](ctx context.Context, parts *Parts) (T, error) {
	var value T
	if err := PT(&value).FromMessage(ctx, parts); err != nil {
		return value, err
	}
	return value, nil
}

// Cloner is implemented by stored values that must not share mutable
// state with the map. Extension calls Clone on every lookup.
type Cloner[T any] interface {
	Clone() T
}

// Extension extracts a stored value of type T by type. It fails with
// *MissingExtensionError when no T was inserted. Values implementing
// Cloner[T] are cloned; everything else is copied by assignment.
type Extension[T any] struct {
	Value T
}

// FromMessage implements Extractor.
func (e *Extension[T]) FromMessage(_ context.Context, parts *Parts) error {
	var value T
	if err := lookupInto(parts, &value); err != nil {
		return err
	}
	if cloner, ok := any(value).(Cloner[T]); ok {
		value = cloner.Clone()
	}
	e.Value = value
	return nil
}

// Get returns the extracted value.
func (e Extension[T]) Get() T {
	return e.Value
}

// Extensions takes ownership of the entire extension map. At most one
// parameter per handler may be an Extensions; later parameters see an
// empty map.
type Extensions struct {
	*extension.Map
}

// FromMessage implements Extractor.
func (e *Extensions) FromMessage(_ context.Context, parts *Parts) error {
	taken, err := parts.Take()
	if err != nil {
		return err
	}
	e.Map = taken
	return nil
}
