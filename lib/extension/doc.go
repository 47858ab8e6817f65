// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package extension provides a type-indexed heterogeneous value store
// scoped to a single incoming message.
//
// A [Map] holds at most one value per distinct Go type. Values are
// stored and retrieved through the generic functions [Insert], [Get],
// [GetMut], and [Remove], which are parameterized by the value type:
//
//	parts := extension.New()
//	extension.Insert(parts, command.Body("!hello_world"))
//	body, ok := extension.Get[command.Body](parts)
//
// Keys are zero-size generic structs (one instantiation per type), so
// lookups never use reflection and a lookup for type T can only ever
// observe a value that was inserted as type T. Named types are
// distinct from their underlying types: a Body(string) and a plain
// string occupy different slots.
//
// Maps are not safe for concurrent use. The dispatch path creates one
// fresh Map per message and discards it when the handler returns.
//
// This package depends on no other botkit packages.
package extension
