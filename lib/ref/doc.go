// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides strongly typed, immutable Matrix identifiers.
//
// [UserID], [RoomID], and [EventID] are validated value types parsed at
// the transport boundary (JSON decoding of /sync responses, config
// files, the session store). Once constructed they never change and
// compare with ==. The zero value of each is "unset"; check with
// IsZero.
//
// JSON marshaling uses the canonical Matrix string form via
// encoding.TextMarshaler, so the types can be used directly as struct
// fields and map keys in wire types.
package ref
