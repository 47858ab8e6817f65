// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR encoding configuration for on-disk state.
//
// JSON is used wherever a homeserver or a person reads the data (the
// Matrix API, the session file, configuration). CBOR is used for state
// only the bot itself reads back, such as the persisted sync position.
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same logical value always produces identical bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types with a `cbor` struct tag are only ever CBOR. fxamacker/cbor falls
// back to `json` tags when `cbor` tags are absent, so a type shared with
// JSON carries only `json` tags.
package codec
