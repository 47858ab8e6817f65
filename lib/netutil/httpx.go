// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds HTTP response reads from the homeserver.
//
// Matrix client-server responses are JSON documents; a /sync response
// for a busy account can be large but never unbounded. ReadResponse
// caps every read at MaxResponseSize so a misbehaving server cannot
// exhaust memory.
package netutil

import (
	"io"
)

// MaxResponseSize is the bound on JSON API response body reads: 256 MB.
const MaxResponseSize int64 = 256 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
