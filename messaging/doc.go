// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package messaging wraps the subset of the Matrix client-server API a
// command bot needs: password login, token restore, identity checks,
// joining rooms, sending messages, and incremental sync.
//
// [Client] is an unauthenticated client holding the homeserver URL and
// HTTP transport. [Client.Login] and [Client.SessionFromToken] return a
// [DirectSession], which carries the access token in mmap-backed
// secret.Buffer memory; callers must Close it to release that memory.
//
// All API errors are returned as [*MatrixError] with the standard Matrix
// error code and HTTP status. [IsMatrixError] tests for a specific code.
// Request URLs are built by string concatenation rather than url.URL so
// escaped path segments (room IDs, transaction IDs) are sent exactly as
// escaped.
package messaging
