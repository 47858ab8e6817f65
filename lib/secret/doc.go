// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds the bot's login password and access token in
// memory the Go runtime never sees.
//
// [Buffer] is backed by an anonymous mmap region that is locked against
// swap and excluded from core dumps. Close zeroes and unmaps it; any
// read after Close panics. [NewFromBytes] zeroes its source slice once
// the copy is made.
//
// [ReadFromPath] loads a secret from a file (or stdin for "-"), and
// [Prompt] reads one from the terminal with echo disabled.
package secret
