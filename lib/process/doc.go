// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds entrypoint helpers for botkit binaries: fatal
// error reporting before the structured logger exists, and the root
// context tied to SIGINT/SIGTERM.
package process
