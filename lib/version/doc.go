// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for botkit binaries.
//
// [GitCommit], [GitDirty], [BuildTime], and [Version] are injected at
// build time via -ldflags -X and default to "unknown" / "0.1.0-dev" in
// development builds:
//
//	go build -ldflags "-X github.com/bureau-foundation/botkit/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// [Info] formats them for --version output; [Full] adds the Go version
// and platform.
package version
