// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the bot's configuration document and the process
// environment knobs.
//
// The document is a single file named by the --config flag or, when the
// flag is absent, the BOTKIT_CONFIG environment variable. There is no
// discovery and no fallback search. YAML is the native format; files
// ending in .json or .jsonc are accepted too, with comments and trailing
// commas stripped before decoding.
//
// After decoding, ${HOME} and ${VAR:-default} patterns are expanded in
// the store_path and session_path fields. No other field is rewritten
// from the environment.
//
// Key exports:
//
//   - [Config] and [LoadFile] for the document
//   - [Environment] and [ParseEnvironment] for BOTKIT_* variables
package config
