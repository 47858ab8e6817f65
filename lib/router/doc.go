// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package router matches chat messages to registered commands.
//
// A [Builder] collects (name, help line, handler) registrations and
// produces an immutable [Table]. Every canonical name gets a short alias
// built from the first letter of each underscore-separated segment
// ("hello_world" answers to "hw"). Alias collisions are not detected:
// lookup checks entries in registration order and the first match wins.
// The help document is rendered once at build time as markdown and as
// HTML.
//
// [Parse] tokenizes a message body: whitespace runs collapse to one
// space, the first token must be the trigger followed by [\w-]+, and
// the remaining tokens become the arguments. Bodies without a command
// token are not an error; they produce no invocation.
//
// [Router.Route] runs the matched handler, or the built-in help handler
// for "help" and "h". Anything else is silently ignored.
//
// [Dispatcher] runs each incoming message in its own goroutine with a
// fresh extension map, and forwards the handler's replies to a [Sink]
// one at a time in the order they were produced. Handler failures are
// logged and never stop other dispatches.
package router
