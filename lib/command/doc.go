// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package command turns typed Go functions into message handlers.
//
// A [Message] carries the per-message extension map built by the
// transport adapter. A handler declares the values it needs as
// parameters; each parameter type implements [Extractor] and knows how
// to build itself from the message's [Parts]:
//
//	handler := command.Func2(func(ctx context.Context, outbox command.Outbox, args command.Args) error {
//	    return outbox.SendNotice(ctx, strings.Join(args, " "), "")
//	})
//
// [Func0] through [Func5] extract the parameters strictly in declared
// order. The first failure short-circuits: later extractors never run
// and the handler is not called. Failures from extractors (rejections)
// and from the handler itself are normalized into [*Error].
//
// Built-in extractors cover what the router and transport place in
// every message: [Body], [Sender], [Room], [Args], [Name], [Outbox], and
// [Event]. [Extension] fetches any other stored value by type and fails
// with [*MissingExtensionError] when it is absent. [Extensions] takes
// ownership of the whole map; only one parameter per handler may use
// it, and later lookups in the same invocation see an empty map.
package command
