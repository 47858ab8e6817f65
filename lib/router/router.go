// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"

	"github.com/bureau-foundation/botkit/lib/command"
	"github.com/bureau-foundation/botkit/lib/extension"
)

// Router resolves a message to a command and invokes it.
type Router struct {
	table *Table
}

// New creates a Router over an immutable table.
func New(table *Table) *Router {
	return &Router{table: table}
}

// Table returns the router's command table.
func (r *Router) Table() *Table {
	return r.table
}

// Route parses the message's Body, inserts the parsed Args and the
// canonical Name, and invokes the matching handler. Messages without a
// command token and unknown commands return nil without calling
// anything. The returned error is the handler's invocation error.
func (r *Router) Route(ctx context.Context, message *command.Message) error {
	body, _ := extension.Get[command.Body](message.Extensions())
	invocation, ok := r.table.Parse(string(body))
	if !ok {
		return nil
	}

	entry, found := r.table.Lookup(invocation.Command)
	if !found {
		if invocation.Command == helpName || invocation.Command == helpAlias {
			return r.help(ctx, message)
		}
		return nil
	}

	extension.Insert(message.Extensions(), command.Args(invocation.Args))
	extension.Insert(message.Extensions(), command.Name(entry.Name))
	return entry.Handler.Invoke(ctx, message)
}

// help sends the rendered help document as one notice.
func (r *Router) help(ctx context.Context, message *command.Message) error {
	extension.Insert(message.Extensions(), command.Name(helpName))
	document := r.table.Help()
	return command.Func1(func(ctx context.Context, outbox command.Outbox) error {
		return outbox.SendNotice(ctx, document.Markdown, document.HTML)
	}).Invoke(ctx, message)
}
