// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"slices"

	"github.com/bureau-foundation/botkit/lib/ref"
	"github.com/bureau-foundation/botkit/messaging"
)

// Body is the raw text body of the triggering message.
type Body string

// FromMessage implements Extractor.
func (b *Body) FromMessage(_ context.Context, parts *Parts) error {
	return lookupInto(parts, b)
}

// Sender is the user who sent the triggering message.
type Sender struct {
	ref.UserID
}

// FromMessage implements Extractor.
func (s *Sender) FromMessage(_ context.Context, parts *Parts) error {
	return lookupInto(parts, s)
}

// Room is the room the triggering message was sent in.
type Room struct {
	ref.RoomID
}

// FromMessage implements Extractor.
func (r *Room) FromMessage(_ context.Context, parts *Parts) error {
	return lookupInto(parts, r)
}

// Args are the whitespace-separated tokens after the command token.
// Never nil once extracted; a command with no arguments gets an empty
// slice.
type Args []string

// FromMessage implements Extractor. The slice is copied so handlers may
// modify it freely.
func (a *Args) FromMessage(_ context.Context, parts *Parts) error {
	var stored Args
	if err := lookupInto(parts, &stored); err != nil {
		return err
	}
	cloned := slices.Clone(stored)
	if cloned == nil {
		cloned = Args{}
	}
	*a = cloned
	return nil
}

// Name is the canonical name of the matched command, even when the
// message used the short alias.
type Name string

// FromMessage implements Extractor.
func (n *Name) FromMessage(_ context.Context, parts *Parts) error {
	return lookupInto(parts, n)
}

// Event is the raw Matrix event that triggered the dispatch.
type Event struct {
	messaging.Event
}

// FromMessage implements Extractor.
func (e *Event) FromMessage(_ context.Context, parts *Parts) error {
	return lookupInto(parts, e)
}

// ErrNoOutbox is returned by Send on a zero Outbox.
var ErrNoOutbox = errors.New("outbox is not connected")

// Outbox delivers a handler's replies back to the dispatcher, which
// sends them to the room one at a time in the order they were queued.
type Outbox struct {
	sink chan<- messaging.MessageContent
}

// NewOutbox wraps the channel a dispatcher drains.
func NewOutbox(sink chan<- messaging.MessageContent) Outbox {
	return Outbox{sink: sink}
}

// FromMessage implements Extractor.
func (o *Outbox) FromMessage(_ context.Context, parts *Parts) error {
	return lookupInto(parts, o)
}

// Send queues content for delivery. Blocks until the dispatcher accepts
// it or ctx is done.
func (o Outbox) Send(ctx context.Context, content messaging.MessageContent) error {
	if o.sink == nil {
		return ErrNoOutbox
	}
	select {
	case o.sink <- content:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendNotice queues an m.notice. When html is non-empty the notice
// carries it as the formatted body.
func (o Outbox) SendNotice(ctx context.Context, body, html string) error {
	return o.Send(ctx, messaging.NewHTMLNotice(body, html))
}
