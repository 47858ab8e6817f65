// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/botkit/lib/command"
	"github.com/bureau-foundation/botkit/lib/extension"
	"github.com/bureau-foundation/botkit/lib/ref"
	"github.com/bureau-foundation/botkit/messaging"
)

// Sink delivers a reply to a room. *messaging.DirectSession satisfies it.
type Sink interface {
	SendMessage(ctx context.Context, roomID ref.RoomID, content messaging.MessageContent) (ref.EventID, error)
}

// Incoming is one message event handed over by the transport.
type Incoming struct {
	Room  ref.RoomID
	Event messaging.Event
}

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	Router *Router
	Sink   Sink

	// Prepare, if set, runs after the built-in values are inserted and
	// before routing. Use it to add shared snapshots (configuration,
	// the bot's identity) to every message.
	Prepare func(extensions *extension.Map)

	// OutboxSize is the reply channel buffer. Zero means unbuffered:
	// a handler's Send returns once the forwarder has taken the reply.
	OutboxSize int

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Dispatcher runs one goroutine per incoming message.
type Dispatcher struct {
	router     *Router
	sink       Sink
	prepare    func(*extension.Map)
	outboxSize int
	logger     *slog.Logger

	group errgroup.Group
}

// NewDispatcher creates a Dispatcher. Router and Sink are required.
func NewDispatcher(config DispatcherConfig) *Dispatcher {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		router:     config.Router,
		sink:       config.Sink,
		prepare:    config.Prepare,
		outboxSize: config.OutboxSize,
		logger:     logger,
	}
}

// Dispatch starts handling incoming and returns immediately. Different
// messages are handled concurrently with no ordering between them.
func (d *Dispatcher) Dispatch(ctx context.Context, incoming Incoming) {
	d.group.Go(func() error {
		d.dispatch(ctx, incoming)
		return nil
	})
}

// Wait blocks until every dispatched message has finished, including
// delivery of its replies.
func (d *Dispatcher) Wait() {
	d.group.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, incoming Incoming) {
	outbox := make(chan messaging.MessageContent, d.outboxSize)

	message := command.NewMessage(extension.New())
	extensions := message.Extensions()
	extension.Insert(extensions, command.Body(incoming.Event.ContentString("body")))
	extension.Insert(extensions, command.Sender{UserID: incoming.Event.Sender})
	extension.Insert(extensions, command.Room{RoomID: incoming.Room})
	extension.Insert(extensions, command.Event{Event: incoming.Event})
	extension.Insert(extensions, command.NewOutbox(outbox))
	if d.prepare != nil {
		d.prepare(extensions)
	}

	var routeErr error
	go func() {
		defer close(outbox)
		routeErr = d.router.Route(ctx, message)
	}()

	// Replies go out one at a time in production order. A failed send
	// does not stop the drain, or the handler would block forever.
	for content := range outbox {
		if _, err := d.sink.SendMessage(ctx, incoming.Room, content); err != nil {
			d.logger.Error("sending reply failed",
				"room_id", incoming.Room,
				"event_id", incoming.Event.EventID,
				"error", err,
			)
		}
	}

	if routeErr != nil {
		name, _ := extension.Get[command.Name](extensions)
		d.logger.Error("command failed",
			"command", string(name),
			"room_id", incoming.Room,
			"sender", incoming.Event.Sender,
			"event_id", incoming.Event.EventID,
			"error", routeErr,
		)
	}
}
