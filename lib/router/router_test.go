// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/bureau-foundation/botkit/lib/command"
	"github.com/bureau-foundation/botkit/lib/extension"
	"github.com/bureau-foundation/botkit/messaging"
)

func messageWithBody(body string) *command.Message {
	message := command.NewMessage(nil)
	extension.Insert(message.Extensions(), command.Body(body))
	return message
}

// withOutbox attaches a buffered outbox and returns its channel.
func withOutbox(message *command.Message) chan messaging.MessageContent {
	sink := make(chan messaging.MessageContent, 8)
	extension.Insert(message.Extensions(), command.NewOutbox(sink))
	return sink
}

type recordedCall struct {
	name command.Name
	args command.Args
}

func recordingTable(t *testing.T, calls *[]recordedCall) *Table {
	t.Helper()
	record := command.Func2(func(_ context.Context, name command.Name, args command.Args) error {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return nil
	})
	table, err := NewBuilder("Example", "Test bot.").
		Add("hello_world", "`!hello_world`", record).
		Add("echo", "`!echo`", record).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return table
}

func TestRouteMatchesNameAndAlias(t *testing.T) {
	var calls []recordedCall
	router := New(recordingTable(t, &calls))

	for _, body := range []string{"!hello_world a b", "!HW a b", "  !Hello_World   a   b  "} {
		if err := router.Route(context.Background(), messageWithBody(body)); err != nil {
			t.Fatalf("Route(%q): %v", body, err)
		}
	}

	if len(calls) != 3 {
		t.Fatalf("got %d calls, want 3", len(calls))
	}
	for index, call := range calls {
		if call.name != "hello_world" {
			t.Errorf("call %d name = %q, want hello_world", index, call.name)
		}
		if !slices.Equal(call.args, command.Args{"a", "b"}) {
			t.Errorf("call %d args = %v", index, call.args)
		}
	}
}

func TestRouteIgnoresNonCommands(t *testing.T) {
	var calls []recordedCall
	router := New(recordingTable(t, &calls))

	for _, body := range []string{"", "   ", "hello there", "!unknown", "!x", "!hé", "!hwé extra", "!eé"} {
		message := messageWithBody(body)
		outbox := withOutbox(message)
		if err := router.Route(context.Background(), message); err != nil {
			t.Errorf("Route(%q) error = %v, want nil", body, err)
		}
		if len(outbox) != 0 {
			t.Errorf("Route(%q) sent %d messages", body, len(outbox))
		}
	}
	if len(calls) != 0 {
		t.Errorf("handlers called for non-commands: %+v", calls)
	}

	if err := router.Route(context.Background(), command.NewMessage(nil)); err != nil {
		t.Errorf("Route without a body error = %v", err)
	}
}

func TestRouteNonASCIICommand(t *testing.T) {
	var calls []recordedCall
	record := command.Func2(func(_ context.Context, name command.Name, args command.Args) error {
		calls = append(calls, recordedCall{name: name, args: args})
		return nil
	})
	table, err := NewBuilder("Example", "Test bot.").
		Add("grüße", "`!grüße`", record).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	router := New(table)

	for _, body := range []string{"!Grüße alle", "!g alle"} {
		if err := router.Route(context.Background(), messageWithBody(body)); err != nil {
			t.Fatalf("Route(%q): %v", body, err)
		}
	}
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	for index, call := range calls {
		if call.name != "grüße" || !slices.Equal(call.args, command.Args{"alle"}) {
			t.Errorf("call %d = %+v", index, call)
		}
	}
}

func TestRouteHelp(t *testing.T) {
	var calls []recordedCall
	table := recordingTable(t, &calls)
	router := New(table)

	for _, body := range []string{"!help", "!h", "!HELP please"} {
		message := messageWithBody(body)
		outbox := withOutbox(message)
		if err := router.Route(context.Background(), message); err != nil {
			t.Fatalf("Route(%q): %v", body, err)
		}
		if len(outbox) != 1 {
			t.Fatalf("Route(%q) sent %d messages, want 1", body, len(outbox))
		}
		notice := <-outbox
		if notice.MsgType != messaging.MsgTypeNotice {
			t.Errorf("msgtype = %q", notice.MsgType)
		}
		if notice.Body != table.Help().Markdown || notice.FormattedBody != table.Help().HTML {
			t.Errorf("help notice = %+v", notice)
		}
	}
	if len(calls) != 0 {
		t.Errorf("registered handlers called for help: %+v", calls)
	}
}

func TestRouteHelpWithoutOutbox(t *testing.T) {
	router := New(recordingTable(t, new([]recordedCall)))
	err := router.Route(context.Background(), messageWithBody("!help"))
	var missing *command.MissingExtensionError
	if !errors.As(err, &missing) || missing.Type != "command.Outbox" {
		t.Fatalf("Route error = %v, want missing command.Outbox", err)
	}
}

func TestRouteReturnsHandlerError(t *testing.T) {
	failure := errors.New("upstream unavailable")
	table, err := NewBuilder("B", "").
		Add("fail", "", command.Func0(func(context.Context) error { return failure })).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	err = New(table).Route(context.Background(), messageWithBody("!fail"))
	var invocationErr *command.Error
	if !errors.As(err, &invocationErr) || !errors.Is(err, failure) {
		t.Fatalf("Route error = %v, want invocation error wrapping the failure", err)
	}
}
