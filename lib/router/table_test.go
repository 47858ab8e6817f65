// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"strings"
	"testing"

	"github.com/bureau-foundation/botkit/lib/command"
)

var noop = command.Func0(func(context.Context) error { return nil })

func TestDeriveAlias(t *testing.T) {
	tests := map[string]string{
		"hello_world":     "hw",
		"hello":           "h",
		"set_room_topic":  "srt",
		"dry-run":         "d",
		"a__b":            "ab",
		"_leading":        "l",
		"Mixed_Case_Name": "mcn",
	}
	for name, want := range tests {
		if got := DeriveAlias(name); got != want {
			t.Errorf("DeriveAlias(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestBuildRegistersEntries(t *testing.T) {
	table, err := NewBuilder("Example", "This bot prints hello!").
		Add("Hello_World", "`!hello_world` - Prints \"hello world\".", noop).
		Add("echo", "`!echo <text>` - Repeats the text.", noop).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	entries := table.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "hello_world" || entries[0].Alias != "hw" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Name != "echo" || entries[1].Alias != "e" {
		t.Errorf("entry 1 = %+v", entries[1])
	}

	for _, name := range []string{"hello_world", "hw", "echo", "e"} {
		if _, ok := table.Lookup(name); !ok {
			t.Errorf("Lookup(%q) found nothing", name)
		}
	}
	if _, ok := table.Lookup("HW"); ok {
		t.Error("Lookup is case-sensitive; callers lower-case first")
	}
}

func TestBuildRejectsInvalidRegistrations(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		wantErr string
	}{
		{
			name:    "invalid characters",
			builder: NewBuilder("B", "").Add("hello world", "", noop),
			wantErr: "must match",
		},
		{
			name:    "empty name",
			builder: NewBuilder("B", "").Add("", "", noop),
			wantErr: "must match",
		},
		{
			name:    "duplicate after lower-casing",
			builder: NewBuilder("B", "").Add("ping", "", noop).Add("PING", "", noop),
			wantErr: "registered twice",
		},
		{
			name:    "reserved help",
			builder: NewBuilder("B", "").Add("Help", "", noop),
			wantErr: "reserved",
		},
		{
			name:    "nil handler",
			builder: NewBuilder("B", "").Add("ping", "", nil),
			wantErr: "no handler",
		},
		{
			name:    "empty trigger",
			builder: NewBuilder("B", "").WithTrigger(""),
			wantErr: "trigger",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.builder.Build()
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Build error = %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestAliasCollisionFirstMatchWins(t *testing.T) {
	var called string
	first := command.Func1(func(_ context.Context, name command.Name) error {
		called = string(name)
		return nil
	})
	table, err := NewBuilder("B", "").
		Add("status_report", "", first).
		Add("send_reply", "", first).
		Add("sr", "", first).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	entry, ok := table.Lookup("sr")
	if !ok || entry.Name != "status_report" {
		t.Fatalf("Lookup(sr) = %+v, want status_report", entry)
	}

	message := messageWithBody("!sr")
	if err := New(table).Route(context.Background(), message); err != nil {
		t.Fatalf("Route: %v", err)
	}
	if called != "status_report" {
		t.Errorf("routed to %q, want status_report", called)
	}
}

func TestHelpDocument(t *testing.T) {
	build := func() *Table {
		table, err := NewBuilder("Example", "This bot prints hello!").
			Add("hello_world", "`!hello_world` - Prints \"hello world\".", noop).
			Add("echo", "`!echo <text>` - Repeats the text.", noop).
			Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return table
	}

	help := build().Help()
	wantMarkdown := "# Help for the Example Bot\n\n" +
		"This bot prints hello!\n\n" +
		"## Commands\n" +
		"* `!hello_world` - Prints \"hello world\".\n" +
		"* `!echo <text>` - Repeats the text.\n"
	if help.Markdown != wantMarkdown {
		t.Errorf("Markdown =\n%s\nwant\n%s", help.Markdown, wantMarkdown)
	}

	for _, fragment := range []string{
		"<h1>Help for the Example Bot</h1>",
		"<p>This bot prints hello!</p>",
		"<h2>Commands</h2>",
		"<li><code>!hello_world</code>",
		"<code>!echo &lt;text&gt;</code>",
	} {
		if !strings.Contains(help.HTML, fragment) {
			t.Errorf("HTML missing %q:\n%s", fragment, help.HTML)
		}
	}

	again := build().Help()
	if again != help {
		t.Error("help rendering is not deterministic")
	}
}
