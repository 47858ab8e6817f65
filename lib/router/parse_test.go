// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		command string
		args    []string
	}{
		{
			name:    "collapses whitespace and lower-cases",
			body:    "  !Hello_World   extra   args  ",
			wantOK:  true,
			command: "hello_world",
			args:    []string{"extra", "args"},
		},
		{
			name:    "no arguments",
			body:    "!help",
			wantOK:  true,
			command: "help",
			args:    []string{},
		},
		{
			name:    "tabs and newlines",
			body:    "!echo\tone\n\ntwo",
			wantOK:  true,
			command: "echo",
			args:    []string{"one", "two"},
		},
		{
			name:    "hyphenated command",
			body:    "!dry-run now",
			wantOK:  true,
			command: "dry-run",
			args:    []string{"now"},
		},
		{
			name:    "trailing punctuation is not part of the command",
			body:    "!hello, there",
			wantOK:  true,
			command: "hello",
			args:    []string{"there"},
		},
		{
			name:    "non-ASCII letters stay in the command",
			body:    "!hé",
			wantOK:  true,
			command: "hé",
			args:    []string{},
		},
		{
			name:    "non-ASCII suffix does not shorten to an alias",
			body:    "!hwé extra",
			wantOK:  true,
			command: "hwé",
			args:    []string{"extra"},
		},
		{
			name:    "upper-case non-ASCII is lower-cased",
			body:    "!Grüße_Sagen",
			wantOK:  true,
			command: "grüße_sagen",
			args:    []string{},
		},
		{name: "empty body", body: ""},
		{name: "whitespace only", body: " \t\n "},
		{name: "no trigger", body: "hello_world !not_first"},
		{name: "trigger alone", body: "! hello"},
		{name: "trigger not at token start", body: "say!hello"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			invocation, ok := Parse(test.body)
			if ok != test.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", test.body, ok, test.wantOK)
			}
			if !ok {
				return
			}
			if invocation.Command != test.command {
				t.Errorf("Command = %q, want %q", invocation.Command, test.command)
			}
			if invocation.Args == nil || !slices.Equal(invocation.Args, test.args) {
				t.Errorf("Args = %#v, want %#v", invocation.Args, test.args)
			}
		})
	}
}

func TestParseCustomTrigger(t *testing.T) {
	table, err := NewBuilder("Test", "").WithTrigger(".").Build()
	if err != nil {
		t.Fatal(err)
	}
	invocation, ok := table.Parse(".status all")
	if !ok || invocation.Command != "status" || !slices.Equal(invocation.Args, []string{"all"}) {
		t.Errorf("Parse(.status all) = %+v, %v", invocation, ok)
	}
	if _, ok := table.Parse("!status"); ok {
		t.Error("default trigger accepted by a table with a custom trigger")
	}
}
