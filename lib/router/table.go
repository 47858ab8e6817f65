// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bureau-foundation/botkit/lib/command"
)

// DefaultTrigger is the character that marks a command token.
const DefaultTrigger = "!"

// Names reserved for the built-in help handler.
const (
	helpName  = "help"
	helpAlias = "h"
)

var commandNamePattern = regexp.MustCompile(`^` + commandChars + `$`)

// Entry is one registered command.
type Entry struct {
	// Name is the canonical, lower-cased command name.
	Name string
	// Alias is derived from Name; see DeriveAlias.
	Alias string
	// Help is the line shown for this command in the help document.
	Help    string
	Handler command.Handler
}

// HelpDocument is the help text rendered once per table.
type HelpDocument struct {
	Markdown string
	HTML     string
}

// Table is the immutable set of registered commands plus the rendered
// help document. Safe for concurrent use.
type Table struct {
	entries []Entry
	help    HelpDocument
	pattern *regexp.Regexp
}

// Entries returns the registered commands in registration order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Help returns the rendered help document.
func (t *Table) Help() HelpDocument {
	return t.help
}

// Lookup finds the first entry whose canonical name or alias equals
// name exactly.
func (t *Table) Lookup(name string) (Entry, bool) {
	for _, entry := range t.entries {
		if entry.Name == name || entry.Alias == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Parse tokenizes body using this table's trigger.
func (t *Table) Parse(body string) (Invocation, bool) {
	return parse(t.pattern, body)
}

// Builder accumulates command registrations.
type Builder struct {
	botName     string
	description string
	trigger     string
	entries     []Entry
	errs        []error
}

// NewBuilder starts a table for a bot. botName and description feed the
// help document's title and preamble.
func NewBuilder(botName, description string) *Builder {
	return &Builder{
		botName:     botName,
		description: description,
		trigger:     DefaultTrigger,
	}
}

// WithTrigger replaces the command trigger (default "!").
func (b *Builder) WithTrigger(trigger string) *Builder {
	b.trigger = trigger
	return b
}

// Add registers a command. Validation errors are collected and returned
// together by Build.
func (b *Builder) Add(name, help string, handler command.Handler) *Builder {
	canonical := strings.ToLower(name)
	switch {
	case !commandNamePattern.MatchString(name):
		b.errs = append(b.errs, fmt.Errorf("router: command name %q must match [\\w-]+", name))
		return b
	case canonical == helpName:
		b.errs = append(b.errs, fmt.Errorf("router: command name %q is reserved for the help handler", name))
		return b
	case handler == nil:
		b.errs = append(b.errs, fmt.Errorf("router: command %q has no handler", name))
		return b
	}
	for _, existing := range b.entries {
		if existing.Name == canonical {
			b.errs = append(b.errs, fmt.Errorf("router: command %q registered twice", canonical))
			return b
		}
	}

	b.entries = append(b.entries, Entry{
		Name:    canonical,
		Alias:   DeriveAlias(canonical),
		Help:    help,
		Handler: handler,
	})
	return b
}

// Build validates the registrations and renders the help document.
func (b *Builder) Build() (*Table, error) {
	errs := append([]error(nil), b.errs...)
	if b.trigger == "" {
		errs = append(errs, fmt.Errorf("router: trigger must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	markdown := RenderHelp(b.botName, b.description, b.entries)
	html, err := renderHTML(markdown)
	if err != nil {
		return nil, fmt.Errorf("router: rendering help: %w", err)
	}

	return &Table{
		entries: append([]Entry(nil), b.entries...),
		help:    HelpDocument{Markdown: markdown, HTML: html},
		pattern: commandPattern(b.trigger),
	}, nil
}

// DeriveAlias returns the lower-cased first character of every
// underscore-separated segment of name. Empty segments contribute
// nothing.
func DeriveAlias(name string) string {
	var alias strings.Builder
	for segment := range strings.SplitSeq(name, "_") {
		for _, first := range segment {
			alias.WriteString(strings.ToLower(string(first)))
			break
		}
	}
	return alias.String()
}

// RenderHelp builds the markdown help document: a title, the
// description paragraph, a "Commands" heading, and one bullet per
// entry in registration order.
func RenderHelp(botName, description string, entries []Entry) string {
	var document strings.Builder
	fmt.Fprintf(&document, "# Help for the %s Bot\n\n", botName)
	document.WriteString(description)
	document.WriteString("\n\n## Commands\n")
	for _, entry := range entries {
		fmt.Fprintf(&document, "* %s\n", entry.Help)
	}
	return document.String()
}

var (
	markdownRendererInstance goldmark.Markdown
	markdownRendererOnce     sync.Once
)

func markdownRenderer() goldmark.Markdown {
	markdownRendererOnce.Do(func() {
		markdownRendererInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownRendererInstance
}

func renderHTML(markdown string) (string, error) {
	var html bytes.Buffer
	if err := markdownRenderer().Convert([]byte(markdown), &html); err != nil {
		return "", err
	}
	return html.String(), nil
}
