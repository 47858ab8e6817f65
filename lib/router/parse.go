// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"regexp"
	"strings"
)

// commandChars matches Unicode word characters and hyphens.
const commandChars = `[\p{L}\p{N}\p{Mn}\p{Pc}-]+`

var (
	whitespaceRun         = regexp.MustCompile(`\s+`)
	defaultCommandPattern = compileCommandPattern(DefaultTrigger)
)

func compileCommandPattern(trigger string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(trigger) + `(` + commandChars + `)`)
}

func commandPattern(trigger string) *regexp.Regexp {
	if trigger == DefaultTrigger {
		return defaultCommandPattern
	}
	return compileCommandPattern(trigger)
}

// Invocation is a parsed command token and its arguments.
type Invocation struct {
	// Command is the lower-cased identifier after the trigger.
	Command string
	// Args are the remaining whitespace-separated tokens. Never nil.
	Args []string
}

// Parse tokenizes body with the default "!" trigger. It reports false
// when the body is empty or its first token is not a command.
func Parse(body string) (Invocation, bool) {
	return parse(defaultCommandPattern, body)
}

func parse(pattern *regexp.Regexp, body string) (Invocation, bool) {
	normalized := strings.TrimSpace(whitespaceRun.ReplaceAllString(body, " "))
	if normalized == "" {
		return Invocation{}, false
	}

	tokens := strings.Split(normalized, " ")
	match := pattern.FindStringSubmatch(tokens[0])
	if match == nil {
		return Invocation{}, false
	}

	return Invocation{
		Command: strings.ToLower(match[1]),
		Args:    append([]string{}, tokens[1:]...),
	}, true
}
