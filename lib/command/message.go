// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/bureau-foundation/botkit/lib/extension"
)

// Message is the transport-agnostic envelope handed to a Handler. The
// transport adapter fills its extension map (body, sender, room, reply
// outbox) before dispatch; the router adds the parsed arguments.
//
// A Message belongs to exactly one dispatch and is not safe for
// concurrent use.
type Message struct {
	extensions *extension.Map
}

// NewMessage wraps an extension map. A nil map is replaced by an empty
// one.
func NewMessage(extensions *extension.Map) *Message {
	if extensions == nil {
		extensions = extension.New()
	}
	return &Message{extensions: extensions}
}

// Extensions returns the message's extension map for the transport
// adapter and router to populate.
func (m *Message) Extensions() *extension.Map {
	return m.extensions
}

// Parts is the view of a Message that extractors work against during
// one invocation.
type Parts struct {
	message *Message
	taken   bool
}

func newParts(message *Message) *Parts {
	return &Parts{message: message}
}

// Map returns the live extension map. Extractors may remove a value
// they do not want later extractors to see.
func (p *Parts) Map() *extension.Map {
	return p.message.extensions
}

// Take transfers ownership of the whole extension map to the caller and
// leaves an empty map behind. A second Take in the same invocation
// fails with ErrExtensionsTaken.
func (p *Parts) Take() (*extension.Map, error) {
	if p.taken {
		return nil, ErrExtensionsTaken
	}
	p.taken = true
	taken := p.message.extensions
	p.message.extensions = extension.New()
	return taken, nil
}

// Lookup returns a copy of the value of type T from the parts' map.
func Lookup[T any](parts *Parts) (T, bool) {
	return extension.Get[T](parts.Map())
}

// lookupInto copies the stored T into target or returns a
// MissingExtensionError naming T.
func lookupInto[T any](parts *Parts, target *T) error {
	value, ok := Lookup[T](parts)
	if !ok {
		return &MissingExtensionError{Type: extension.TypeName[T]()}
	}
	*target = value
	return nil
}
