// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

// EventType identifies a Matrix state or timeline event type.
//
// EventType is a named string type rather than a struct wrapper: event
// types are opaque identifiers that need no validation. The type exists
// to keep event types and state keys from being swapped by accident.
type EventType string

// Event types the bot reads or writes.
const (
	EventTypeMessage EventType = "m.room.message"
	EventTypeMember  EventType = "m.room.member"
)

// String returns the event type string (e.g., "m.room.message").
func (t EventType) String() string { return string(t) }
