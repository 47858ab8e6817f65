// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sessionstore persists the bot's Matrix login so restarts reuse
// the access token instead of logging in again.
//
// The session lives in <dir>/session.json with mode 0600 inside a 0700
// directory. Writes replace the file atomically.
package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/botkit/lib/atomicfile"
	"github.com/bureau-foundation/botkit/lib/ref"
	"github.com/bureau-foundation/botkit/lib/secret"
)

// FileName is the name of the session file inside the session directory.
const FileName = "session.json"

// Session is the persisted login state.
type Session struct {
	Homeserver  string     `json:"homeserver"`
	AccessToken string     `json:"access_token"`
	UserID      ref.UserID `json:"user_id"`
	DeviceID    string     `json:"device_id"`
}

// Valid reports whether the session holds enough to resume a login.
func (s Session) Valid() bool {
	return s.Homeserver != "" && s.AccessToken != "" && !s.UserID.IsZero()
}

// Path returns the session file path for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Save writes session to dir, creating the directory if needed.
func Save(session Session, dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("sessionstore: creating %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("sessionstore: encoding session: %w", err)
	}
	if err := atomicfile.WriteFile(Path(dir), data, 0o600); err != nil {
		return fmt.Errorf("sessionstore: %w", err)
	}
	return nil
}

// Load reads the session from dir. It returns false with a nil error
// when the file is missing or does not decode, including a user_id that
// is not a valid Matrix user ID. Other read failures are errors.
func Load(dir string) (Session, bool, error) {
	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("sessionstore: reading session: %w", err)
	}

	var session Session
	err = json.Unmarshal(data, &session)
	secret.Zero(data)
	if err != nil {
		return Session{}, false, nil
	}
	return session, true, nil
}
