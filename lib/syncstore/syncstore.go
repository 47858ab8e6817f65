// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package syncstore persists the /sync position under the bot's store
// directory so a restarted bot resumes where it stopped instead of
// replaying history.
package syncstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/botkit/lib/atomicfile"
	"github.com/bureau-foundation/botkit/lib/codec"
	"github.com/bureau-foundation/botkit/lib/ref"
)

// FileName is the state file inside the store directory.
const FileName = "sync.cbor"

// State is the persisted sync position.
type State struct {
	// NextBatch is the token from the last processed /sync response.
	NextBatch string `cbor:"next_batch"`

	// UserID guards against reusing a position recorded for another
	// account.
	UserID    ref.UserID `cbor:"user_id"`
	UpdatedAt time.Time  `cbor:"updated_at"`
}

// Store reads and writes State in a directory.
type Store struct {
	path   string
	logger *slog.Logger
}

// Open creates the store directory if needed and returns a Store.
// logger may be nil.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("syncstore: creating %s: %w", dir, err)
	}
	return &Store{path: filepath.Join(dir, FileName), logger: logger}, nil
}

// Path returns the state file path.
func (s *Store) Path() string { return s.path }

// Load returns the saved state for userID. A missing, unreadable or
// mismatched file yields the zero State, which starts a fresh sync.
func (s *Store) Load(userID ref.UserID) State {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}
	}
	if err != nil {
		s.logger.Warn("reading sync state failed, starting fresh", "path", s.path, "error", err)
		return State{}
	}

	var state State
	if err := codec.Unmarshal(data, &state); err != nil {
		s.logger.Warn("sync state is corrupt, starting fresh", "path", s.path, "error", err)
		return State{}
	}
	if state.UserID != userID {
		s.logger.Warn("sync state belongs to another user, starting fresh",
			"path", s.path,
			"stored_user_id", state.UserID,
			"user_id", userID,
		)
		return State{}
	}
	return state
}

// Save atomically replaces the stored state.
func (s *Store) Save(state State) error {
	data, err := codec.Marshal(state)
	if err != nil {
		return fmt.Errorf("syncstore: encoding state: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("syncstore: %w", err)
	}
	return nil
}
