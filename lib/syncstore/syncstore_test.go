// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package syncstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/botkit/lib/ref"
)

var botUser = ref.MustParseUserID("@bot:example.org")

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "store"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return store
}

func TestSaveLoad(t *testing.T) {
	store := openStore(t)
	state := State{
		NextBatch: "s72594_4483_1934",
		UserID:    botUser,
		UpdatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save(state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := store.Load(botUser)
	if loaded.NextBatch != state.NextBatch || loaded.UserID != state.UserID || !loaded.UpdatedAt.Equal(state.UpdatedAt) {
		t.Errorf("Load = %+v, want %+v", loaded, state)
	}
}

func TestLoadMissing(t *testing.T) {
	if state := openStore(t).Load(botUser); state.NextBatch != "" {
		t.Errorf("Load on empty store = %+v, want zero", state)
	}
}

func TestLoadCorruptStartsFresh(t *testing.T) {
	store := openStore(t)
	if err := os.WriteFile(store.Path(), []byte{0xFF, 0x00, 0x13}, 0o600); err != nil {
		t.Fatal(err)
	}
	if state := store.Load(botUser); state.NextBatch != "" {
		t.Errorf("Load on corrupt file = %+v, want zero", state)
	}
}

func TestLoadOtherUserStartsFresh(t *testing.T) {
	store := openStore(t)
	if err := store.Save(State{NextBatch: "s1", UserID: ref.MustParseUserID("@other:example.org")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if state := store.Load(botUser); state.NextBatch != "" {
		t.Errorf("Load for a different user = %+v, want zero", state)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := openStore(t)
	for _, batch := range []string{"s1", "s2", "s3"} {
		if err := store.Save(State{NextBatch: batch, UserID: botUser}); err != nil {
			t.Fatalf("Save %s: %v", batch, err)
		}
	}
	if state := store.Load(botUser); state.NextBatch != "s3" {
		t.Errorf("NextBatch = %q, want s3", state.NextBatch)
	}
}
