// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sessionstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/botkit/lib/ref"
)

func testSession() Session {
	return Session{
		Homeserver:  "https://matrix.example.org",
		AccessToken: "syt_token",
		UserID:      ref.MustParseUserID("@bot:example.org"),
		DeviceID:    "BOTDEVICE",
	}
}

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session")

	if err := Save(testSession(), dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, found, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("Load reported no session after Save")
	}
	if loaded != testSession() {
		t.Errorf("Load = %+v, want %+v", loaded, testSession())
	}
}

func TestSavePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session")
	if err := Save(testSession(), dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dirInfo, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if dirInfo.Mode().Perm() != 0o700 {
		t.Errorf("directory mode = %v, want 0700", dirInfo.Mode().Perm())
	}

	fileInfo, err := os.Stat(Path(dir))
	if err != nil {
		t.Fatalf("Stat file: %v", err)
	}
	if fileInfo.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %v, want 0600", fileInfo.Mode().Perm())
	}
}

func TestFileFormat(t *testing.T) {
	dir := t.TempDir()
	if err := Save(testSession(), dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, key := range []string{`"homeserver"`, `"access_token"`, `"user_id": "@bot:example.org"`, `"device_id"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("session file missing %s:\n%s", key, data)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	session, found, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found || session.Valid() {
		t.Errorf("Load = (%+v, %v), want nothing", session, found)
	}
}

func TestLoadUndecodable(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "malformed JSON", contents: "{not json"},
		{name: "invalid user ID", contents: `{"homeserver":"https://matrix.example.org","access_token":"syt_token","user_id":"not-a-user","device_id":"DEV"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir), []byte(test.contents), 0o600); err != nil {
				t.Fatal(err)
			}
			session, found, err := Load(dir)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if found || session.Valid() {
				t.Errorf("Load = (%+v, %v), want nothing", session, found)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if !testSession().Valid() {
		t.Error("complete session reported invalid")
	}
	missingToken := testSession()
	missingToken.AccessToken = ""
	if missingToken.Valid() {
		t.Error("session without token reported valid")
	}
}
