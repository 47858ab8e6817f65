// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/botkit/lib/ref"
	"github.com/bureau-foundation/botkit/messaging"
)

var (
	botUser   = ref.MustParseUserID("@bot:example.org")
	aliceUser = ref.MustParseUserID("@alice:example.org")
	roomID    = ref.MustParseRoomID("!room:example.org")
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHomeserver serves scripted /sync responses keyed by the since
// token and records joins, sends and logins. A /sync for a token with
// no scripted response long-polls until the client goes away.
type fakeHomeserver struct {
	t      *testing.T
	server *httptest.Server
	done   chan struct{}

	mu        sync.Mutex
	responses map[string]messaging.SyncResponse
	whoami    func(writer http.ResponseWriter)
	logins    int
	token     string

	sinces chan string
	joins  chan ref.RoomID
	sends  chan messaging.MessageContent
}

func newFakeHomeserver(t *testing.T) *fakeHomeserver {
	t.Helper()
	h := &fakeHomeserver{
		t:         t,
		done:      make(chan struct{}),
		responses: make(map[string]messaging.SyncResponse),
		token:     "fresh-token",
		sinces:    make(chan string, 64),
		joins:     make(chan ref.RoomID, 16),
		sends:     make(chan messaging.MessageContent, 16),
	}
	h.server = httptest.NewServer(h)
	t.Cleanup(h.server.Close)
	t.Cleanup(func() { close(h.done) })
	return h
}

func (h *fakeHomeserver) script(since string, response messaging.SyncResponse) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses[since] = response
}

func (h *fakeHomeserver) loginCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.logins
}

func (h *fakeHomeserver) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	path := request.URL.Path
	switch {
	case path == "/_matrix/client/v3/sync":
		since := request.URL.Query().Get("since")
		select {
		case h.sinces <- since:
		default:
		}
		h.mu.Lock()
		response, ok := h.responses[since]
		h.mu.Unlock()
		if !ok {
			select {
			case <-request.Context().Done():
			case <-h.done:
			}
			return
		}
		writeJSON(writer, response)

	case strings.HasPrefix(path, "/_matrix/client/v3/join/"):
		joined, err := ref.ParseRoomID(strings.TrimPrefix(path, "/_matrix/client/v3/join/"))
		if err != nil {
			h.t.Errorf("join with bad room ID %q: %v", path, err)
		}
		h.joins <- joined
		writeJSON(writer, map[string]string{"room_id": joined.String()})

	case strings.Contains(path, "/send/m.room.message/"):
		var content messaging.MessageContent
		if err := json.NewDecoder(request.Body).Decode(&content); err != nil {
			h.t.Errorf("decoding sent message: %v", err)
		}
		h.sends <- content
		writeJSON(writer, map[string]string{"event_id": "$reply:example.org"})

	case path == "/_matrix/client/v3/account/whoami":
		h.mu.Lock()
		whoami := h.whoami
		h.mu.Unlock()
		if whoami == nil {
			writeJSON(writer, map[string]string{"user_id": botUser.String()})
			return
		}
		whoami(writer)

	case path == "/_matrix/client/v3/login":
		h.mu.Lock()
		h.logins++
		token := h.token
		h.mu.Unlock()
		writeJSON(writer, map[string]string{
			"user_id":      botUser.String(),
			"access_token": token,
			"device_id":    "NEWDEVICE",
		})

	default:
		h.t.Errorf("unexpected request %s %s", request.Method, path)
		http.NotFound(writer, request)
	}
}

func writeJSON(writer http.ResponseWriter, value any) {
	writer.Header().Set("Content-Type", "application/json")
	json.NewEncoder(writer).Encode(value)
}

func writeMatrixError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(map[string]string{"errcode": code, "error": message})
}

func stateKey(value string) *string { return &value }

func textEvent(sender ref.UserID, msgtype, body string) messaging.Event {
	return messaging.Event{
		EventID: ref.MustParseEventID("$" + strings.ReplaceAll(body, " ", "_") + ":example.org"),
		Type:    ref.EventTypeMessage,
		Sender:  sender,
		Content: map[string]any{"msgtype": msgtype, "body": body},
	}
}

func inviteEvent(target ref.UserID) messaging.Event {
	return messaging.Event{
		Type:     ref.EventTypeMember,
		Sender:   aliceUser,
		StateKey: stateKey(target.String()),
		Content:  map[string]any{"membership": "invite"},
	}
}

func joinedTimeline(events ...messaging.Event) map[ref.RoomID]messaging.JoinedRoom {
	return map[ref.RoomID]messaging.JoinedRoom{
		roomID: {Timeline: messaging.TimelineSection{Events: events}},
	}
}
