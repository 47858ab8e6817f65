// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/botkit/lib/autojoin"
	"github.com/bureau-foundation/botkit/lib/clock"
	"github.com/bureau-foundation/botkit/lib/extension"
	"github.com/bureau-foundation/botkit/lib/ref"
	"github.com/bureau-foundation/botkit/lib/router"
	"github.com/bureau-foundation/botkit/lib/syncstore"
	"github.com/bureau-foundation/botkit/messaging"
)

// Session is the homeserver surface the bot needs.
// *messaging.DirectSession satisfies it.
type Session interface {
	UserID() ref.UserID
	Syncer
	autojoin.Joiner
	router.Sink
}

// Config configures a Bot.
type Config struct {
	Session Session
	Router  *router.Router

	// Store persists the sync position. If nil, every start is a
	// fresh sync.
	Store *syncstore.Store

	// Prepare is passed to the dispatcher: it runs for every message
	// before routing.
	Prepare func(extensions *extension.Map)

	// OutboxSize is the per-message reply buffer.
	OutboxSize int

	Sync     SyncConfig
	Autojoin autojoin.Config

	// Clock is used for sync backoff and autojoin waits. If nil,
	// clock.Real() is used.
	Clock clock.Clock

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Bot routes Matrix traffic to commands and accepts invitations.
type Bot struct {
	session    Session
	self       ref.UserID
	store      *syncstore.Store
	syncConfig SyncConfig
	clock      clock.Clock
	logger     *slog.Logger
	dispatcher *router.Dispatcher
	joiner     *autojoin.AutoJoiner

	mu      sync.Mutex
	joining map[ref.RoomID]bool
}

// New creates a Bot. Session and Router are required.
func New(config Config) (*Bot, error) {
	if config.Session == nil {
		return nil, errors.New("bot: Session is required")
	}
	if config.Router == nil {
		return nil, errors.New("bot: Router is required")
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	b := &Bot{
		session:    config.Session,
		self:       config.Session.UserID(),
		store:      config.Store,
		syncConfig: config.Sync.withDefaults(),
		clock:      config.Clock,
		logger:     config.Logger,
		joining:    make(map[ref.RoomID]bool),
	}
	b.dispatcher = router.NewDispatcher(router.DispatcherConfig{
		Router:     config.Router,
		Sink:       config.Session,
		Prepare:    config.Prepare,
		OutboxSize: config.OutboxSize,
		Logger:     config.Logger,
	})

	joinConfig := config.Autojoin
	if joinConfig.Clock == nil {
		joinConfig.Clock = config.Clock
	}
	if joinConfig.Logger == nil {
		joinConfig.Logger = config.Logger
	}
	b.joiner = autojoin.NewAutoJoiner(autojoin.AutoJoinerConfig{
		Config:   joinConfig,
		Self:     b.self,
		Joiner:   config.Session,
		OnResult: b.joinFinished,
	})
	return b, nil
}

// Run syncs until ctx is done, then waits for in-flight commands and
// join loops to return. It returns an error only when the initial sync
// fails; cancellation is a clean stop.
func (b *Bot) Run(ctx context.Context) error {
	since := ""
	if b.store != nil {
		since = b.store.Load(b.self).NextBatch
	}

	if since == "" {
		response, err := InitialSync(ctx, b.session, b.syncConfig.Filter)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		b.logger.Info("initial sync complete, skipping history",
			"invites", len(response.Rooms.Invite),
			"joined_rooms", len(response.Rooms.Join),
		)
		b.handleInvites(ctx, response.Rooms.Invite)
		b.savePosition(response.NextBatch)
		since = response.NextBatch
	} else {
		b.logger.Info("resuming sync", "since", since)
	}

	RunSyncLoop(ctx, b.session, b.syncConfig, since, b.handleResponse, b.clock, b.logger)

	b.dispatcher.Wait()
	b.joiner.Wait()
	b.logger.Info("bot stopped")
	return nil
}

func (b *Bot) handleResponse(ctx context.Context, response *messaging.SyncResponse) {
	b.handleInvites(ctx, response.Rooms.Invite)
	for roomID, room := range response.Rooms.Join {
		for _, event := range room.Timeline.Events {
			if b.isCommandCandidate(event) {
				b.dispatcher.Dispatch(ctx, router.Incoming{Room: roomID, Event: event})
			}
		}
	}
	b.savePosition(response.NextBatch)
}

// isCommandCandidate reports whether event is a plain text message from
// someone other than the bot.
func (b *Bot) isCommandCandidate(event messaging.Event) bool {
	return event.Type == ref.EventTypeMessage &&
		event.StateKey == nil &&
		event.Sender != b.self &&
		event.ContentString("msgtype") == messaging.MsgTypeText
}

func (b *Bot) handleInvites(ctx context.Context, invites map[ref.RoomID]messaging.InvitedRoom) {
	for roomID, room := range invites {
		invite, ok := b.inviteFor(roomID, room)
		if !ok {
			b.logger.Debug("ignoring invite without membership for bot", "room_id", roomID)
			continue
		}

		b.mu.Lock()
		if b.joining[roomID] {
			b.mu.Unlock()
			continue
		}
		b.joining[roomID] = true
		b.mu.Unlock()

		if !b.joiner.HandleInvite(ctx, invite) {
			b.joinFinished(autojoin.Result{Room: roomID})
		}
	}
}

// inviteFor finds the m.room.member invite event addressed to the bot
// in the stripped invite state.
func (b *Bot) inviteFor(roomID ref.RoomID, room messaging.InvitedRoom) (autojoin.Invite, bool) {
	for _, event := range room.InviteState.Events {
		if event.Type != ref.EventTypeMember || !event.IsStateFor(b.self.String()) {
			continue
		}
		if event.ContentString("membership") != messaging.MembershipInvite {
			continue
		}
		return autojoin.Invite{Room: roomID, Target: b.self, Sender: event.Sender}, true
	}
	return autojoin.Invite{}, false
}

func (b *Bot) joinFinished(result autojoin.Result) {
	b.mu.Lock()
	delete(b.joining, result.Room)
	b.mu.Unlock()
}

func (b *Bot) savePosition(nextBatch string) {
	if b.store == nil || nextBatch == "" {
		return
	}
	err := b.store.Save(syncstore.State{
		NextBatch: nextBatch,
		UserID:    b.self,
		UpdatedAt: b.clock.Now(),
	})
	if err != nil {
		b.logger.Warn("saving sync position failed", "error", err)
	}
}
