// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package autojoin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/botkit/lib/ref"
)

// Invite is an invitation observed by the transport: Target was invited
// to Room by Sender.
type Invite struct {
	Room   ref.RoomID
	Target ref.UserID
	Sender ref.UserID
}

// AutoJoinerConfig configures an AutoJoiner.
type AutoJoinerConfig struct {
	Config

	// Self is the bot's own user ID. Invites for anyone else are ignored.
	Self ref.UserID

	Joiner Joiner

	// OnResult, if set, is called from the loop's goroutine with the
	// terminal result of every join loop.
	OnResult func(Result)
}

// AutoJoiner starts one join loop per invitation addressed to the bot.
type AutoJoiner struct {
	config AutoJoinerConfig
	group  errgroup.Group
}

// NewAutoJoiner creates an AutoJoiner.
func NewAutoJoiner(config AutoJoinerConfig) *AutoJoiner {
	config.Config = config.Config.withDefaults()
	return &AutoJoiner{config: config}
}

// HandleInvite starts a join loop for invite when it targets the bot
// and reports whether it did. The loop runs until it finishes or ctx is
// done.
func (a *AutoJoiner) HandleInvite(ctx context.Context, invite Invite) bool {
	if invite.Target != a.config.Self {
		return false
	}

	a.config.Logger.Info("accepting room invite",
		"room_id", invite.Room,
		"inviter", invite.Sender,
	)
	a.group.Go(func() error {
		result := Run(ctx, a.config.Joiner, invite.Room, a.config.Config)
		if a.config.OnResult != nil {
			a.config.OnResult(result)
		}
		return nil
	})
	return true
}

// Wait blocks until every started join loop has returned.
func (a *AutoJoiner) Wait() {
	a.group.Wait()
}
