// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/bureau-foundation/botkit/lib/command"
	"github.com/bureau-foundation/botkit/lib/config"
	"github.com/bureau-foundation/botkit/lib/ref"
	"github.com/bureau-foundation/botkit/lib/router"
	"github.com/bureau-foundation/botkit/messaging"
)

const (
	defaultBotName     = "Example"
	defaultDescription = "This bot prints hello!"
)

func withIdentityDefaults(snapshot config.Snapshot) config.Snapshot {
	if snapshot.BotName == "" {
		snapshot.BotName = defaultBotName
	}
	if snapshot.Description == "" {
		snapshot.Description = defaultDescription
	}
	if snapshot.Trigger == "" {
		snapshot.Trigger = router.DefaultTrigger
	}
	return snapshot
}

func buildCommandTable(snapshot config.Snapshot) (*router.Table, error) {
	trigger := snapshot.Trigger
	return router.NewBuilder(snapshot.BotName, snapshot.Description).
		WithTrigger(trigger).
		Add("hello_world", fmt.Sprintf("`%shello_world` - Prints \"hello world\".", trigger), command.Func1(helloWorld)).
		Add("echo", fmt.Sprintf("`%secho <text>` - Repeats the text back to you.", trigger), command.Func3(echo)).
		Add("about", fmt.Sprintf("`%sabout` - Shows who this bot is.", trigger), command.Func2(about)).
		Build()
}

func helloWorld(ctx context.Context, outbox command.Outbox) error {
	return outbox.SendNotice(ctx, "Hello World!", "")
}

func echo(ctx context.Context, outbox command.Outbox, sender command.Sender, args command.Args) error {
	if len(args) == 0 {
		return command.NewError("echo needs some text to repeat")
	}
	reply := messaging.NewNotice(sender.String() + ": " + strings.Join(args, " "))
	reply.Mentions = &messaging.Mentions{UserIDs: []ref.UserID{sender.UserID}}
	return outbox.Send(ctx, reply)
}

func about(ctx context.Context, outbox command.Outbox, snapshot command.Extension[config.Snapshot]) error {
	identity := snapshot.Value
	return outbox.SendNotice(ctx,
		fmt.Sprintf("%s bot running as %s on %s", identity.BotName, identity.UserID, identity.HomeserverURL),
		"")
}
