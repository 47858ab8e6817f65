// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bot connects the command router and the autojoin loop to a
// Matrix homeserver.
//
// [Login] restores the saved session or logs in with a password and
// saves the result. [Bot.Run] then drives the /sync long-poll: invites
// addressed to the bot start an autojoin loop, and text messages from
// other users in joined rooms go to the dispatcher. The sync position is
// persisted after every response so a restart neither replays old
// commands nor misses invites.
//
// The first sync of a fresh store only collects invites. Its timeline is
// history and is not dispatched.
package bot
