// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package autojoin accepts room invitations with bounded exponential
// backoff.
//
// [Run] drives one invitation through Idle → Attempting → Joined or
// GivingUp. Each failed join waits the current delay (2s initially),
// doubles it, and tries again; once the doubled delay exceeds the
// ceiling (1 hour) the loop gives up and reports the last error. With
// the defaults that is 11 attempts.
//
// [AutoJoiner] filters invitations down to the bot's own user ID and
// runs one loop per invitation in its own goroutine. Joins are assumed
// idempotent, so duplicate invitations simply start another loop.
package autojoin
