// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package autojoin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/botkit/lib/clock"
	"github.com/bureau-foundation/botkit/lib/ref"
)

// Defaults for Config.
const (
	DefaultInitialDelay = 2 * time.Second
	DefaultCeiling      = time.Hour
)

// Joiner performs the join action. *messaging.DirectSession satisfies it.
type Joiner interface {
	JoinRoom(ctx context.Context, roomID ref.RoomID) (ref.RoomID, error)
}

// State is a position in the join state machine.
type State int

const (
	Idle State = iota
	Attempting
	Joined
	GivingUp
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attempting:
		return "attempting"
	case Joined:
		return "joined"
	case GivingUp:
		return "giving_up"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config controls the backoff.
type Config struct {
	// InitialDelay is the wait after the first failure. Default 2s.
	InitialDelay time.Duration

	// Ceiling bounds the delay: once doubling pushes it past Ceiling
	// the loop gives up. Default 1 hour.
	Ceiling time.Duration

	// Clock is used for waits. If nil, clock.Real() is used.
	Clock clock.Clock

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.InitialDelay <= 0 {
		c.InitialDelay = DefaultInitialDelay
	}
	if c.Ceiling <= 0 {
		c.Ceiling = DefaultCeiling
	}
	if c.Clock == nil {
		c.Clock = clock.Real()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Result is the terminal outcome of one join loop.
type Result struct {
	Room ref.RoomID

	// State is Joined or GivingUp.
	State State

	// Attempts counts join calls made.
	Attempts int

	// Err is the last join error when giving up, or the context error
	// when the loop was cancelled during a wait. Nil when joined.
	Err error
}

// Run joins roomID, retrying with backoff until it succeeds, the delay
// passes the ceiling, or ctx is done. It blocks for the whole sequence.
func Run(ctx context.Context, joiner Joiner, roomID ref.RoomID, config Config) Result {
	config = config.withDefaults()
	logger := config.Logger.With("room_id", roomID)

	delay := config.InitialDelay
	result := Result{Room: roomID, State: Attempting}

	for {
		result.Attempts++
		_, err := joiner.JoinRoom(ctx, roomID)
		if err == nil {
			logger.Info("joined room", "attempts", result.Attempts)
			result.State = Joined
			return result
		}

		logger.Warn("joining room failed, retrying",
			"attempt", result.Attempts,
			"delay", delay,
			"error", err,
		)

		timer := config.Clock.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			result.State = GivingUp
			result.Err = fmt.Errorf("autojoin: stopped after %d attempts: %w (last join error: %v)", result.Attempts, ctx.Err(), err)
			logger.Info("join loop cancelled", "attempts", result.Attempts)
			return result
		case <-timer.C:
		}

		delay *= 2
		if delay > config.Ceiling {
			result.State = GivingUp
			result.Err = err
			logger.Error("giving up joining room",
				"attempts", result.Attempts,
				"error", err,
			)
			return result
		}
	}
}
