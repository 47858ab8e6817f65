// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/botkit/lib/clock"
	"github.com/bureau-foundation/botkit/messaging"
)

// DefaultFilter limits /sync to what the bot acts on: room messages in
// the timeline and membership in the room state. Presence and account
// data are dropped.
const DefaultFilter = `{"presence":{"types":[]},"account_data":{"types":[]},` +
	`"room":{"timeline":{"types":["m.room.message"]},"state":{"types":["m.room.member"]},` +
	`"ephemeral":{"types":[]},"account_data":{"types":[]}}}`

// Syncer performs one /sync request. *messaging.DirectSession
// satisfies it.
type Syncer interface {
	Sync(ctx context.Context, options messaging.SyncOptions) (*messaging.SyncResponse, error)
}

// SyncConfig configures the /sync long-poll loop.
type SyncConfig struct {
	// Filter is the inline JSON filter. Default: DefaultFilter.
	Filter string

	// Timeout is the long-poll timeout in milliseconds. Default: 30000.
	Timeout int

	// MaxBackoff caps the wait between retries after a failed /sync.
	// The backoff starts at 1 second and doubles. Default: 30 seconds.
	MaxBackoff time.Duration
}

func (c SyncConfig) withDefaults() SyncConfig {
	if c.Filter == "" {
		c.Filter = DefaultFilter
	}
	if c.Timeout == 0 {
		c.Timeout = 30000
	}
	if c.MaxBackoff == 0 {
		c.MaxBackoff = 30 * time.Second
	}
	return c
}

// SyncHandler is called for each /sync response. The next poll starts
// after it returns.
type SyncHandler func(ctx context.Context, response *messaging.SyncResponse)

// InitialSync performs a /sync with no since token and returns
// immediately with the current snapshot.
func InitialSync(ctx context.Context, syncer Syncer, filter string) (*messaging.SyncResponse, error) {
	response, err := syncer.Sync(ctx, messaging.SyncOptions{
		Filter:     filter,
		SetTimeout: true,
	})
	if err != nil {
		return nil, fmt.Errorf("bot: initial sync: %w", err)
	}
	return response, nil
}

// RunSyncLoop long-polls /sync starting at sinceToken and calls handler
// for each response until ctx is done. Failed polls are retried with
// exponential backoff from 1 second to config.MaxBackoff.
func RunSyncLoop(ctx context.Context, syncer Syncer, config SyncConfig, sinceToken string, handler SyncHandler, clk clock.Clock, logger *slog.Logger) {
	config = config.withDefaults()
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		response, err := syncer.Sync(ctx, messaging.SyncOptions{
			Since:      sinceToken,
			Timeout:    config.Timeout,
			SetTimeout: true,
			Filter:     config.Filter,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("sync failed, retrying", "error", err, "backoff", backoff)
			select {
			case <-ctx.Done():
				return
			case <-clk.After(backoff):
			}
			backoff = min(backoff*2, config.MaxBackoff)
			continue
		}

		backoff = time.Second
		sinceToken = response.NextBatch
		handler(ctx, response)
	}
}
