// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/botkit/lib/clock"
	"github.com/bureau-foundation/botkit/messaging"
)

// scriptedSyncer fails the first `failures` calls, then returns one
// response per call from batches, then cancels the loop.
type scriptedSyncer struct {
	failures int
	batches  []string
	cancel   context.CancelFunc

	mu     sync.Mutex
	sinces []string
}

func (s *scriptedSyncer) Sync(ctx context.Context, options messaging.SyncOptions) (*messaging.SyncResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	call := len(s.sinces)
	s.sinces = append(s.sinces, options.Since)

	if call < s.failures {
		return nil, errors.New("connection refused")
	}
	if index := call - s.failures; index < len(s.batches) {
		return &messaging.SyncResponse{NextBatch: s.batches[index]}, nil
	}
	s.cancel()
	return nil, ctx.Err()
}

func (s *scriptedSyncer) recordedSinces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sinces...)
}

func runLoop(ctx context.Context, syncer Syncer, config SyncConfig, fake *clock.FakeClock, handled *[]string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunSyncLoop(ctx, syncer, config, "s0", func(_ context.Context, response *messaging.SyncResponse) {
			*handled = append(*handled, response.NextBatch)
		}, fake, quietLogger())
	}()
	return done
}

func TestRunSyncLoopBacksOffAndAdvances(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	syncer := &scriptedSyncer{failures: 2, batches: []string{"s1", "s2"}, cancel: cancel}

	var handled []string
	done := runLoop(ctx, syncer, SyncConfig{}, fake, &handled)

	fake.WaitForTimers(1)
	fake.Advance(time.Second)

	// The second wait is 2s: 1s is not enough to release it.
	fake.WaitForTimers(1)
	fake.Advance(time.Second)
	if fake.PendingCount() != 1 {
		t.Fatalf("second backoff released after 1s")
	}
	fake.Advance(time.Second)

	<-done

	if len(handled) != 2 || handled[0] != "s1" || handled[1] != "s2" {
		t.Errorf("handled = %v, want [s1 s2]", handled)
	}
	want := []string{"s0", "s0", "s0", "s1", "s2"}
	got := syncer.recordedSinces()
	if len(got) != len(want) {
		t.Fatalf("sinces = %v, want %v", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Errorf("since[%d] = %q, want %q", index, got[index], want[index])
		}
	}
}

func TestRunSyncLoopCapsBackoff(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	syncer := &scriptedSyncer{failures: 3, cancel: cancel}

	var handled []string
	done := runLoop(ctx, syncer, SyncConfig{MaxBackoff: 2 * time.Second}, fake, &handled)

	for _, delay := range []time.Duration{time.Second, 2 * time.Second, 2 * time.Second} {
		fake.WaitForTimers(1)
		fake.Advance(delay)
	}
	<-done

	if calls := len(syncer.recordedSinces()); calls != 4 {
		t.Errorf("sync calls = %d, want 4", calls)
	}
	if len(handled) != 0 {
		t.Errorf("handled = %v, want none", handled)
	}
}

func TestRunSyncLoopStopsDuringBackoff(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	syncer := &scriptedSyncer{failures: 100, cancel: cancel}

	var handled []string
	done := runLoop(ctx, syncer, SyncConfig{}, fake, &handled)

	fake.WaitForTimers(1)
	cancel()
	<-done

	if calls := len(syncer.recordedSinces()); calls != 1 {
		t.Errorf("sync calls = %d, want 1", calls)
	}
}

func TestSyncConfigDefaults(t *testing.T) {
	config := SyncConfig{}.withDefaults()
	if config.Filter != DefaultFilter || config.Timeout != 30000 || config.MaxBackoff != 30*time.Second {
		t.Errorf("defaults = %+v", config)
	}
}
