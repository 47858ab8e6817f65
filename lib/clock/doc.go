// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The autojoin backoff and the sync loop wait between attempts for
// seconds to an hour. Code that waits takes a Clock instead of calling
// the time package directly: Real() in production, Fake() in tests.
//
// A FakeClock only moves when Advance is called. Tests start the code
// under test, call WaitForTimers to block until it has registered its
// wait, then Advance past the deadline:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go loop.Run(ctx, fake)
//	fake.WaitForTimers(1)
//	fake.Advance(2 * time.Second)
package clock
