// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gate

import (
	"context"
	"sync"
	"time"

	"github.com/lazycatapps/downloadhub/internal/models"
)

const (
	// DefaultCountdownSeconds is the countdown length when none is configured.
	DefaultCountdownSeconds = 3

	// DefaultTickInterval is the time between two countdown ticks.
	DefaultTickInterval = time.Second
)

// Countdown is the per-view state machine Counting -> Redirecting -> Opened.
//
// The hand-off callback runs at most once per Countdown, either when the
// countdown reaches zero or on DownloadNow, whichever comes first. After
// Cancel it never runs. Safe for concurrent use.
type Countdown struct {
	mu        sync.Mutex
	state     models.GateState
	remaining int
	total     int
	handedOff bool
	handoff   func()

	done     chan struct{} // Closed once the countdown reaches a terminal state
	doneOnce sync.Once
}

// NewCountdown creates a countdown in state Counting(total, total).
// A non-positive total uses DefaultCountdownSeconds.
func NewCountdown(total int, handoff func()) *Countdown {
	if total < 1 {
		total = DefaultCountdownSeconds
	}
	if handoff == nil {
		handoff = func() {}
	}

	return &Countdown{
		state:     models.GateStateCounting,
		remaining: total,
		total:     total,
		handoff:   handoff,
		done:      make(chan struct{}),
	}
}

// Tick advances the countdown by one unit and returns the new snapshot.
// Reaching zero moves to Redirecting, fires the hand-off, then moves to Opened.
// Ticks outside Counting are ignored.
func (c *Countdown) Tick() models.GateSnapshot {
	c.mu.Lock()
	if c.state != models.GateStateCounting {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	c.remaining--
	if c.remaining > 0 {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	c.state = models.GateStateRedirecting
	fire := c.claimHandoffLocked()
	c.mu.Unlock()

	if fire {
		c.handoff()
	}

	c.mu.Lock()
	if c.state == models.GateStateRedirecting {
		c.state = models.GateStateOpened
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.finish()
	return snap
}

// DownloadNow fires the hand-off immediately without touching the counting state.
// It returns false when the hand-off already fired or the countdown was cancelled.
func (c *Countdown) DownloadNow() bool {
	c.mu.Lock()
	fire := c.claimHandoffLocked()
	c.mu.Unlock()

	if fire {
		c.handoff()
	}
	return fire
}

// Cancel stops the countdown. The hand-off never fires afterwards.
// Cancelling an opened countdown is a no-op.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	if c.state.Terminal() {
		c.mu.Unlock()
		return
	}
	c.state = models.GateStateCancelled
	c.mu.Unlock()

	c.finish()
}

// Snapshot returns the current state.
func (c *Countdown) Snapshot() models.GateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Done is closed when the countdown is opened or cancelled.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

// Run drives the countdown with a ticker until it reaches a terminal state.
// onTick, if set, receives every snapshot produced by a tick.
// Context cancellation cancels the countdown and stops the ticker, so no
// hand-off can fire once Run has returned because of ctx.
func (c *Countdown) Run(ctx context.Context, interval time.Duration, onTick func(models.GateSnapshot)) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Cancel()
			return ctx.Err()
		case <-c.done:
			return nil
		case <-ticker.C:
			snap := c.Tick()
			if onTick != nil {
				onTick(snap)
			}
			if snap.State.Terminal() {
				return nil
			}
		}
	}
}

// claimHandoffLocked marks the hand-off as fired and reports whether the caller should run it.
func (c *Countdown) claimHandoffLocked() bool {
	if c.handedOff || c.state == models.GateStateCancelled {
		return false
	}
	c.handedOff = true
	return true
}

func (c *Countdown) snapshotLocked() models.GateSnapshot {
	return models.GateSnapshot{
		State:     c.state,
		Remaining: c.remaining,
		Total:     c.total,
		Progress:  float64(c.total-c.remaining) / float64(c.total),
		HandedOff: c.handedOff,
	}
}

func (c *Countdown) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}
