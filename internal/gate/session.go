// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gate

import (
	"context"
	"sync"
	"time"

	"github.com/lazycatapps/downloadhub/internal/models"
)

// listenerBuffer is the per-subscriber event buffer size.
const listenerBuffer = 16

// Session is one server-side download view: a resolution plus its own countdown.
// Sessions never share state with each other.
type Session struct {
	ID         string
	Resolution *models.Resolution
	CreatedAt  time.Time
	ExpiresAt  time.Time

	countdown *Countdown

	mu        sync.Mutex
	listeners []chan models.GateEvent
	closed    bool
	cancelRun context.CancelFunc
}

// NewSession creates a session with a fresh countdown of total ticks.
func NewSession(id string, resolution *models.Resolution, total int, ttl time.Duration) *Session {
	now := time.Now()
	s := &Session{
		ID:         id,
		Resolution: resolution,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		listeners:  []chan models.GateEvent{},
	}
	s.countdown = NewCountdown(total, s.onHandoff)
	return s
}

// Start runs the countdown in the background until it ends, ctx is cancelled or Stop is called.
// All listeners are closed when the countdown stops.
func (s *Session) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancelRun = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()
		defer s.closeAllListeners()

		_ = s.countdown.Run(ctx, interval, func(snap models.GateSnapshot) {
			s.broadcast(models.GateEvent{Type: models.GateEventTick, Snapshot: snap})
		})
	}()
}

// Stop cancels the countdown and deregisters its ticker.
func (s *Session) Stop() {
	s.countdown.Cancel()

	s.mu.Lock()
	cancel := s.cancelRun
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	} else {
		s.closeAllListeners()
	}
}

// DownloadNow fires the hand-off immediately.
func (s *Session) DownloadNow() bool {
	return s.countdown.DownloadNow()
}

// Snapshot returns the countdown state.
func (s *Session) Snapshot() models.GateSnapshot {
	return s.countdown.Snapshot()
}

// Done is closed when the countdown is opened or cancelled.
func (s *Session) Done() <-chan struct{} {
	return s.countdown.Done()
}

// Expired reports whether the session outlived its TTL.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Link returns the download link once the hand-off fired, otherwise "".
func (s *Session) Link() string {
	if s.Snapshot().HandedOff {
		return s.Resolution.Link
	}
	return ""
}

// Response converts the session for API clients.
func (s *Session) Response() *models.GateSessionResponse {
	snap := s.Snapshot()
	resp := &models.GateSessionResponse{
		ID:         s.ID,
		Resolution: s.Resolution,
		Snapshot:   snap,
		CreatedAt:  s.CreatedAt,
		ExpiresAt:  s.ExpiresAt,
	}
	if snap.HandedOff {
		resp.Link = s.Resolution.Link
	}
	return resp
}

// AddListener creates a new event listener channel for SSE streaming.
// The channel is closed immediately when the session already stopped.
func (s *Session) AddListener() chan models.GateEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan models.GateEvent, listenerBuffer)
	if s.closed {
		close(ch)
		return ch
	}
	s.listeners = append(s.listeners, ch)
	return ch
}

// RemoveListener removes and closes a listener channel.
func (s *Session) RemoveListener(ch chan models.GateEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, listener := range s.listeners {
		if listener == ch {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			close(ch)
			break
		}
	}
}

func (s *Session) onHandoff() {
	s.broadcast(models.GateEvent{
		Type:     models.GateEventHandoff,
		Snapshot: s.countdown.Snapshot(),
		Link:     s.Resolution.Link,
	})
}

func (s *Session) broadcast(event models.GateEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.listeners {
		select {
		case ch <- event:
		default:
			// Slow subscriber, drop the event
		}
	}
}

func (s *Session) closeAllListeners() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.listeners {
		close(ch)
	}
	s.listeners = nil
}
