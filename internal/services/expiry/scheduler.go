// Package expiry owns the single cancellable timer each live session holds.
package expiry

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/chair/internal/common/clock"
)

// Config holds configuration for the scheduler
type Config struct {
	Clock  clock.Clock
	Logger *slog.Logger
}

// Scheduler keeps at most one pending timer per session ID
type Scheduler struct {
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.Mutex
	timers map[string]*entry
}

type entry struct {
	timer clock.Timer
}

// New creates a new scheduler
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		clock:  cfg.Clock,
		logger: logger,
		timers: make(map[string]*entry),
	}, nil
}

// Schedule arranges for fn to run after d. Any timer already held for id is
// cancelled first. By the time fn runs the entry for id has been released,
// so fn may schedule or cancel freely.
func (s *Scheduler) Schedule(id string, d time.Duration, fn func()) {
	e := &entry{}

	s.mu.Lock()
	previous, replaced := s.timers[id]
	s.timers[id] = e
	s.mu.Unlock()

	if replaced {
		s.logger.Warn("replaced pending expiry timer", "session_id", id)
		if previous.timer != nil {
			previous.timer.Stop()
		}
	}

	// The clock may run a non-positive delay synchronously, so the timer is
	// created without holding the lock.
	timer := s.clock.AfterFunc(d, func() {
		if !s.release(id, e) {
			return
		}
		fn()
	})

	s.mu.Lock()
	e.timer = timer
	current := s.timers[id]
	s.mu.Unlock()

	// Cancelled or replaced before the handle was recorded. If the timer
	// already fired Stop is a harmless no-op.
	if current != e {
		timer.Stop()
	}
}

// release drops the entry for id if it is still e. It reports false when the
// timer lost a race with Cancel or a replacement.
func (s *Scheduler) release(id string, e *entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.timers[id]
	if !ok || current != e {
		return false
	}
	delete(s.timers, id)
	return true
}

// Cancel stops and forgets the timer for id. It reports whether a pending
// timer was removed; cancelling an unknown or already fired timer is a no-op.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	e, ok := s.timers[id]
	var timer clock.Timer
	if ok {
		delete(s.timers, id)
		timer = e.timer
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	if timer != nil {
		timer.Stop()
	}
	return true
}

// Pending reports whether id has a timer that hasn't fired or been cancelled
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// Len returns the number of pending timers
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending timer
func (s *Scheduler) Stop() {
	s.mu.Lock()
	pending := make([]clock.Timer, 0, len(s.timers))
	for _, e := range s.timers {
		if e.timer != nil {
			pending = append(pending, e.timer)
		}
	}
	s.timers = make(map[string]*entry)
	s.mu.Unlock()

	for _, timer := range pending {
		timer.Stop()
	}
}
