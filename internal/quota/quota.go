// Package quota tracks daily call counts per news provider. It is a soft,
// in-memory guard against blowing through free-tier caps: single process,
// reset on restart.
package quota

import (
	"log/slog"
	"sync"
	"time"
)

const window = 24 * time.Hour

type state struct {
	count   int
	limit   int
	resetAt time.Time
}

// Usage is a read-only snapshot of one provider's counter.
type Usage struct {
	Count   int
	Limit   int
	Percent int
	ResetIn time.Duration
}

// Tracker holds per-provider counters. Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	states map[string]*state
	now    func() time.Time
}

// NewTracker creates a tracker for the given provider -> daily limit map.
// Counters start at zero with a full 24h window.
func NewTracker(limits map[string]int) *Tracker {
	t := &Tracker{
		states: make(map[string]*state, len(limits)),
		now:    time.Now,
	}
	start := t.now()
	for name, limit := range limits {
		t.states[name] = &state{limit: limit, resetAt: start.Add(window)}
	}
	return t
}

// TryConsume reports whether provider may make one more upstream call, and
// counts it if so. Providers without a configured limit are always allowed.
// The check and the increment happen under one lock so concurrent callers
// cannot undercount.
func (t *Tracker) TryConsume(provider string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.states[provider]
	if !ok {
		return true
	}
	now := t.now()
	if now.After(s.resetAt) {
		s.count = 0
		s.resetAt = now.Add(window)
	}
	if s.count >= s.limit {
		return false
	}
	s.count++
	return true
}

// Usage returns a snapshot of every tracked provider, applying any pending
// reset first so /api/stats never reports a stale window.
func (t *Tracker) Usage() map[string]Usage {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	out := make(map[string]Usage, len(t.states))
	for name, s := range t.states {
		if now.After(s.resetAt) {
			s.count = 0
			s.resetAt = now.Add(window)
		}
		u := Usage{Count: s.count, Limit: s.limit, ResetIn: s.resetAt.Sub(now)}
		if s.limit > 0 {
			u.Percent = s.count * 100 / s.limit
		}
		out[name] = u
	}
	return out
}

// SweepExpired resets any provider whose window has passed, so idle periods
// still reset correctly. Called hourly by the quota sweeper worker.
func (t *Tracker) SweepExpired() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for name, s := range t.states {
		if now.After(s.resetAt) {
			s.count = 0
			s.resetAt = now.Add(window)
			slog.Info("quota: daily limit reset", "provider", name)
		}
	}
}
