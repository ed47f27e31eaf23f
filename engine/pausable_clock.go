package engine

import (
	"sync"
	"time"
)

// PausableClock is a TimeProvider whose time stands still while paused
// Elapsed time measured against it excludes every paused interval
type PausableClock struct {
	mu       sync.Mutex
	source   TimeProvider
	paused   bool
	pausedAt time.Time     // Source time when the current pause began
	offset   time.Duration // Cumulative pause length
}

// NewPausableClock wraps source, nil uses the monotonic wall clock
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{source: source}
}

// Now returns source time minus all paused time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return pc.pausedAt.Add(-pc.offset)
	}
	return pc.source.Now().Add(-pc.offset)
}

// Pause freezes Now, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.source.Now()
}

// Resume lets Now advance again, no-op if not paused
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.offset += pc.source.Now().Sub(pc.pausedAt)
	pc.paused = false
	pc.pausedAt = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.paused
}

// PausedTotal returns cumulative pause time, the current pause included
func (pc *PausableClock) PausedTotal() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	total := pc.offset
	if pc.paused {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
