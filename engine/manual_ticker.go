package engine

import "sync/atomic"

// ManualTicker is a tick source advanced explicitly by the caller
// Used for deterministic rendering and tests; Fire delivers a tick only while started
type ManualTicker struct {
	handlers handlerSet
	running  atomic.Bool
	rate     atomic.Uint64

	starts atomic.Int64
	stops  atomic.Int64
}

// NewManualTicker creates a stopped manual ticker
func NewManualTicker() *ManualTicker {
	return &ManualTicker{}
}

// Configure records the requested rate, it has no effect on delivery
func (m *ManualTicker) Configure(rate float64) {
	m.rate.Store(uint64(rate))
}

// Rate returns the last configured rate truncated to an integer
func (m *ManualTicker) Rate() uint64 {
	return m.rate.Load()
}

// Subscribe registers a tick handler
func (m *ManualTicker) Subscribe(h func()) uint64 {
	return m.handlers.add(h)
}

// Unsubscribe removes a tick handler
func (m *ManualTicker) Unsubscribe(id uint64) {
	m.handlers.remove(id)
}

// Start enables tick delivery
func (m *ManualTicker) Start() {
	m.starts.Add(1)
	m.running.Store(true)
}

// Stop disables tick delivery
func (m *ManualTicker) Stop() {
	m.stops.Add(1)
	m.running.Store(false)
}

// IsRunning reports whether ticks are delivered
func (m *ManualTicker) IsRunning() bool {
	return m.running.Load()
}

// HandlerCount returns the number of subscribed handlers
func (m *ManualTicker) HandlerCount() int {
	return m.handlers.len()
}

// StartCount returns how many times Start was called
func (m *ManualTicker) StartCount() int64 {
	return m.starts.Load()
}

// StopCount returns how many times Stop was called
func (m *ManualTicker) StopCount() int64 {
	return m.stops.Load()
}

// Fire delivers one tick to every handler, returns false if stopped
func (m *ManualTicker) Fire() bool {
	if !m.running.Load() {
		return false
	}
	for _, h := range m.handlers.snapshot() {
		h()
	}
	return true
}
