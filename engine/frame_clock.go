package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/shuffletext/core"
	"github.com/lixenwraith/shuffletext/status"
)

// DefaultFrameRate is used when a non-positive rate is configured
const DefaultFrameRate = 60.0

// FrameClock delivers ticks to subscribed handlers at a fixed rate
// Handlers run sequentially on the clock goroutine, never concurrently with each other
// Stop is non-blocking and safe to call from inside a handler
type FrameClock struct {
	handlers handlerSet

	mu       sync.Mutex
	interval time.Duration
	stopChan chan struct{}
	done     chan struct{}

	running  atomic.Bool
	isPaused atomic.Bool

	tickCount atomic.Uint64

	log       *zap.Logger
	statTicks *atomic.Int64
	statRate  *status.AtomicFloat
}

// NewFrameClock creates a stopped clock at the given rate
// log and metrics may be nil
func NewFrameClock(rate float64, log *zap.Logger, metrics *status.Registry) *FrameClock {
	if log == nil {
		log = zap.NewNop()
	}
	fc := &FrameClock{
		log:       log,
		statTicks: metrics.Int(status.ClockTicks),
		statRate:  metrics.Float(status.ClockRate),
	}
	fc.Configure(rate)
	return fc
}

// Configure sets the tick rate in frames per second
// A running clock picks up the new interval at its next deadline
func (fc *FrameClock) Configure(rate float64) {
	if rate <= 0 {
		fc.log.Warn("non-positive frame rate, using default",
			zap.Float64("rate", rate), zap.Float64("default", DefaultFrameRate))
		rate = DefaultFrameRate
	}

	fc.mu.Lock()
	fc.interval = time.Duration(float64(time.Second) / rate)
	fc.mu.Unlock()

	fc.statRate.Set(rate)
}

// Interval returns the current tick interval
func (fc *FrameClock) Interval() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.interval
}

// Subscribe registers a tick handler and returns its subscription id
func (fc *FrameClock) Subscribe(h func()) uint64 {
	return fc.handlers.add(h)
}

// Unsubscribe removes a tick handler, unknown ids are ignored
func (fc *FrameClock) Unsubscribe(id uint64) {
	fc.handlers.remove(id)
}

// HandlerCount returns the number of subscribed handlers
func (fc *FrameClock) HandlerCount() int {
	return fc.handlers.len()
}

// Start begins the tick loop, no-op if already running
func (fc *FrameClock) Start() {
	fc.mu.Lock()
	if fc.running.Load() {
		fc.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	fc.stopChan = stop
	fc.done = done
	fc.running.Store(true)
	fc.mu.Unlock()

	// Use core.Go for safe execution with centralized crash handling
	core.Go(func() { fc.loop(stop, done) })
}

// Stop halts the tick loop without waiting for it to exit
// A tick already being dispatched completes
func (fc *FrameClock) Stop() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if !fc.running.Load() {
		return
	}
	close(fc.stopChan)
	fc.running.Store(false)
}

// Wait blocks until the most recently started loop has exited
// Must not be called from a tick handler
func (fc *FrameClock) Wait() {
	fc.mu.Lock()
	done := fc.done
	fc.mu.Unlock()

	if done != nil {
		<-done
	}
}

// IsRunning reports whether the tick loop is active
func (fc *FrameClock) IsRunning() bool {
	return fc.running.Load()
}

// Pause suppresses tick delivery while the loop keeps its cadence
func (fc *FrameClock) Pause() {
	if fc.isPaused.CompareAndSwap(false, true) {
		fc.log.Debug("frame clock paused")
	}
}

// Resume re-enables tick delivery
func (fc *FrameClock) Resume() {
	if fc.isPaused.CompareAndSwap(true, false) {
		fc.log.Debug("frame clock resumed")
	}
}

// IsPaused returns current pause state
func (fc *FrameClock) IsPaused() bool {
	return fc.isPaused.Load()
}

// TickCount returns the number of ticks delivered since creation
func (fc *FrameClock) TickCount() uint64 {
	return fc.tickCount.Load()
}

// loop runs one start/stop cycle with drift-corrected deadlines
func (fc *FrameClock) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := fc.Interval()
	nextDeadline := time.Now().Add(interval)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		// Stop may have raced the timer
		select {
		case <-stop:
			return
		default:
		}

		fc.processTick()

		interval = fc.Interval()
		now := time.Now()
		nextDeadline = nextDeadline.Add(interval)

		// Drop missed frames instead of bursting to catch up
		if now.Sub(nextDeadline) > interval*2 {
			nextDeadline = now.Add(interval)
		}

		sleep := nextDeadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// processTick executes one clock cycle
func (fc *FrameClock) processTick() {
	if fc.isPaused.Load() {
		return
	}

	for _, h := range fc.handlers.snapshot() {
		h()
	}

	ticks := fc.tickCount.Add(1)
	fc.statTicks.Store(int64(ticks))
}
