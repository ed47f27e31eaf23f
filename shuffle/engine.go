package shuffle

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/shuffletext/engine"
	"github.com/lixenwraith/shuffletext/event"
	"github.com/lixenwraith/shuffletext/status"
	"github.com/lixenwraith/shuffletext/vmath"
)

// Engine reveals a target text over a fixed duration, one randomly staggered position at a time
//
// Lifecycle:
//   - Configuration and target text may change any number of times between runs
//   - Start creates a run and subscribes Update to the tick source
//   - Stop, or a tick observing elapsed > duration, tears the run down
//
// Thread-Safety: run state is guarded by a mutex; hooks and bus listeners run after it is
// released and may call back into the engine
type Engine struct {
	mu sync.Mutex

	id  string
	cfg Config

	// Target text for the next run
	target []rune

	surface Surface
	ticks   TickSource
	bus     Bus
	hooks   Hooks
	clock   Clock
	rng     RandomSource
	log     *zap.Logger

	state State
	run   runState

	statRuns     *atomic.Int64
	statFrames   *atomic.Int64
	statComplete *atomic.Int64
	statStopped  *atomic.Int64
}

// runState exists only between Start and Stop/completion
type runState struct {
	// Rune snapshot of the target, fixed for the run
	text []rune
	// Reveal threshold per position, as a fraction of the duration
	thresholds []float64
	startedAt  time.Time
	keep       bool
	final      string
	sub        uint64
}

// Option configures an Engine at construction
type Option func(*Engine)

// WithSurface attaches the display surface
func WithSurface(s Surface) Option {
	return func(e *Engine) { e.surface = s }
}

// WithTickSource replaces the default engine.FrameClock
func WithTickSource(t TickSource) Option {
	return func(e *Engine) { e.ticks = t }
}

// WithBus replaces the default event.Dispatcher
func WithBus(b Bus) Option {
	return func(e *Engine) { e.bus = b }
}

// WithHooks sets the direct callback extension point
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithClock replaces the monotonic wall clock
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRand replaces the time-seeded xorshift generator
func WithRand(r RandomSource) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics wires run and frame counters into a registry
func WithMetrics(r *status.Registry) Option {
	return func(e *Engine) {
		e.statRuns = r.Int(status.ShuffleRuns)
		e.statFrames = r.Int(status.ShuffleFrames)
		e.statComplete = r.Int(status.ShuffleComplete)
		e.statStopped = r.Int(status.ShuffleStopped)
	}
}

// WithConfig replaces the whole configuration without range checks
func WithConfig(c Config) Option {
	return func(e *Engine) { e.cfg = c.clone() }
}

// New creates a stopped engine, missing collaborators get defaults
func New(opts ...Option) *Engine {
	e := &Engine{
		id:  uuid.NewString(),
		cfg: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		e.log = zap.NewNop()
	}
	e.log = e.log.With(zap.String("engine", e.id))

	if e.ticks == nil {
		e.ticks = engine.NewFrameClock(e.cfg.FrameRate, e.log, nil)
	}
	if e.bus == nil {
		e.bus = event.NewDispatcher(e.log)
	}
	if e.hooks == nil {
		e.hooks = NopHooks{}
	}
	if e.clock == nil {
		e.clock = engine.NewMonotonicTimeProvider()
	}
	if e.rng == nil {
		e.rng = vmath.NewTimeSeededRand()
	}
	if e.statRuns == nil {
		WithMetrics(nil)(e)
	}
	return e
}

// ID returns the instance id used as event source and log field
func (e *Engine) ID() string {
	return e.id
}

// Attach sets the display surface, nil detaches it
// Detaching does not stop a running animation; the next tick finds no surface and stops silently
func (e *Engine) Attach(s Surface) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surface = s
	return e
}

// SetDuration sets the run length, non-positive values are ignored
func (e *Engine) SetDuration(d time.Duration) *Engine {
	if d <= 0 {
		e.log.Warn("ignoring non-positive duration", zap.Duration("duration", d))
		return e
	}
	e.mu.Lock()
	e.cfg.Duration = d
	e.mu.Unlock()
	return e
}

// SetText sets the target text of the next run
func (e *Engine) SetText(text string) *Engine {
	e.mu.Lock()
	e.target = []rune(text)
	e.mu.Unlock()
	return e
}

// SetFrameRate sets the requested tick rate, non-positive values are ignored
func (e *Engine) SetFrameRate(fps float64) *Engine {
	if fps <= 0 {
		e.log.Warn("ignoring non-positive frame rate", zap.Float64("fps", fps))
		return e
	}
	e.mu.Lock()
	e.cfg.FrameRate = fps
	e.mu.Unlock()
	return e
}

// SetFillerAlphabet sets the scramble characters, an empty alphabet is ignored
func (e *Engine) SetFillerAlphabet(chars string) *Engine {
	if chars == "" {
		e.log.Warn("ignoring empty filler alphabet")
		return e
	}
	e.mu.Lock()
	e.cfg.FillerAlphabet = []rune(chars)
	e.mu.Unlock()
	return e
}

// SetPlaceholder sets the character shown before a position starts scrambling
func (e *Engine) SetPlaceholder(r rune) *Engine {
	e.mu.Lock()
	e.cfg.Placeholder = r
	e.mu.Unlock()
	return e
}

// Config returns a copy of the current configuration
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.clone()
}

// Text returns the target text of the next run
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.target)
}

// State returns the lifecycle state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsRunning reports whether a run holds the tick subscription
func (e *Engine) IsRunning() bool {
	return e.State() == StateRunning
}

// Thresholds returns a copy of the current or last run's reveal schedule
func (e *Engine) Thresholds() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]float64, len(e.run.thresholds))
	copy(out, e.run.thresholds)
	return out
}

// Subscribe registers a bus listener for change or completion events
func (e *Engine) Subscribe(t event.EventType, l event.Listener) event.ListenerID {
	return e.bus.Subscribe(t, l)
}

// Unsubscribe removes a bus listener
func (e *Engine) Unsubscribe(t event.EventType, id event.ListenerID) {
	e.bus.Unsubscribe(t, id)
}

// Start begins a run; keep shows original characters instead of placeholders before scrambling
// Without an attached surface the call is a no-op
// Starting while running force-stops the previous run first, restoring its final text
func (e *Engine) Start(keep bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.surface == nil {
		e.log.Debug("start ignored, no surface attached")
		return
	}

	if e.state == StateRunning {
		e.stopLocked(true)
	}

	text := append([]rune(nil), e.target...)
	n := len(text)

	// Position i can reveal no earlier than i/n of the duration, later positions skew later
	// The explicit conversion blocks fused multiply-add so seeded schedules match across platforms
	thresholds := make([]float64, n)
	for i := range thresholds {
		rate := float64(i) / float64(n)
		thresholds[i] = float64(e.rng.Float64()*(1-rate)) + rate
	}

	e.run = runState{
		text:       text,
		thresholds: thresholds,
		keep:       keep,
		final:      string(text),
	}

	if !keep {
		e.surface.SetText(strings.Repeat(string(e.cfg.Placeholder), n))
	}

	e.run.startedAt = e.clock.Now()
	e.state = StateRunning

	e.ticks.Configure(e.cfg.FrameRate)
	e.run.sub = e.ticks.Subscribe(e.Update)
	e.ticks.Start()

	e.statRuns.Add(1)
	e.log.Debug("run started",
		zap.Int("length", n),
		zap.Bool("keep", keep),
		zap.Duration("duration", e.cfg.Duration),
		zap.Float64("fps", e.cfg.FrameRate))
}

// Stop ends a run; restore writes the run's final text to the surface
// No-op when not running, restoration included
func (e *Engine) Stop(restore bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return
	}
	e.stopLocked(restore)
	e.statStopped.Add(1)
	e.log.Debug("run stopped", zap.Bool("restore", restore))
}

// stopLocked releases the tick subscription, caller holds e.mu and has checked StateRunning
func (e *Engine) stopLocked(restore bool) {
	e.ticks.Unsubscribe(e.run.sub)
	e.ticks.Stop()

	if restore && e.surface != nil {
		e.surface.SetText(e.run.final)
	}
	e.state = StateStopped
}
