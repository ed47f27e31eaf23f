package audio

import (
	"sync"
	"time"

	"github.com/lixenwraith/shuffletext/engine"
)

// DefaultRevealGap is the minimum spacing between reveal blips
const DefaultRevealGap = 45 * time.Millisecond

// Cues turns animation callbacks into sounds
// It satisfies shuffle.Hooks and may be combined with other hooks via shuffle.MultiHooks
type Cues struct {
	mu       sync.Mutex
	sink     Sink
	settings Settings
	clock    engine.TimeProvider
	gap      time.Duration

	lastText string
	lastBlip time.Time
	active   bool
	played   [cueCount]int
}

// CuesOption configures Cues
type CuesOption func(*Cues)

// WithCueClock replaces the wall clock used for blip throttling
func WithCueClock(c engine.TimeProvider) CuesOption {
	return func(cs *Cues) { cs.clock = c }
}

// WithRevealGap sets the minimum spacing between reveal blips, zero disables throttling
func WithRevealGap(d time.Duration) CuesOption {
	return func(cs *Cues) { cs.gap = max(d, 0) }
}

// NewCues creates cues playing into sink
func NewCues(sink Sink, settings Settings, opts ...CuesOption) *Cues {
	cs := &Cues{
		sink:     sink,
		settings: settings,
		clock:    engine.NewMonotonicTimeProvider(),
		gap:      DefaultRevealGap,
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// OnChange plays the start cue on the first frame of a run and throttled blips after
// Frames identical to the previous one are silent
func (cs *Cues) OnChange(text string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.active {
		cs.active = true
		cs.lastText = text
		cs.lastBlip = cs.clock.Now()
		cs.playLocked(CueStart)
		return
	}

	if text == cs.lastText {
		return
	}
	cs.lastText = text

	now := cs.clock.Now()
	if now.Sub(cs.lastBlip) < cs.gap {
		return
	}
	cs.lastBlip = now
	cs.playLocked(CueReveal)
}

// OnComplete plays the completion chime and arms the start cue for the next run
func (cs *Cues) OnComplete() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.active = false
	cs.lastText = ""
	cs.playLocked(CueComplete)
}

// Reset arms the start cue without playing anything, used when a run is stopped externally
func (cs *Cues) Reset() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.active = false
	cs.lastText = ""
}

// Played returns how many times c was played
func (cs *Cues) Played(c Cue) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if c < 0 || c >= cueCount {
		return 0
	}
	return cs.played[c]
}

func (cs *Cues) playLocked(c Cue) {
	if cs.sink == nil {
		return
	}
	cs.played[c]++
	cs.sink.Play(NewCueSound(c, cs.settings))
}
