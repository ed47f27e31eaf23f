package shuffle

import (
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/shuffletext/event"
)

// Update renders one frame; it is the tick handler subscribed by Start
// Hosts driving their own frame loop may call it directly, it is a no-op unless running
//
// Per position, with p = elapsed/duration and t the position's threshold:
//   - p >= t: original character, revealed for the rest of the run
//   - p < t/3: placeholder, or the original character in keep mode
//   - otherwise: random filler character
//
// A frame with p > 1, or any frame of an empty target, completes the run: the final text
// is restored, then OnChange/change event and OnComplete/complete event are delivered in
// that order
func (e *Engine) Update() {
	e.mu.Lock()
	if e.state != StateRunning {
		e.mu.Unlock()
		return
	}
	if e.surface == nil {
		// Detached mid-run
		e.stopLocked(false)
		e.mu.Unlock()
		return
	}

	percent := e.elapsedPercent(e.clock.Now())
	text := e.renderFrame(percent)
	e.surface.SetText(text)
	e.statFrames.Add(1)

	// Strictly greater: a frame at exactly 100% still renders unrevealed positions
	// An empty target has nothing to reveal and completes on its first frame
	complete := percent > 1 || len(e.run.text) == 0
	if complete {
		e.stopLocked(true)
		e.statComplete.Add(1)
		e.log.Debug("run completed", zap.Float64("percent", percent))
	}

	hooks, bus, id := e.hooks, e.bus, e.id
	e.mu.Unlock()

	hooks.OnChange(text)
	bus.Emit(event.Event{
		Type:    event.EventShuffleChange,
		Source:  id,
		Payload: &event.ChangePayload{Text: text},
	})

	if complete {
		hooks.OnComplete()
		bus.Emit(event.Event{Type: event.EventShuffleComplete, Source: id})
	}
}

// elapsedPercent returns run progress as a fraction of the duration
func (e *Engine) elapsedPercent(now time.Time) float64 {
	elapsed := now.Sub(e.run.startedAt)
	if e.cfg.Duration <= 0 {
		// Zero-length runs are complete on the first frame
		return math.Inf(1)
	}
	return float64(elapsed) / float64(e.cfg.Duration)
}

// renderFrame builds the frame text for the given progress, caller holds e.mu
func (e *Engine) renderFrame(percent float64) string {
	var b strings.Builder
	b.Grow(len(e.run.text))

	for i, r := range e.run.text {
		threshold := e.run.thresholds[i]

		switch {
		case percent >= threshold:
			b.WriteRune(r)
		case percent < threshold/3:
			if e.run.keep {
				b.WriteRune(r)
			} else {
				b.WriteRune(e.cfg.Placeholder)
			}
		default:
			b.WriteRune(e.filler())
		}
	}
	return b.String()
}

// filler picks a random scramble character, placeholder when the alphabet is empty
func (e *Engine) filler() rune {
	alphabet := e.cfg.FillerAlphabet
	if len(alphabet) == 0 {
		return e.cfg.Placeholder
	}
	return alphabet[e.rng.IntN(len(alphabet))]
}
