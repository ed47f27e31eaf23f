package shuffle

import (
	"time"

	"github.com/lixenwraith/shuffletext/event"
)

// Surface receives each rendered frame, the engine never reads it back
type Surface interface {
	SetText(text string)
}

// TickSource invokes subscribed handlers at approximately the configured rate while started
// engine.FrameClock and engine.ManualTicker satisfy it
type TickSource interface {
	Configure(rate float64)
	Subscribe(h func()) uint64
	Unsubscribe(id uint64)
	Start()
	Stop()
}

// Bus is the publish/subscribe substrate used for change and completion notifications
// event.Dispatcher satisfies it
type Bus interface {
	Subscribe(t event.EventType, l event.Listener) event.ListenerID
	Unsubscribe(t event.EventType, id event.ListenerID)
	Emit(ev event.Event)
}

// RandomSource supplies the reveal schedule and filler selection
// vmath.FastRand satisfies it
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// Clock measures elapsed run time
// engine.TimeProvider implementations satisfy it
type Clock interface {
	Now() time.Time
}
