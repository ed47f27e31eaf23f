package shuffle

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/lixenwraith/shuffletext/engine"
	"github.com/lixenwraith/shuffletext/event"
	"github.com/lixenwraith/shuffletext/render"
	"github.com/lixenwraith/shuffletext/status"
	"github.com/lixenwraith/shuffletext/vmath"
)

func TestEngine_FrameClockRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	metrics := status.NewRegistry()
	clock := engine.NewFrameClock(engine.DefaultFrameRate, nil, metrics)
	surface := render.NewBufferSurface(0)

	e := New(
		WithSurface(surface),
		WithTickSource(clock),
		WithRand(vmath.NewFastRand(123)),
		WithMetrics(metrics),
	)
	e.SetText("REAL CLOCK").SetDuration(60 * time.Millisecond).SetFrameRate(250)

	done := make(chan struct{})
	e.Subscribe(event.EventShuffleComplete, event.ListenerFunc(func(event.Event) { close(done) }))

	e.Start(false)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		e.Stop(false)
		clock.Wait()
		t.Fatal("Run did not complete")
	}
	clock.Wait()

	if got := surface.Text(); got != "REAL CLOCK" {
		t.Errorf("Expected final text, got %q", got)
	}
	if clock.IsRunning() || clock.HandlerCount() != 0 {
		t.Error("Expected clock stopped with no handlers")
	}
	if got := metrics.Float(status.ClockRate).Get(); got != 250 {
		t.Errorf("Expected clock configured at 250fps, got %v", got)
	}
	if metrics.Int(status.ShuffleFrames).Load() < 2 {
		t.Error("Expected several frames")
	}
}

func TestEngine_FrameClockStopMidRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := engine.NewFrameClock(engine.DefaultFrameRate, nil, nil)
	surface := render.NewBufferSurface(0)
	e := New(WithSurface(surface), WithTickSource(clock))
	e.SetText("INTERRUPTED").SetDuration(10 * time.Second).SetFrameRate(200)

	e.Start(false)
	time.Sleep(30 * time.Millisecond)
	e.Stop(true)
	clock.Wait()

	if e.IsRunning() {
		t.Error("Expected stopped engine")
	}
	if got := surface.Text(); got != "INTERRUPTED" {
		t.Errorf("Expected restored text, got %q", got)
	}
}
