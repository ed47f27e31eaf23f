package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/shuffletext/config"
	"github.com/lixenwraith/shuffletext/core"
	"github.com/lixenwraith/shuffletext/engine"
	"github.com/lixenwraith/shuffletext/render"
	"github.com/lixenwraith/shuffletext/shuffle"
	"github.com/lixenwraith/shuffletext/status"
)

const tcellHelp = "space/enter: restart  k: keep  p: pause  q: quit"

var (
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	helpStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
)

// tcellDemo wires an engine to three rows of a tcell screen
type tcellDemo struct {
	screen    tcell.Screen
	text      string
	textRow   *render.ScreenSurface
	helpRow   *render.ScreenSurface
	statusRow *render.ScreenSurface
	clock     *engine.FrameClock
	runClock  *engine.PausableClock
	engine    *shuffle.Engine
	metrics   *status.Registry
	log       *zap.Logger
}

func runTcell(ctx context.Context, cfg config.Config, log *zap.Logger, hooks shuffle.Hooks) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	// Panics on the clock goroutine restore the terminal before the trace is printed
	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)

	d := newTcellDemo(screen, cfg, log, hooks)
	return d.run(ctx, cfg.Keep)
}

func newTcellDemo(screen tcell.Screen, cfg config.Config, log *zap.Logger, hooks shuffle.Hooks) *tcellDemo {
	d := &tcellDemo{
		screen:    screen,
		text:      cfg.Text,
		textRow:   render.NewCenteredSurface(screen, cfg.Text, textStyle),
		helpRow:   render.NewScreenSurface(screen, 0, 0, helpStyle),
		statusRow: render.NewScreenSurface(screen, 0, 0, statusStyle),
		metrics:   status.NewRegistry(),
		log:       log,
	}
	d.layout()

	// Pausing stops ticks and run time together, so a resumed run continues where it froze
	d.clock = engine.NewFrameClock(cfg.FrameRate, log, d.metrics)
	d.runClock = engine.NewPausableClock(nil)
	d.engine = cfg.Apply(shuffle.New(
		shuffle.WithSurface(d.textRow),
		shuffle.WithTickSource(d.clock),
		shuffle.WithClock(d.runClock),
		shuffle.WithHooks(shuffle.MultiHooks{
			hooks,
			shuffle.HookFuncs{Complete: d.showStatus},
		}),
		shuffle.WithLogger(log),
		shuffle.WithMetrics(d.metrics),
	))
	return d
}

// layout centres the text row with help below it and the status line at the bottom
func (d *tcellDemo) layout() {
	w, h := d.screen.Size()
	x := max((w-runewidth.StringWidth(d.text))/2, 0)
	d.textRow.MoveTo(x, h/2)
	d.helpRow.MoveTo(max((w-runewidth.StringWidth(tcellHelp))/2, 0), h/2+2)
	d.statusRow.MoveTo(0, max(h-1, 0))
	d.helpRow.SetText(tcellHelp)
}

func (d *tcellDemo) showStatus() {
	d.statusRow.SetText(d.metrics.Summary())
}

func (d *tcellDemo) run(ctx context.Context, keep bool) error {
	d.engine.Start(keep)

	g, gctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 16)

	// PollEvent blocks, an interrupt event unblocks it on shutdown
	g.Go(func() error {
		for {
			ev := d.screen.PollEvent()
			if ev == nil || gctx.Err() != nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-events:
				if err := d.handle(ev); err != nil {
					return err
				}
			}
		}
	})

	err := g.Wait()

	d.engine.Stop(false)
	d.clock.Wait()
	d.log.Debug("demo finished", zap.String("metrics", d.metrics.Summary()))

	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// handle applies one input event, errQuit ends the demo
func (d *tcellDemo) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return errQuit
		case tcell.KeyEnter:
			d.engine.Start(false)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return errQuit
			case ' ':
				d.engine.Start(false)
			case 'k':
				d.engine.Start(true)
			case 'p':
				d.togglePause()
			}
		}
	case *tcell.EventResize:
		d.screen.Clear()
		d.layout()
		d.textRow.SetText(d.text)
		d.screen.Sync()
	}
	return nil
}

func (d *tcellDemo) togglePause() {
	if d.clock.IsPaused() {
		d.runClock.Resume()
		d.clock.Resume()
		d.statusRow.SetText("")
		return
	}
	d.clock.Pause()
	d.runClock.Pause()
	d.statusRow.SetText("paused")
}
