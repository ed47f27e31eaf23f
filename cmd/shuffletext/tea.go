package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lixenwraith/shuffletext/config"
	"github.com/lixenwraith/shuffletext/engine"
	"github.com/lixenwraith/shuffletext/event"
	"github.com/lixenwraith/shuffletext/render/teaview"
	"github.com/lixenwraith/shuffletext/shuffle"
	"github.com/lixenwraith/shuffletext/status"
)

func runTea(ctx context.Context, cfg config.Config, log *zap.Logger, hooks shuffle.Hooks) error {
	metrics := status.NewRegistry()
	clock := engine.NewFrameClock(cfg.FrameRate, log, metrics)

	// The surface is attached once the program exists, Init starts the first run
	e := cfg.Apply(shuffle.New(
		shuffle.WithTickSource(clock),
		shuffle.WithHooks(hooks),
		shuffle.WithLogger(log),
		shuffle.WithMetrics(metrics),
	))

	p := tea.NewProgram(teaview.New(e, cfg.Keep), tea.WithAltScreen(), tea.WithContext(ctx))
	e.Attach(teaview.NewSurface(p))
	id := e.Subscribe(event.EventShuffleComplete, teaview.CompletionListener(p))
	defer e.Unsubscribe(event.EventShuffleComplete, id)

	_, err := p.Run()

	e.Stop(false)
	clock.Wait()
	log.Debug("demo finished", zap.String("metrics", metrics.Summary()))

	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("display error: %w", err)
	}
	return nil
}
