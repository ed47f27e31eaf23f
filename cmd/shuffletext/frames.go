package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/shuffletext/config"
	"github.com/lixenwraith/shuffletext/engine"
	"github.com/lixenwraith/shuffletext/render"
	"github.com/lixenwraith/shuffletext/shuffle"
	"github.com/lixenwraith/shuffletext/status"
	"github.com/lixenwraith/shuffletext/vmath"
)

// frameEpoch is the fixed start time of headless runs
var frameEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newFramesCmd(opts *options) *cobra.Command {
	var (
		seed  uint64
		step  time.Duration
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "frames [text]",
		Short: "Print every frame of one run without a terminal",
		Long: `frames runs the animation against a simulated clock and prints each frame on its
own line, prefixed by its index. Frame 0 is the initial placeholder line (absent with
--keep), the last line is the restored text. The same seed and step always produce the
same output.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args, os.Getenv)
			if err != nil {
				return err
			}

			log, err := setupLogging(opts.debug)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if step <= 0 {
				step = time.Duration(float64(time.Second) / cfg.FrameRate)
			}

			metrics := status.NewRegistry()
			if err := renderFrames(cmd.OutOrStdout(), cfg, seed, step, log, metrics); err != nil {
				return err
			}
			if stats {
				fmt.Fprintln(cmd.ErrOrStderr(), metrics.Summary())
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Uint64Var(&seed, "seed", 1, "random seed")
	f.DurationVar(&step, "step", 0, "simulated time between frames, defaults to 1/fps")
	f.BoolVar(&stats, "stats", false, "print run counters to stderr")
	return cmd
}

// renderFrames drives one seeded run to completion on a manual ticker and writes the recorded frames
func renderFrames(w io.Writer, cfg config.Config, seed uint64, step time.Duration, log *zap.Logger, metrics *status.Registry) error {
	if step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %v", config.ErrInvalid, step)
	}

	ticker := engine.NewManualTicker()
	clock := engine.NewMockTimeProvider(frameEpoch)
	surface := render.NewBufferSurface(0)

	e := cfg.Apply(shuffle.New(
		shuffle.WithSurface(surface),
		shuffle.WithTickSource(ticker),
		shuffle.WithClock(clock),
		shuffle.WithRand(vmath.NewFastRand(seed)),
		shuffle.WithLogger(log),
		shuffle.WithMetrics(metrics),
	))

	e.Start(cfg.Keep)

	// Completion needs elapsed > duration, one extra step covers the boundary
	maxTicks := int(cfg.Duration/step) + 2
	for i := 0; i < maxTicks && e.IsRunning(); i++ {
		clock.Advance(step)
		ticker.Fire()
	}
	if e.IsRunning() {
		e.Stop(true)
		return fmt.Errorf("run did not complete within %d ticks", maxTicks)
	}

	for i, frame := range surface.Frames() {
		if _, err := fmt.Fprintf(w, "%03d %s\n", i, frame); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", i, err)
		}
	}
	return nil
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config [text]",
		Short: "Print the resolved configuration as YAML",
		Long: `config prints the configuration after applying the config file, environment
and flags. Redirect it to a file to start a new config.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args, os.Getenv)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
