package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/shuffletext/audio"
	"github.com/lixenwraith/shuffletext/config"
	"github.com/lixenwraith/shuffletext/shuffle"
)

const (
	backendTcell = "tcell"
	backendTea   = "tea"
)

// errQuit ends the input loop on a quit key
var errQuit = errors.New("quit requested")

// options holds raw flag values, only flags the user changed override the config file
type options struct {
	configPath  string
	text        string
	duration    time.Duration
	fps         float64
	alphabet    string
	placeholder string
	keep        bool
	debug       bool

	backend string
	sound   bool
	volume  int
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&options{})
}

// buildRootCmd binds every flag to opts
func buildRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shuffletext [text]",
		Short: "Reveal text through a shuffle animation",
		Long: `shuffletext reveals a line of text in the terminal. Every character starts as a
placeholder, scrambles through random filler characters and settles on its original
value at a randomly staggered moment, later characters tending to settle later.

Keys: space or enter restarts, k restarts keeping the original text visible,
p pauses, q or esc quits.

Settings are read from the config file, then SHUFFLETEXT_* environment variables,
then flags.`,
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hooks, closeSound := soundHooks(cfg, log)
			defer closeSound()

			log.Debug("starting demo", zap.String("backend", opts.backend), zap.String("text", cfg.Text))

			switch opts.backend {
			case backendTcell:
				return runTcell(ctx, cfg, log, hooks)
			case backendTea:
				return runTea(ctx, cfg, log, hooks)
			default:
				return fmt.Errorf("unknown backend %q, want %s or %s", opts.backend, backendTcell, backendTea)
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&opts.text, "text", "t", "", "text to reveal, positional arguments take precedence")
	pf.DurationVarP(&opts.duration, "duration", "d", shuffle.DefaultDuration, "animation length")
	pf.Float64Var(&opts.fps, "fps", shuffle.DefaultFrameRate, "frames per second")
	pf.StringVar(&opts.alphabet, "alphabet", shuffle.DefaultFillerAlphabet, "filler characters")
	pf.StringVar(&opts.placeholder, "placeholder", string(shuffle.DefaultPlaceholder), "character shown before scrambling")
	pf.BoolVarP(&opts.keep, "keep", "k", false, "show original characters instead of placeholders")
	pf.BoolVar(&opts.debug, "debug", false, "write debug logs to logs/shuffletext.log")

	f := cmd.Flags()
	f.StringVar(&opts.backend, "backend", backendTcell, "display backend: tcell or tea")
	f.BoolVar(&opts.sound, "sound", false, "play sound cues")
	f.IntVar(&opts.volume, "volume", 50, "sound volume 0-100")

	cmd.AddCommand(newFramesCmd(opts), newConfigCmd(opts))
	return cmd
}

// resolveConfig layers defaults, config file, environment and changed flags
func resolveConfig(cmd *cobra.Command, opts *options, args []string, getenv func(string) string) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("text") {
		cfg.Text = opts.text
	}
	if len(args) > 0 {
		cfg.Text = strings.Join(args, " ")
	}
	if flags.Changed("duration") {
		cfg.Duration = opts.duration
	}
	if flags.Changed("fps") {
		cfg.FrameRate = opts.fps
	}
	if flags.Changed("alphabet") {
		cfg.Alphabet = opts.alphabet
	}
	if flags.Changed("placeholder") {
		cfg.Placeholder = opts.placeholder
	}
	if flags.Changed("keep") {
		cfg.Keep = opts.keep
	}
	// Sound flags exist on the root command only
	if f := flags.Lookup("sound"); f != nil && f.Changed {
		cfg.Sound.Enabled = opts.sound
	}
	if f := flags.Lookup("volume"); f != nil && f.Changed {
		cfg.Sound.Volume = min(max(float64(opts.volume)/100.0, 0), 1)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// soundHooks opens the speaker when sound is enabled
// A missing audio device degrades to silence with a warning in the debug log
func soundHooks(cfg config.Config, log *zap.Logger) (shuffle.Hooks, func()) {
	if !cfg.Sound.Enabled {
		return shuffle.NopHooks{}, func() {}
	}

	sp := audio.NewSpeaker(audio.DefaultSampleRate, log)
	if err := sp.Init(); err != nil {
		log.Warn("sound disabled", zap.Error(err))
		return shuffle.NopHooks{}, func() {}
	}

	settings := audio.DefaultSettings()
	settings.Volume = cfg.Sound.Volume
	return audio.NewCues(sp, settings), sp.Close
}
