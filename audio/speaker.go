package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Sink accepts streamers for playback
type Sink interface {
	Play(s beep.Streamer)
}

// Speaker plays streamers through the system audio device via a shared mixer
// All methods are safe before Init and after Close, playback is then dropped
type Speaker struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	log         *zap.Logger
}

// NewSpeaker creates an uninitialized speaker, log may be nil
func NewSpeaker(rate beep.SampleRate, log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speaker{
		rate:  rate,
		mixer: &beep.Mixer{},
		log:   log,
	}
}

// Init opens the audio device with a 100ms buffer, repeated calls are no-ops
func (sp *Speaker) Init() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		return nil
	}

	if err := speaker.Init(sp.rate, sp.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	speaker.Play(sp.mixer)
	sp.initialized = true
	sp.log.Debug("speaker initialized", zap.Int("sample_rate", int(sp.rate)))
	return nil
}

// Play mixes s into the running output
func (sp *Speaker) Play(s beep.Streamer) {
	if s == nil {
		return
	}

	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return
	}

	speaker.Lock()
	sp.mixer.Add(s)
	speaker.Unlock()
}

// Active returns the number of streamers still playing
func (sp *Speaker) Active() int {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return 0
	}

	speaker.Lock()
	defer speaker.Unlock()
	return sp.mixer.Len()
}

// Close drops queued sounds, beep offers no device close so the stream keeps running silent
func (sp *Speaker) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return
	}

	speaker.Lock()
	sp.mixer.Clear()
	speaker.Unlock()

	sp.initialized = false
}
