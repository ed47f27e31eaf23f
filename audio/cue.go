package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue identifies a sound tied to an animation moment
type Cue int

const (
	CueStart    Cue = iota // Soft noise burst as a run begins
	CueReveal              // Short blip while characters settle
	CueComplete            // Two-note chime on completion
	cueCount
)

// String returns the cue name
func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueReveal:
		return "reveal"
	case CueComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Settings are the synthesis parameters shared by all cues
type Settings struct {
	SampleRate beep.SampleRate
	// Volume is the master gain in [0, 1]
	Volume float64
	// CueVolumes scales each cue before the master gain
	CueVolumes [cueCount]float64
}

// DefaultSampleRate matches the speaker buffer setup
const DefaultSampleRate = beep.SampleRate(48000)

const (
	startDuration = 60 * time.Millisecond
	startAttack   = 10 * time.Millisecond
	startRelease  = 40 * time.Millisecond

	revealDuration = 25 * time.Millisecond
	revealAttack   = 2 * time.Millisecond
	revealRelease  = 15 * time.Millisecond

	chimeNote1Duration = 90 * time.Millisecond
	chimeNote2Duration = 220 * time.Millisecond
	chimeAttack        = 3 * time.Millisecond
	chimeNote1Release  = 40 * time.Millisecond
	chimeNote2Release  = 180 * time.Millisecond
)

// DefaultSettings returns half master volume with a quiet reveal blip
func DefaultSettings() Settings {
	return Settings{
		SampleRate: DefaultSampleRate,
		Volume:     0.5,
		CueVolumes: [cueCount]float64{
			CueStart:    0.3,
			CueReveal:   0.2,
			CueComplete: 0.8,
		},
	}
}

func (s Settings) gain(c Cue) float64 {
	return s.CueVolumes[c] * min(max(s.Volume, 0), 1)
}

// NewStartSound generates a short filtered noise burst
func NewStartSound(s Settings) beep.Streamer {
	noise := NewOscillator(0, startDuration, WaveNoise, s.SampleRate)
	shaped := NewEnvelope(noise, startDuration, startAttack, startRelease, s.SampleRate)
	return newVolume(shaped, s.gain(CueStart))
}

// NewRevealSound generates a square blip at A6
func NewRevealSound(s Settings) beep.Streamer {
	osc := NewOscillator(1760.0, revealDuration, WaveSquare, s.SampleRate)
	shaped := NewEnvelope(osc, revealDuration, revealAttack, revealRelease, s.SampleRate)
	return newVolume(shaped, s.gain(CueReveal))
}

// NewCompleteSound generates a rising fifth, E5 then B5 with an octave overtone
func NewCompleteSound(s Settings) beep.Streamer {
	rate := s.SampleRate

	n1 := NewOscillator(659.25, chimeNote1Duration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, chimeNote1Duration, chimeAttack, chimeNote1Release, rate)

	fund := NewOscillator(987.77, chimeNote2Duration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, chimeNote2Duration, chimeAttack, chimeNote2Release, rate)
	over := NewOscillator(1975.53, chimeNote2Duration, WaveSine, rate)
	overShaped := NewEnvelope(over, chimeNote2Duration, chimeAttack, chimeNote2Release/2, rate)

	n2 := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)

	return newVolume(beep.Seq(n1Shaped, n2), s.gain(CueComplete))
}

// NewCueSound returns the streamer for c, nil for unknown cues
func NewCueSound(c Cue, s Settings) beep.Streamer {
	switch c {
	case CueStart:
		return NewStartSound(s)
	case CueReveal:
		return NewRevealSound(s)
	case CueComplete:
		return NewCompleteSound(s)
	default:
		return nil
	}
}
