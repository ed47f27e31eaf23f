package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to exhaustion and returns the sample count, bounded by limit
func drain(s beep.Streamer, limit int) int {
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	return total
}

func TestOscillatorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tt := range waves {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(440, 50*time.Millisecond, tt.wave, rate)
			samples := make([][2]float64, 200)
			n, ok := osc.Stream(samples)

			if !ok || n != 200 {
				t.Fatalf("Stream() = (%d, %v), want (200, true)", n, ok)
			}
			for i := 0; i < n; i++ {
				if samples[i][0] < -1 || samples[i][0] > 1 {
					t.Errorf("sample %d out of range: %f", i, samples[i][0])
				}
				if samples[i][0] != samples[i][1] {
					t.Errorf("sample %d channels differ: %f vs %f", i, samples[i][0], samples[i][1])
				}
			}
			if osc.Err() != nil {
				t.Errorf("Err() = %v", osc.Err())
			}
		})
	}
}

func TestOscillatorSquareLevels(t *testing.T) {
	osc := NewOscillator(220, 20*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	samples := make([][2]float64, 100)
	n, _ := osc.Stream(samples)

	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1 && v != 1 {
			t.Errorf("square sample %d = %f, want +/-1", i, v)
		}
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(48000)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	if got, want := drain(osc, 1<<20), rate.N(100*time.Millisecond); got != want {
		t.Errorf("streamed %d samples, want %d", got, want)
	}

	// Exhausted oscillator reports done
	n, ok := osc.Stream(make([][2]float64, 10))
	if n != 0 || ok {
		t.Errorf("exhausted Stream() = (%d, %v), want (0, false)", n, ok)
	}
}

func TestEnvelopeAttackRamp(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate) // phase stays 0, constant +1
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	samples := make([][2]float64, 200)
	n, _ := env.Stream(samples)
	if n != 200 {
		t.Fatalf("streamed %d, want 200", n)
	}

	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", samples[0][0])
	}
	if math.Abs(samples[50][0]-0.5) > 1e-9 {
		t.Errorf("mid-attack sample = %f, want 0.5", samples[50][0])
	}
	if samples[150][0] != 1 {
		t.Errorf("sustain sample = %f, want 1", samples[150][0])
	}
}

func TestEnvelopeReleaseRamp(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate)
	env := NewEnvelope(osc, time.Second, 0, 100*time.Millisecond, rate)

	samples := make([][2]float64, 1000)
	n, _ := env.Stream(samples)
	if n != 1000 {
		t.Fatalf("streamed %d, want 1000", n)
	}

	if samples[899][0] != 1 {
		t.Errorf("pre-release sample = %f, want 1", samples[899][0])
	}
	if math.Abs(samples[950][0]-0.5) > 1e-9 {
		t.Errorf("mid-release sample = %f, want 0.5", samples[950][0])
	}
	for i := 900; i < 1000; i++ {
		if samples[i][0] > samples[i-1][0] {
			t.Fatalf("release not monotonic at %d", i)
		}
	}
}

func TestNewVolumeZero(t *testing.T) {
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, beep.SampleRate(44100))
	silent := newVolume(osc, 0)

	samples := make([][2]float64, 100)
	n, _ := silent.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 || samples[i][1] != 0 {
			t.Fatalf("sample %d not silent: %v", i, samples[i])
		}
	}
}

func TestNewVolumeHalf(t *testing.T) {
	rate := beep.SampleRate(1000)
	half := newVolume(NewOscillator(0, 10*time.Millisecond, WaveSquare, rate), 0.5)

	samples := make([][2]float64, 5)
	half.Stream(samples)
	if math.Abs(samples[0][0]-0.5) > 1e-9 {
		t.Errorf("gain 0.5 sample = %f, want 0.5", samples[0][0])
	}
}

func TestNewCueSound(t *testing.T) {
	s := DefaultSettings()

	for _, c := range []Cue{CueStart, CueReveal, CueComplete} {
		t.Run(c.String(), func(t *testing.T) {
			st := NewCueSound(c, s)
			if st == nil {
				t.Fatal("expected streamer")
			}

			samples := make([][2]float64, 256)
			n, ok := st.Stream(samples)
			if !ok || n == 0 {
				t.Fatalf("Stream() = (%d, %v)", n, ok)
			}

			peak := 0.0
			for i := 0; i < n; i++ {
				peak = max(peak, math.Abs(samples[i][0]))
			}
			if peak == 0 {
				t.Error("cue is silent at default settings")
			}
			if peak > 1 {
				t.Errorf("cue clips: peak %f", peak)
			}
		})
	}

	if NewCueSound(Cue(99), s) != nil {
		t.Error("unknown cue should return nil")
	}
}

func TestRevealSoundLength(t *testing.T) {
	s := DefaultSettings()
	if got, want := drain(NewRevealSound(s), 1<<20), s.SampleRate.N(revealDuration); got != want {
		t.Errorf("reveal streamed %d samples, want %d", got, want)
	}
}

func TestMutedSettingsAreSilent(t *testing.T) {
	s := DefaultSettings()
	s.Volume = 0

	samples := make([][2]float64, 256)
	n, _ := NewCompleteSound(s).Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("sample %d = %f at zero master volume", i, samples[i][0])
		}
	}
}
