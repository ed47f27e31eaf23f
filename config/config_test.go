package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/shuffletext/shuffle"
)

func TestDefault_MatchesEngineDefaults(t *testing.T) {
	cfg := Default()
	engineCfg := shuffle.DefaultConfig()

	assert.Equal(t, engineCfg.Duration, cfg.Duration)
	assert.Equal(t, engineCfg.FrameRate, cfg.FrameRate)
	assert.Equal(t, string(engineCfg.FillerAlphabet), cfg.Alphabet)
	assert.Equal(t, engineCfg.Placeholder, cfg.PlaceholderRune())
	assert.NoError(t, cfg.Validate())
}

func TestParse_OverlaysDefaults(t *testing.T) {
	data := []byte(`
text: HELLO
duration: 1.5s
frame_rate: 30
sound:
  enabled: true
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "HELLO", cfg.Text)
	assert.Equal(t, 1500*time.Millisecond, cfg.Duration)
	assert.Equal(t, 30.0, cfg.FrameRate)
	assert.True(t, cfg.Sound.Enabled)
	// Untouched keys keep defaults
	assert.Equal(t, shuffle.DefaultFillerAlphabet, cfg.Alphabet)
	assert.Equal(t, "*", cfg.Placeholder)
	assert.Equal(t, 0.5, cfg.Sound.Volume)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("duration: [not, a, duration]"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shuffletext.yaml")
	require.NoError(t, os.WriteFile(path, []byte("text: FROM FILE\nkeep: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FROM FILE", cfg.Text)
	assert.True(t, cfg.Keep)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Text = "ROUND TRIP"
	cfg.Duration = 750 * time.Millisecond

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "duration: 750ms")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvText:        "ENV TEXT",
		EnvDuration:    "2s",
		EnvFrameRate:   "24",
		EnvAlphabet:    "01",
		EnvPlaceholder: "_",
		EnvSound:       "true",
		EnvVolume:      "150",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "ENV TEXT", cfg.Text)
	assert.Equal(t, 2*time.Second, cfg.Duration)
	assert.Equal(t, 24.0, cfg.FrameRate)
	assert.Equal(t, "01", cfg.Alphabet)
	assert.Equal(t, '_', cfg.PlaceholderRune())
	assert.True(t, cfg.Sound.Enabled)
	assert.Equal(t, 1.0, cfg.Sound.Volume, "volume is clamped")
}

func TestApplyEnv_BadValues(t *testing.T) {
	env := map[string]string{
		EnvDuration:  "soon",
		EnvFrameRate: "fast",
		EnvText:      "STILL APPLIED",
	}
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string { return env[k] })

	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDuration)
	assert.Contains(t, err.Error(), EnvFrameRate)
	assert.Equal(t, "STILL APPLIED", cfg.Text)
	assert.Equal(t, Default().Duration, cfg.Duration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"negative frame rate", func(c *Config) { c.FrameRate = -1 }},
		{"empty alphabet", func(c *Config) { c.Alphabet = "" }},
		{"multi-rune placeholder", func(c *Config) { c.Placeholder = "**" }},
		{"empty placeholder", func(c *Config) { c.Placeholder = "" }},
		{"loud volume", func(c *Config) { c.Sound.Volume = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Duration = 0
	cfg.Alphabet = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration")
	assert.Contains(t, err.Error(), "alphabet")
}

func TestPlaceholderRune(t *testing.T) {
	cfg := Default()
	cfg.Placeholder = "░"
	assert.Equal(t, '░', cfg.PlaceholderRune())

	cfg.Placeholder = ""
	assert.Equal(t, shuffle.DefaultPlaceholder, cfg.PlaceholderRune())
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Text = "APPLIED"
	cfg.Duration = time.Second
	cfg.FrameRate = 12
	cfg.Alphabet = "ab"
	cfg.Placeholder = "-"

	e := cfg.Apply(shuffle.New())

	got := e.Config()
	assert.Equal(t, "APPLIED", e.Text())
	assert.Equal(t, time.Second, got.Duration)
	assert.Equal(t, 12.0, got.FrameRate)
	assert.Equal(t, []rune("ab"), got.FillerAlphabet)
	assert.Equal(t, '-', got.Placeholder)
}
