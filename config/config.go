package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/shuffletext/shuffle"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Environment overrides, applied after the file
const (
	EnvText        = "SHUFFLETEXT_TEXT"
	EnvDuration    = "SHUFFLETEXT_DURATION"
	EnvFrameRate   = "SHUFFLETEXT_FPS"
	EnvAlphabet    = "SHUFFLETEXT_ALPHABET"
	EnvPlaceholder = "SHUFFLETEXT_PLACEHOLDER"
	EnvSound       = "SHUFFLETEXT_SOUND"
	EnvVolume      = "SHUFFLETEXT_VOLUME"
)

// Config is the on-disk animation configuration
type Config struct {
	Text        string        `yaml:"text"`
	Duration    time.Duration `yaml:"duration"`
	FrameRate   float64       `yaml:"frame_rate"`
	Alphabet    string        `yaml:"alphabet"`
	Placeholder string        `yaml:"placeholder"`
	Keep        bool          `yaml:"keep"`
	Sound       SoundConfig   `yaml:"sound"`
}

// SoundConfig controls the audio cues
type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
	// Volume is the master volume in [0, 1]
	Volume float64 `yaml:"volume"`
}

// Default returns the configuration matching shuffle.DefaultConfig
func Default() Config {
	return Config{
		Text:        "SHUFFLE TEXT",
		Duration:    shuffle.DefaultDuration,
		FrameRate:   shuffle.DefaultFrameRate,
		Alphabet:    shuffle.DefaultFillerAlphabet,
		Placeholder: string(shuffle.DefaultPlaceholder),
		Sound: SoundConfig{
			Enabled: false,
			Volume:  0.5,
		},
	}
}

// Parse decodes YAML over the defaults, absent keys keep their default value
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses a YAML file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes the configuration as YAML
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// ApplyEnv overrides fields from environment variables read through getenv
// Unparseable values are reported, valid ones are still applied
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var errs []error

	if v := getenv(EnvText); v != "" {
		c.Text = v
	}
	if v := getenv(EnvAlphabet); v != "" {
		c.Alphabet = v
	}
	if v := getenv(EnvPlaceholder); v != "" {
		c.Placeholder = v
	}
	if v := getenv(EnvDuration); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Duration = d
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvDuration, err))
		}
	}
	if v := getenv(EnvFrameRate); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.FrameRate = f
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvFrameRate, err))
		}
	}
	if v := getenv(EnvSound); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sound.Enabled = b
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSound, err))
		}
	}
	// Volume is given as 0-100
	if v := getenv(EnvVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Sound.Volume = min(max(float64(n)/100.0, 0), 1)
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvVolume, err))
		}
	}

	return errors.Join(errs...)
}

// Validate reports every range violation, each wrapping ErrInvalid
func (c Config) Validate() error {
	var errs []error

	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("%w: duration must be positive, got %v", ErrInvalid, c.Duration))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: frame_rate must be positive, got %v", ErrInvalid, c.FrameRate))
	}
	if c.Alphabet == "" {
		errs = append(errs, fmt.Errorf("%w: alphabet must not be empty", ErrInvalid))
	}
	if utf8.RuneCountInString(c.Placeholder) != 1 {
		errs = append(errs, fmt.Errorf("%w: placeholder must be a single character, got %q", ErrInvalid, c.Placeholder))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("%w: sound.volume must be in [0, 1], got %v", ErrInvalid, c.Sound.Volume))
	}

	return errors.Join(errs...)
}

// PlaceholderRune returns the first rune of Placeholder, the default for an empty value
func (c Config) PlaceholderRune() rune {
	r, size := utf8.DecodeRuneInString(c.Placeholder)
	if size == 0 || r == utf8.RuneError {
		return shuffle.DefaultPlaceholder
	}
	return r
}

// Apply pushes the animation settings and target text into an engine
func (c Config) Apply(e *shuffle.Engine) *shuffle.Engine {
	return e.SetText(c.Text).
		SetDuration(c.Duration).
		SetFrameRate(c.FrameRate).
		SetFillerAlphabet(c.Alphabet).
		SetPlaceholder(c.PlaceholderRune())
}
