package shuffle

import "time"

// Defaults applied by New
const (
	DefaultFrameRate      = 60.0
	DefaultDuration       = 500 * time.Millisecond
	DefaultFillerAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"
	DefaultPlaceholder    = '*'
)

// Config is the per-engine animation configuration, read at Start and on every tick
type Config struct {
	// FrameRate is the tick rate requested from the tick source
	FrameRate float64
	// Duration is the length of a run
	Duration time.Duration
	// FillerAlphabet supplies random characters for scrambling positions
	FillerAlphabet []rune
	// Placeholder marks positions that have not started scrambling
	Placeholder rune
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		FrameRate:      DefaultFrameRate,
		Duration:       DefaultDuration,
		FillerAlphabet: []rune(DefaultFillerAlphabet),
		Placeholder:    DefaultPlaceholder,
	}
}

func (c Config) clone() Config {
	c.FillerAlphabet = append([]rune(nil), c.FillerAlphabet...)
	return c
}
