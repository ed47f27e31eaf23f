package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys written by the animation stack
const (
	ClockTicks      = "clock.ticks"
	ClockRate       = "clock.rate"
	ShuffleRuns     = "shuffle.runs"
	ShuffleFrames   = "shuffle.frames"
	ShuffleComplete = "shuffle.completed"
	ShuffleStopped  = "shuffle.stopped"
)

// Registry is the central metrics facade
// Producers cache pointers during construction; hot paths write directly to atomics
// A nil *Registry is valid and hands out detached metrics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Int returns the counter for key
func (r *Registry) Int(key string) *atomic.Int64 {
	if r == nil {
		return new(atomic.Int64)
	}
	return r.Ints.Get(key)
}

// Float returns the gauge for key
func (r *Registry) Float(key string) *AtomicFloat {
	if r == nil {
		return new(AtomicFloat)
	}
	return r.Floats.Get(key)
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	if r == nil {
		return 0
	}
	return r.Ints.Count() + r.Floats.Count()
}

// Summary renders all metrics as "key=value" pairs in key order, counters first
func (r *Registry) Summary() string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", key, v.Load())
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%.1f", key, v.Get())
	})
	return b.String()
}
