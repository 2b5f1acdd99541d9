package samples

import (
	"time"

	"github.com/kbukum/fluxkit/validation"
)

// Settings tunes the timer-driven and concurrent samples.
type Settings struct {
	// IntervalPeriod is the tick period of the interval sample.
	IntervalPeriod time.Duration `yaml:"interval_period" mapstructure:"interval_period" validate:"gt=0"`
	// Delay is the per-element delay of the delay sample.
	Delay time.Duration `yaml:"delay" mapstructure:"delay" validate:"gt=0"`
	// RangeCount is how many elements the interval and delay samples emit.
	RangeCount int `yaml:"range_count" mapstructure:"range_count" validate:"gte=1"`
	// Workers is the pool size of the parallel sample.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=1"`
}

// DefaultSettings matches the pacing of the classic Reactor demos: twelve
// elements, one per second.
func DefaultSettings() Settings {
	return Settings{IntervalPeriod: time.Second, Delay: time.Second, RangeCount: 12, Workers: 3}
}

// ApplyDefaults fills zero fields from DefaultSettings.
func (s *Settings) ApplyDefaults() {
	d := DefaultSettings()
	if s.IntervalPeriod == 0 {
		s.IntervalPeriod = d.IntervalPeriod
	}
	if s.Delay == 0 {
		s.Delay = d.Delay
	}
	if s.RangeCount == 0 {
		s.RangeCount = d.RangeCount
	}
	if s.Workers == 0 {
		s.Workers = d.Workers
	}
}

// Validate checks the struct tags.
func (s *Settings) Validate() error {
	return validation.Validate(s)
}
