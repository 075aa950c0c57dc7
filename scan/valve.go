package scan

import "time"

// Valve adaptively thins a high-frequency event stream down to a roughly
// constant wall-clock cadence. Mask is ANDed against an event counter by the
// caller (see Counter.tick); Tick widens the mask (prints less often) when
// events are arriving faster than threshold, and narrows it (prints more
// often) when they've slowed down, so the printed rate tracks threshold
// regardless of how fast the underlying scan runs.
type Valve struct {
	Mask      uint64
	last      time.Time
	threshold float64
}

// NewValve returns a Valve that aims to fire about once every threshold
// seconds.
func NewValve(threshold float64) *Valve {
	return &Valve{Mask: 1, last: time.Now(), threshold: threshold}
}

// Tick adjusts Mask based on the time elapsed since the previous Tick.
func (v *Valve) Tick() {
	now := time.Now()
	dt := now.Sub(v.last).Seconds()
	switch {
	case dt > 2*v.threshold:
		v.Mask >>= 1
	case dt < v.threshold/2:
		v.Mask = (v.Mask << 1) | 1
	}
	v.last = now
}
