package game

import (
	"sync/atomic"
	"time"
)

// Controls are the operator knobs read by the engine on every tick.
// Implementations must be safe to write from another goroutine.
type Controls interface {
	Paused() bool
	TimeLapse() time.Duration
}

// Knobs is the default Controls. Every field is an atomic, so a UI callback
// or a signal handler may flip them while a run is in progress.
type Knobs struct {
	paused    atomic.Bool
	timeLapse atomic.Int64
}

// NewKnobs creates knobs with the given initial values.
func NewKnobs(timeLapse time.Duration, paused bool) *Knobs {
	k := &Knobs{}
	k.SetTimeLapse(timeLapse)
	k.SetPaused(paused)
	return k
}

// Paused reports whether the operator asked for a pause.
func (k *Knobs) Paused() bool {
	return k.paused.Load()
}

// SetPaused sets the pause flag.
func (k *Knobs) SetPaused(p bool) {
	k.paused.Store(p)
}

// TogglePause flips the pause flag and returns the new value.
func (k *Knobs) TogglePause() bool {
	for {
		old := k.paused.Load()
		if k.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// TimeLapse returns the wall-clock budget of one batch. Zero means off.
func (k *Knobs) TimeLapse() time.Duration {
	return time.Duration(k.timeLapse.Load())
}

// SetTimeLapse sets the batch budget. Negative values turn time-lapse off.
func (k *Knobs) SetTimeLapse(d time.Duration) {
	if d < 0 {
		d = 0
	}
	k.timeLapse.Store(int64(d))
}
