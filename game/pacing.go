package game

import (
	"runtime"
	"time"

	"github.com/pthm-cable/bodies/telemetry"
)

// FrameLimiter caps the frame rate in immediate mode. It sleeps only for
// the part of the frame interval that has not been used yet.
type FrameLimiter struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

// NewFrameLimiter creates a limiter for the given frame interval.
func NewFrameLimiter(interval time.Duration, now func() time.Time, sleep func(time.Duration)) *FrameLimiter {
	return &FrameLimiter{interval: interval, now: now, sleep: sleep}
}

// Wait blocks until one frame interval has passed since the previous Wait.
// A frame that already took longer than the interval does not wait, and the
// next frame is measured from now rather than catching up.
func (l *FrameLimiter) Wait() {
	now := l.now()
	if l.last.IsZero() || l.interval <= 0 {
		l.last = now
		return
	}
	target := l.last.Add(l.interval)
	if d := target.Sub(now); d > 0 {
		l.sleep(d)
		l.last = target
		return
	}
	l.last = now
}

// Reset forgets the previous frame.
func (l *FrameLimiter) Reset() {
	l.last = time.Time{}
}

// runBatch executes the internal ticks of one rendered frame and returns how
// many ran. With time-lapse off exactly one tick runs. Otherwise ticks run
// until the time-lapse budget, measured on the monotonic clock, is used up,
// the operator pauses, or the run ends. At least one tick always runs.
// Pacing.MaxBatchTicks, when set, also stops a batch; it is off by default.
// Every batch is reported to the perf collector.
func (e *Engine) runBatch() (int, error) {
	budget := e.controls.TimeLapse()
	if budget <= 0 {
		e.state.Mode = ModeImmediate
		if err := e.tick(); err != nil {
			return 0, err
		}
		e.perf.RecordBatch(telemetry.Batch{Ticks: 1, End: telemetry.EndImmediate})
		return 1, nil
	}

	e.state.Mode = ModeTimeLapse
	start := e.now()
	deadline := start.Add(budget)
	ticks := 0
	for {
		if err := e.tick(); err != nil {
			return ticks, err
		}
		ticks++
		end, done := e.batchEnd(ticks, deadline)
		if done {
			e.perf.RecordBatch(telemetry.Batch{Ticks: ticks, Wall: e.now().Sub(start), Budget: budget, End: end})
			return ticks, nil
		}
		runtime.Gosched()
	}
}

// batchEnd reports whether a time-lapse batch stops after ticks and why.
func (e *Engine) batchEnd(ticks int, deadline time.Time) (telemetry.BatchEnd, bool) {
	switch {
	case e.state.Result.Terminal():
		return telemetry.EndTerminal, true
	case e.controls.Paused():
		return telemetry.EndPaused, true
	case !e.now().Before(deadline):
		return telemetry.EndBudget, true
	}
	if limit := e.cfg.Pacing.MaxBatchTicks; limit > 0 && ticks >= limit {
		return telemetry.EndCapped, true
	}
	return 0, false
}
