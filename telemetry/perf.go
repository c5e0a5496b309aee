package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of an internal tick.
type Phase uint8

const (
	PhaseSnapshot Phase = iota
	PhaseActions
	PhaseFold
	PhasePlants
	PhaseTermination
	PhaseTelemetry
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseSnapshot:
		return "snapshot"
	case PhaseActions:
		return "actions"
	case PhaseFold:
		return "fold"
	case PhasePlants:
		return "plants"
	case PhaseTermination:
		return "termination"
	case PhaseTelemetry:
		return "telemetry"
	}
	return "unknown"
}

// BatchEnd records why a batch of internal ticks stopped.
type BatchEnd uint8

const (
	EndImmediate BatchEnd = iota // time-lapse off, one tick
	EndBudget                    // the time-lapse budget ran out
	EndPaused                    // the operator paused
	EndTerminal                  // the evolution ended
	EndCapped                    // pacing.max_batch_ticks was reached
)

// Batch describes the internal ticks run for one rendered frame.
type Batch struct {
	Ticks  int
	Wall   time.Duration // monotonic time the batch took
	Budget time.Duration // time-lapse budget, 0 when off
	End    BatchEnd
}

// Overrun is how far the batch ran past its budget. A batch cut short by
// the tick cap reports a negative overrun.
func (b Batch) Overrun() time.Duration {
	if b.Budget <= 0 {
		return 0
	}
	return b.Wall - b.Budget
}

// PerfCollector times ticks and pacing batches over one telemetry window.
// Flush returns the window's figures and starts the next window.
type PerfCollector struct {
	now func() time.Time

	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	phaseTotals [phaseCount]time.Duration
	tickUS      []float64

	batchTicks []float64
	overrunUS  []float64 // batches that ended on their budget
	ends       [EndCapped + 1]int

	lastFrame time.Time
	frameUS   []float64
}

// NewPerfCollector creates a collector reading the wall clock.
func NewPerfCollector() *PerfCollector {
	return &PerfCollector{now: time.Now}
}

// SetClock replaces the time source. Tests use it to get exact durations.
func (p *PerfCollector) SetClock(now func() time.Time) {
	p.now = now
}

// StartTick begins timing an internal tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndTick closes the last phase and records the tick.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.tickUS = append(p.tickUS, micros(now.Sub(p.tickStart)))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.phaseTotals[p.phase] += now.Sub(p.phaseStart)
	}
}

// RecordBatch records one rendered frame's batch of ticks.
func (p *PerfCollector) RecordBatch(b Batch) {
	p.batchTicks = append(p.batchTicks, float64(b.Ticks))
	if b.End == EndBudget {
		p.overrunUS = append(p.overrunUS, micros(b.Overrun()))
	}
	if int(b.End) < len(p.ends) {
		p.ends[b.End]++
	}
}

// RecordFrame marks a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frameUS = append(p.frameUS, micros(now.Sub(p.lastFrame)))
	}
	p.lastFrame = now
}

// PerfStats is one row of perf.csv.
type PerfStats struct {
	RunID     string `csv:"run_id"`
	Evolution int    `csv:"evolution"`
	WindowEnd int64  `csv:"window_end"`

	Ticks      int     `csv:"ticks"`
	TickMeanUS float64 `csv:"tick_mean_us"`
	TickP90US  float64 `csv:"tick_p90_us"`
	TickMaxUS  float64 `csv:"tick_max_us"`

	Batches        int     `csv:"batches"`
	BatchTicksMean float64 `csv:"batch_ticks_mean"`
	BatchTicksMax  float64 `csv:"batch_ticks_max"`
	OverrunMeanUS  float64 `csv:"overrun_mean_us"`
	OverrunMaxUS   float64 `csv:"overrun_max_us"`
	BudgetEnds     int     `csv:"budget_ends"`
	PausedEnds     int     `csv:"paused_ends"`
	CappedEnds     int     `csv:"capped_ends"` // batches stopped before their budget by the tick cap

	FPS float64 `csv:"fps"`

	SnapshotPct    float64 `csv:"snapshot_pct"`
	ActionsPct     float64 `csv:"actions_pct"`
	FoldPct        float64 `csv:"fold_pct"`
	PlantsPct      float64 `csv:"plants_pct"`
	TerminationPct float64 `csv:"termination_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// Flush summarizes the window ending at windowEnd and resets the collector.
// Frame timing carries over so the next window's first interval is counted.
func (p *PerfCollector) Flush(windowEnd int64) PerfStats {
	ticks := Summarize(p.tickUS)
	batches := Summarize(p.batchTicks)
	overrun := Summarize(p.overrunUS)

	s := PerfStats{
		WindowEnd:      windowEnd,
		Ticks:          len(p.tickUS),
		TickMeanUS:     ticks.Mean,
		TickP90US:      ticks.P90,
		TickMaxUS:      ticks.Max,
		Batches:        len(p.batchTicks),
		BatchTicksMean: batches.Mean,
		BatchTicksMax:  batches.Max,
		OverrunMeanUS:  overrun.Mean,
		OverrunMaxUS:   overrun.Max,
		BudgetEnds:     p.ends[EndBudget],
		PausedEnds:     p.ends[EndPaused],
		CappedEnds:     p.ends[EndCapped],
	}
	if frames := Summarize(p.frameUS); frames.Mean > 0 {
		s.FPS = 1e6 / frames.Mean
	}

	var total time.Duration
	for _, d := range p.phaseTotals {
		total += d
	}
	if total > 0 {
		pct := func(ph Phase) float64 { return float64(p.phaseTotals[ph]) / float64(total) * 100 }
		s.SnapshotPct = pct(PhaseSnapshot)
		s.ActionsPct = pct(PhaseActions)
		s.FoldPct = pct(PhaseFold)
		s.PlantsPct = pct(PhasePlants)
		s.TerminationPct = pct(PhaseTermination)
		s.TelemetryPct = pct(PhaseTelemetry)
	}

	p.phaseTotals = [phaseCount]time.Duration{}
	p.tickUS = p.tickUS[:0]
	p.batchTicks = p.batchTicks[:0]
	p.overrunUS = p.overrunUS[:0]
	p.ends = [EndCapped + 1]int{}
	p.frameUS = p.frameUS[:0]
	return s
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Float64("tick_mean_us", s.TickMeanUS),
		slog.Float64("tick_max_us", s.TickMaxUS),
		slog.Int("batches", s.Batches),
		slog.Float64("batch_ticks_mean", s.BatchTicksMean),
		slog.Float64("overrun_max_us", s.OverrunMaxUS),
		slog.Int("capped_ends", s.CappedEnds),
		slog.Float64("fps", s.FPS),
		slog.Float64("actions_pct", s.ActionsPct),
	)
}
