package game

import (
	"time"

	"github.com/pthm-cable/bodies/ui"
)

// Mode is the pacing mode of the last batch.
type Mode uint8

const (
	ModeImmediate Mode = iota // one internal tick per frame
	ModeTimeLapse             // as many ticks as fit in the time-lapse duration
)

// String returns the display name for a Mode.
func (m Mode) String() string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeTimeLapse:
		return "time-lapse"
	}
	return "unknown"
}

// Result is the outcome tag of a run.
type Result uint8

const (
	ResultRunning Result = iota
	ResultExtinction
	ResultMonoculture
	ResultPaused
)

// String returns the display name for a Result.
func (r Result) String() string {
	switch r {
	case ResultRunning:
		return "running"
	case ResultExtinction:
		return "extinction"
	case ResultMonoculture:
		return "monoculture"
	case ResultPaused:
		return "paused"
	}
	return "unknown"
}

// Terminal reports whether the run is over.
func (r Result) Terminal() bool {
	return r == ResultExtinction || r == ResultMonoculture
}

// Status is the evolution status shown to the operator.
type Status uint8

const (
	StatusEvolution Status = iota
	StatusOnPause
	StatusWon
	StatusDraw
)

// String returns the display name for a Status.
func (s Status) String() string {
	switch s {
	case StatusEvolution:
		return "EVOLUTION"
	case StatusOnPause:
		return "ON_PAUSE"
	case StatusWon:
		return "WON"
	case StatusDraw:
		return "DRAW"
	}
	return "UNKNOWN"
}

// statusFor maps a terminal result to its status.
func statusFor(r Result) Status {
	switch r {
	case ResultExtinction:
		return StatusDraw
	case ResultMonoculture:
		return StatusWon
	}
	return StatusEvolution
}

// EngineState is the run control state. It is created by NewRun,
// mutated by Step and PollPause, and replaced when the next run starts.
type EngineState struct {
	RunID     string
	Evolution int // 1 for the first run
	Seed      int64
	StartedAt time.Time

	Mode    Mode
	Actions int64 // internal ticks executed in this run
	Result  Result
	Status  Status

	Hover ui.HoverState

	// Guesses hold species ids; -1 means no guess.
	OperatorGuess  int
	PredictorGuess int

	RenderErrors int

	// guessing is the last state signaled to the guess gate.
	guessing bool
}

// Paused reports whether the engine is waiting in ON_PAUSE.
func (s *EngineState) Paused() bool {
	return s.Status == StatusOnPause
}
