package telemetry

import (
	"log/slog"
	"time"
)

// RunRecord summarizes one finished evolution.
type RunRecord struct {
	RunID       string  `csv:"run_id"`
	Evolution   int     `csv:"evolution"`
	Seed        int64   `csv:"seed"`
	Result      string  `csv:"result"`
	Status      string  `csv:"status"`
	Ticks       int64   `csv:"ticks"`
	DurationSec float64 `csv:"duration_sec"`

	Winner        int    `csv:"winner"` // winning species, -1 when none survived
	WinnerBodies  int    `csv:"winner_bodies"`
	MaxGeneration uint32 `csv:"max_generation"`

	OperatorGuess  int  `csv:"operator_guess"` // -1 when the operator did not guess
	PredictorGuess int  `csv:"predictor_guess"`
	OperatorRight  bool `csv:"operator_right"`
	PredictorRight bool `csv:"predictor_right"`

	RenderErrors int `csv:"render_errors"`
}

// NewRunRecord creates a record with no winner and no guesses.
func NewRunRecord(runID string, evolution int, seed int64) RunRecord {
	return RunRecord{
		RunID:          runID,
		Evolution:      evolution,
		Seed:           seed,
		Winner:         -1,
		OperatorGuess:  -1,
		PredictorGuess: -1,
	}
}

// SetDuration records the wall-clock length of the evolution.
func (r *RunRecord) SetDuration(d time.Duration) {
	r.DurationSec = d.Seconds()
}

// LogValue implements slog.LogValuer for structured logging.
func (r RunRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", r.RunID),
		slog.Int("evolution", r.Evolution),
		slog.String("result", r.Result),
		slog.String("status", r.Status),
		slog.Int64("ticks", r.Ticks),
		slog.Float64("duration_sec", r.DurationSec),
		slog.Int("winner", r.Winner),
		slog.Int("winner_bodies", r.WinnerBodies),
		slog.Int("operator_guess", r.OperatorGuess),
		slog.Int("predictor_guess", r.PredictorGuess),
		slog.Bool("operator_right", r.OperatorRight),
		slog.Bool("predictor_right", r.PredictorRight),
		slog.Int("render_errors", r.RenderErrors),
	)
}
