package game

import (
	"log/slog"

	"github.com/pthm-cable/bodies/telemetry"
	"github.com/pthm-cable/bodies/ui"
)

// flushTelemetry closes the stats window when it is due.
func (e *Engine) flushTelemetry() {
	if !e.collector.ShouldFlush(e.state.Actions) {
		return
	}

	stats := e.collector.Flush(e.state.Actions, e.pop.Sample(e.counts))
	for _, sp := range e.speciesStats.Observe(e.state.Actions, e.counts) {
		slog.Info("species_extinct", "run_id", e.state.RunID, "species", sp, "tick", e.state.Actions)
	}

	if e.statsCallback != nil {
		e.statsCallback(stats)
	}
	if e.logStats {
		slog.Info("telemetry", "stats", stats)
	}

	perf := e.perf.Flush(e.state.Actions)
	perf.RunID = e.state.RunID
	perf.Evolution = e.state.Evolution
	if e.logStats {
		slog.Info("perf", "perf", perf)
	}

	if err := e.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := e.output.WritePerf(perf); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, b := range e.bookmarks.Check(stats) {
		b.LogBookmark()
		if err := e.output.WriteBookmark(b); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// finishRun settles a terminal result: the status, the outcome tip, and the
// run record.
func (e *Engine) finishRun() {
	res := e.state.Result
	e.state.Status = statusFor(res)

	rec := telemetry.NewRunRecord(e.state.RunID, e.state.Evolution, e.state.Seed)
	rec.Result = res.String()
	rec.Status = e.state.Status.String()
	rec.Ticks = e.state.Actions
	rec.SetDuration(e.now().Sub(e.state.StartedAt))
	rec.OperatorGuess = e.state.OperatorGuess
	rec.PredictorGuess = e.state.PredictorGuess
	rec.RenderErrors = e.state.RenderErrors

	sample := e.pop.Sample(e.counts)
	rec.MaxGeneration = sample.MaxGeneration

	if res == ResultMonoculture {
		winner, _ := e.pop.AnySpecies()
		rec.Winner = int(winner)
		rec.WinnerBodies = e.pop.Len()
		rec.OperatorRight = rec.OperatorGuess == rec.Winner
		rec.PredictorRight = rec.PredictorGuess == rec.Winner
		e.hooks.Tips.ShowTip(ui.OutcomeTip(rec.OperatorGuess >= 0, rec.OperatorRight, rec.PredictorRight))
	} else {
		e.hooks.Tips.ShowTip(ui.TipExtinction)
	}

	slog.Info("evolution_end", "run", rec)
	if err := e.output.WriteRun(rec); err != nil {
		slog.Error("failed to write run", "error", err)
	}
}
