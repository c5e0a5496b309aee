package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodies/config"
	"github.com/pthm-cable/bodies/game"
	"github.com/pthm-cable/bodies/renderer"
	"github.com/pthm-cable/bodies/telemetry"
)

// outcomeHold is how long the final frame of an evolution stays on screen.
const outcomeHold = 5 * time.Second

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	runs := flag.Int("runs", 0, "Stop after N evolutions (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	timeLapse := flag.Float64("time-lapse", -1, "Seconds of ticks per frame (-1 = use config, headless defaults to 1)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	dir := *outputDir
	if dir == "" {
		dir = cfg.Telemetry.OutputDir
	}
	output, err := telemetry.NewOutputManager(dir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	lapse := cfg.Derived.TimeLapse
	switch {
	case *timeLapse >= 0:
		lapse = time.Duration(*timeLapse * float64(time.Second))
	case *headless:
		lapse = time.Second
	}
	knobs := game.NewKnobs(lapse, cfg.Pause.StartPaused && !*headless)

	opts := game.Options{
		Config:   cfg,
		Seed:     rngSeed,
		Controls: knobs,
		Output:   output,
		LogStats: *logStats,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting",
		"seed", rngSeed,
		"headless", *headless,
		"runs", *runs,
		"time_lapse", lapse,
		"output_dir", output.Dir(),
	)

	if *headless {
		err = runHeadless(ctx, game.New(opts), *runs)
	} else {
		err = runGraphical(ctx, cfg, opts, knobs, *runs)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("evolution failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless runs evolutions back to back without a window.
func runHeadless(ctx context.Context, engine *game.Engine, runs int) error {
	for n := 0; runs == 0 || n < runs; n++ {
		if err := engine.NewRun(); err != nil {
			return err
		}
		if _, err := engine.RunEvolution(ctx); err != nil {
			return err
		}
	}
	return nil
}

// runGraphical opens the window and runs evolutions until it is closed.
// The "New evolution" control aborts the current run and starts the next.
func runGraphical(ctx context.Context, cfg *config.Config, opts game.Options, knobs *game.Knobs, runs int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Bodies")
	defer rl.CloseWindow()
	rl.SetExitKey(0)

	view := renderer.New(cfg, knobs)
	opts.Hooks = game.Hooks{Renderer: view, Tips: view, Gate: view, Pause: view}
	engine := game.New(opts)

	for n := 0; runs == 0 || n < runs; n++ {
		if err := engine.NewRun(); err != nil {
			return err
		}
		view.SetGuessing(true)
		knobs.SetPaused(cfg.Pause.StartPaused)

		runCtx, cancel := context.WithCancel(ctx)
		view.SetRunCancel(cancel)
		res, err := engine.RunEvolution(runCtx)
		cancel()

		switch {
		case view.Quit() || ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, context.Canceled):
			slog.Info("evolution_abandoned", "run_id", engine.State().RunID)
			continue
		case err != nil:
			return err
		}

		if res.Terminal() {
			if err := view.Linger(ctx, outcomeHold); err != nil {
				return err
			}
		}
	}
	return nil
}
