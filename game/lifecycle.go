package game

import (
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/systems"
	"github.com/pthm-cable/bodies/ui"
)

// NewRun discards the current population and seeds the next evolution:
// Population.Species founders with their own traits, each with an equal
// share of Population.Initial bodies, and Plant.Initial plants. The
// predictor then places its guess.
func (e *Engine) NewRun() error {
	if e.running {
		return ErrRunInProgress
	}

	evolution := e.state.Evolution + 1
	e.state = EngineState{
		RunID:          uuid.NewString(),
		Evolution:      evolution,
		Seed:           e.seed,
		StartedAt:      e.now(),
		Result:         ResultRunning,
		Status:         StatusEvolution,
		OperatorGuess:  -1,
		PredictorGuess: -1,
		guessing:       true,
	}

	e.pop = NewPopulation()
	e.field.Reset()
	e.limiter.Reset()
	e.tipFor = ecs.Entity{}

	e.collector.StartRun(e.state.RunID, evolution)
	e.speciesStats.Reset()
	e.bookmarks.Reset()

	e.seedBodies()
	e.seedPlants()
	e.predict()

	slog.Info("evolution_start",
		"run_id", e.state.RunID,
		"evolution", evolution,
		"seed", e.seed,
		"bodies", e.pop.Len(),
		"plants", e.pop.PlantCount(),
		"predictor_guess", e.state.PredictorGuess,
	)
	e.hooks.Tips.ShowTip(ui.EvolutionNumberTip(evolution))
	return nil
}

func (e *Engine) seedBodies() {
	cfg := e.cfg
	total, species := cfg.Population.Initial, cfg.Population.Species
	dev := float32(cfg.Body.Deviation)
	energy := float32(cfg.Body.AverageEnergy)

	for s := range species {
		traits := systems.FounderTraits(cfg, e.rng)
		count := total / species
		if s < total%species {
			count++
		}
		for range count {
			pos := components.Position{
				X: e.rng.Float32() * cfg.Derived.WorldW32,
				Y: e.rng.Float32() * cfg.Derived.WorldH32,
			}
			e.pop.AddBody(
				pos,
				components.Rotation{Heading: e.rng.Float32() * 2 * math.Pi},
				components.Energy{Value: systems.Deviate(energy, dev, e.rng)},
				traits,
				components.Lineage{Species: uint16(s)},
				components.Look{Shape: components.ShapeCircle},
			)
		}
		e.speciesStats.Found(uint16(s), count)
	}
}

func (e *Engine) seedPlants() {
	for range e.cfg.Plant.Initial {
		if pos, ok := e.flora.Place(e.rng); ok {
			e.pop.AddPlant(pos, e.flora.Energy())
		}
	}
}
