package game

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/systems"
	"github.com/pthm-cable/bodies/telemetry"
)

// pendingDeath is a body that removed itself during the action pass.
type pendingDeath struct {
	entity  ecs.Entity
	pos     components.Position
	species uint16
	cause   systems.DeathCause
}

// pendingChildren are bodies requested by a parent during the action pass.
type pendingChildren struct {
	parent   ecs.Entity
	children []systems.Child
}

// tick runs one internal tick: every body alive at tick start acts once on
// the tick-start perception snapshot, then deaths and births are applied,
// a plant may spawn, and the termination detector classifies the result.
func (e *Engine) tick() error {
	e.perf.StartTick()
	defer e.perf.EndTick()

	e.perf.StartPhase(telemetry.PhaseSnapshot)
	e.field.Reset()
	e.order = e.pop.Snapshot(e.field, e.order[:0])
	e.pending = e.pending[:0]
	e.children = e.children[:0]

	e.perf.StartPhase(telemetry.PhaseActions)
	if err := e.act(); err != nil {
		return err
	}
	e.state.Actions++

	e.perf.StartPhase(telemetry.PhaseFold)
	e.fold()

	e.perf.StartPhase(telemetry.PhasePlants)
	e.growPlants()
	e.expireCrosses()

	e.perf.StartPhase(telemetry.PhaseTermination)
	e.state.Result = Detect(e.pop)

	e.perf.StartPhase(telemetry.PhaseTelemetry)
	e.flushTelemetry()
	return nil
}

// act runs the action model once per body in the snapshot. Bodies eaten
// earlier in the pass are skipped.
func (e *Engine) act() error {
	for _, entity := range e.order {
		if e.field.Claimed(entity) {
			continue
		}

		b := e.pop.Body(entity)
		out, err := e.model.Act(b, e.field, e.rng)
		if err != nil {
			return fmt.Errorf("evolution %d, tick %d: %w", e.state.Evolution, e.state.Actions, err)
		}

		if b.Energy.Value < 0 {
			b.Energy.Value = 0
			if !out.Dead() {
				out.Death = systems.Starved
			}
		}

		switch out.Meal {
		case systems.MealPlant:
			e.collector.RecordPlantEaten()
		case systems.MealBody:
			e.collector.RecordEaten()
		}

		if out.Dead() {
			e.pending = append(e.pending, pendingDeath{
				entity:  entity,
				pos:     *b.Pos,
				species: b.Lineage.Species,
				cause:   out.Death,
			})
		}
		if len(out.Children) > 0 {
			e.children = append(e.children, pendingChildren{parent: entity, children: out.Children})
		}
	}
	return nil
}

// fold applies the structural changes collected during the action pass.
func (e *Engine) fold() {
	clear(e.removed)
	bornAt := e.elapsed()

	for _, entity := range e.field.Claims() {
		switch {
		case e.pop.IsPlant(entity):
			e.pop.RemovePlant(entity)
		case e.pop.IsBody(entity):
			b := e.pop.Body(entity)
			pos, species := *b.Pos, b.Lineage.Species
			e.pop.RemoveBody(entity)
			e.pop.AddCross(pos, species, bornAt)
			e.removed[entity] = struct{}{}
		}
	}

	for _, d := range e.pending {
		if _, gone := e.removed[d.entity]; gone {
			continue
		}
		e.pop.RemoveBody(d.entity)
		e.removed[d.entity] = struct{}{}
		e.collector.RecordDeath(d.cause)
		if d.cause == systems.Starved {
			e.pop.AddCross(d.pos, d.species, bornAt)
		}
	}

	for _, group := range e.children {
		// A parent eaten after it acted leaves nothing behind.
		if e.field.Claimed(group.parent) {
			continue
		}
		for _, c := range group.children {
			e.pop.AddChild(c, e.rng.Float32()*2*math.Pi)
		}
		e.collector.RecordBirths(len(group.children))
	}
}

func (e *Engine) growPlants() {
	pos, ok := e.flora.TrySpawn(e.rng)
	if !ok {
		return
	}
	e.pop.AddPlant(pos, e.flora.Energy())
	e.collector.RecordPlantSpawned()
}

func (e *Engine) expireCrosses() {
	if e.cfg.Derived.CrossLifespan <= 0 {
		return
	}
	e.pop.ExpireCrosses(e.elapsed() - int64(e.cfg.Derived.CrossLifespan))
}
