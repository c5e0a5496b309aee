package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/config"
)

// ErrIncompleteBody is returned when an action is asked to run on a body
// that is missing one of its components.
var ErrIncompleteBody = errors.New("body is missing components")

// Body is the mutable view of one live body handed to an action.
// The pointers address the body's components in the population store.
type Body struct {
	Entity  ecs.Entity
	Pos     *components.Position
	Rot     *components.Rotation
	Energy  *components.Energy
	Traits  *components.Traits
	Lineage *components.Lineage
	Look    *components.Look
}

func (b Body) complete() bool {
	return b.Pos != nil && b.Rot != nil && b.Energy != nil && b.Traits != nil && b.Lineage != nil && b.Look != nil
}

// DeathCause explains why an action removed its body.
type DeathCause uint8

const (
	Alive DeathCause = iota
	Starved
	Divided
)

// String returns the display name for a DeathCause.
func (c DeathCause) String() string {
	switch c {
	case Alive:
		return "alive"
	case Starved:
		return "starved"
	case Divided:
		return "divided"
	}
	return "unknown"
}

// Meal records what an action ate.
type Meal uint8

const (
	MealNone Meal = iota
	MealPlant
	MealBody
)

// Outcome is what an action reports back to the engine.
// Eaten plants and bodies are recorded as claims on the Field.
type Outcome struct {
	Death    DeathCause
	Meal     Meal
	Children []Child
}

// Dead reports whether the body must be removed after this tick.
func (o Outcome) Dead() bool {
	return o.Death != Alive
}

// Model computes one body's behavior for one internal tick.
type Model interface {
	Act(b Body, f *Field, rng *rand.Rand) (Outcome, error)
}

// Behavior is the default action model: look for food, walk to it, eat it,
// pay for living, and divide once rich enough.
type Behavior struct {
	Energy    EnergyParams
	Deviation float32
	Reach     float32 // eating distance, two body radii
	Width     float32
	Height    float32
}

// NewBehavior creates the default action model from cfg.
func NewBehavior(cfg *config.Config) *Behavior {
	return &Behavior{
		Energy:    EnergyParamsFromConfig(cfg),
		Deviation: float32(cfg.Body.Deviation),
		Reach:     2 * cfg.Derived.Radius32,
		Width:     cfg.Derived.WorldW32,
		Height:    cfg.Derived.WorldH32,
	}
}

// Act runs one body for one tick.
func (bh *Behavior) Act(b Body, f *Field, rng *rand.Rand) (Outcome, error) {
	if !b.complete() {
		return Outcome{}, fmt.Errorf("acting on %v: %w", b.Entity, ErrIncompleteBody)
	}

	var out Outcome
	upkeep := bh.Energy.UpkeepCost(b.Energy.Value, *b.Traits)
	moved := bh.move(b, f, rng, &out)
	b.Energy.Value -= upkeep + bh.Energy.MovementCostFor(*b.Traits, moved)

	if b.Energy.Value <= 0 {
		b.Energy.Value = 0
		out.Death = Starved
		return out, nil
	}

	if b.Energy.Value > b.Traits.ProcreationThreshold {
		out.Children = Divide(b, bh.Deviation, bh.Width, bh.Height, rng)
		out.Death = Divided
	}
	return out, nil
}

// move walks the body one step and eats whatever it reaches.
// It returns the distance covered.
func (bh *Behavior) move(b Body, f *Field, rng *rand.Rand, out *Outcome) float32 {
	speed := b.Traits.Speed
	if speed <= 0 {
		return 0
	}

	if target, ok := bh.findFood(b, f); ok {
		b.Rot.Wandering = false
		dist := float32(math.Sqrt(float64(target.DistSq)))
		step := min(speed, dist)
		if dist > 0 {
			b.Pos.X = Wrap(b.Pos.X+target.DX/dist*step, bh.Width)
			b.Pos.Y = Wrap(b.Pos.Y+target.DY/dist*step, bh.Height)
			b.Rot.Heading = float32(math.Atan2(float64(target.DY), float64(target.DX)))
		}
		if dist-step <= bh.Reach && f.Claim(target.Entity) {
			bh.eat(b, target, out)
		}
		return step
	}

	if b.Traits.Passive {
		b.Rot.Wandering = false
		return 0
	}

	if !b.Rot.Wandering {
		b.Rot.Heading = rng.Float32() * 2 * math.Pi
		b.Rot.Wandering = true
	}
	sin, cos := math.Sincos(float64(b.Rot.Heading))
	b.Pos.X = Wrap(b.Pos.X+float32(cos)*speed, bh.Width)
	b.Pos.Y = Wrap(b.Pos.Y+float32(sin)*speed, bh.Height)
	return speed
}

func (bh *Behavior) findFood(b Body, f *Field) (Target, bool) {
	vision := b.Traits.VisionDistance
	var best Target
	found := false

	if b.Traits.Food.EatsPlants() {
		best, found = f.NearestPlant(b.Pos.X, b.Pos.Y, vision)
	}
	if b.Traits.Food.EatsBodies() {
		prey, ok := f.NearestPrey(b.Entity, b.Pos.X, b.Pos.Y, vision, b.Lineage.Species, b.Energy.Value)
		if ok && (!found || prey.DistSq < best.DistSq) {
			best, found = prey, true
		}
	}
	return best, found
}

func (bh *Behavior) eat(b Body, target Target, out *Outcome) {
	if target.Body {
		b.Energy.Value += bh.Energy.PreyGain(target.Energy)
		out.Meal = MealBody
		return
	}
	b.Energy.Value += target.Energy
	out.Meal = MealPlant
}
