package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/config"
)

// childSpawnOffset is how far apart the two halves of a divided body land.
const childSpawnOffset = 4.0

// Child describes a body to add once the current tick completes.
// Lineage.ID is assigned by the population store.
type Child struct {
	Pos     components.Position
	Energy  components.Energy
	Traits  components.Traits
	Lineage components.Lineage
	Look    components.Look
}

// Deviate returns v moved by a uniform relative amount in [-dev, dev].
func Deviate(v, dev float32, rng *rand.Rand) float32 {
	if dev <= 0 {
		return v
	}
	return v * (1 + (rng.Float32()*2-1)*dev)
}

// FounderTraits draws the traits of a new species around the configured averages.
func FounderTraits(cfg *config.Config, rng *rand.Rand) components.Traits {
	dev := float32(cfg.Body.Deviation)

	food := components.FoodPlants
	switch r := rng.Float64(); {
	case r < cfg.Population.CarnivoreChance:
		food = components.FoodBodies
	case r < cfg.Population.CarnivoreChance+cfg.Population.OmnivoreChance:
		food = components.FoodAnything
	}

	return components.Traits{
		Speed:                Deviate(float32(cfg.Body.AverageSpeed), dev, rng),
		VisionDistance:       Deviate(float32(cfg.Body.AverageVisionDistance), dev, rng),
		ProcreationThreshold: Deviate(float32(cfg.Body.AverageProcreationThreshold), dev, rng),
		Food:                 food,
		Passive:              rng.Float64() < cfg.Population.PassiveChance,
	}
}

// Inherit returns a child's traits. Numeric traits drift around the parent's;
// food preference and passivity are kept.
func Inherit(parent components.Traits, dev float32, rng *rand.Rand) components.Traits {
	return components.Traits{
		Speed:                Deviate(parent.Speed, dev, rng),
		VisionDistance:       Deviate(parent.VisionDistance, dev, rng),
		ProcreationThreshold: Deviate(parent.ProcreationThreshold, dev, rng),
		Food:                 parent.Food,
		Passive:              parent.Passive,
	}
}

// Divide splits a body into two children that share its energy equally.
// Children keep the parent's species and shape and are one generation deeper.
func Divide(b Body, dev, width, height float32, rng *rand.Rand) []Child {
	half := b.Energy.Value / 2
	angle := rng.Float64() * 2 * math.Pi
	ox := float32(math.Cos(angle)) * childSpawnOffset
	oy := float32(math.Sin(angle)) * childSpawnOffset

	children := make([]Child, 2)
	for i, sign := range [2]float32{1, -1} {
		children[i] = Child{
			Pos: components.Position{
				X: Wrap(b.Pos.X+sign*ox, width),
				Y: Wrap(b.Pos.Y+sign*oy, height),
			},
			Energy: components.Energy{Value: half},
			Traits: Inherit(*b.Traits, dev, rng),
			Lineage: components.Lineage{
				Species:    b.Lineage.Species,
				Generation: b.Lineage.Generation + 1,
			},
			Look: *b.Look,
		}
	}
	return children
}
