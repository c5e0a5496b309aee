package systems

import (
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/config"
)

// Flora places plants. A fertility field built from simplex noise makes some
// regions of the evolution field lusher than others.
type Flora struct {
	noise    opensimplex.Noise
	scale    float64
	minGap   float32
	attempts int
	chance   float64
	energy   float32
	width    float32
	height   float32
}

// NewFlora creates a plant spawner from cfg. The seed fixes the fertility field.
func NewFlora(cfg *config.Config, seed int64) *Flora {
	return &Flora{
		noise:    opensimplex.NewNormalized(seed),
		scale:    cfg.Plant.NoiseScale,
		minGap:   float32(cfg.Plant.MinGap),
		attempts: cfg.Plant.SpawnAttempts,
		chance:   cfg.Plant.SpawnChance,
		energy:   float32(cfg.Energy.PlantEnergy),
		width:    cfg.Derived.WorldW32,
		height:   cfg.Derived.WorldH32,
	}
}

// Energy returns the energy a freshly spawned plant holds.
func (fl *Flora) Energy() float32 {
	return fl.energy
}

// Fertility returns the fertility at a world position in [0, 1].
func (fl *Flora) Fertility(x, y float32) float64 {
	if fl.scale <= 0 {
		return 1
	}
	v := fl.noise.Eval2(float64(x)*fl.scale, float64(y)*fl.scale)
	return min(max(v, 0), 1)
}

// TrySpawn rolls the per-tick spawn chance and, on success, picks a position.
func (fl *Flora) TrySpawn(rng *rand.Rand) (components.Position, bool) {
	if rng.Float64() >= fl.chance {
		return components.Position{}, false
	}
	return fl.Place(rng)
}

// Place picks a plant position by rejection sampling against the fertility
// field. Positions closer than MinGap to the field border are never used.
func (fl *Flora) Place(rng *rand.Rand) (components.Position, bool) {
	w := fl.width - 2*fl.minGap
	h := fl.height - 2*fl.minGap
	if w <= 0 || h <= 0 {
		return components.Position{}, false
	}

	for range fl.attempts {
		x := fl.minGap + rng.Float32()*w
		y := fl.minGap + rng.Float32()*h
		if rng.Float64() < fl.Fertility(x, y) {
			return components.Position{X: x, Y: y}, true
		}
	}
	return components.Position{}, false
}
