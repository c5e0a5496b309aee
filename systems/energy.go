package systems

import (
	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/config"
)

// EnergyParams holds the energy economics of one evolution.
type EnergyParams struct {
	MassCost       float32
	VisionCost     float32
	MovementCost   float32
	PlantEnergy    float32
	PreyEfficiency float32
}

// EnergyParamsFromConfig reads the energy section of cfg.
func EnergyParamsFromConfig(cfg *config.Config) EnergyParams {
	return EnergyParams{
		MassCost:       float32(cfg.Energy.MassCost),
		VisionCost:     float32(cfg.Energy.VisionCost),
		MovementCost:   float32(cfg.Energy.MovementCost),
		PlantEnergy:    float32(cfg.Energy.PlantEnergy),
		PreyEfficiency: float32(cfg.Energy.PreyEfficiency),
	}
}

// UpkeepCost is what a body pays every tick just for being alive.
// Heavier bodies (more stored energy) and farther sight cost more.
func (p EnergyParams) UpkeepCost(energy float32, t components.Traits) float32 {
	return p.MassCost*energy + p.VisionCost*t.VisionDistance*t.VisionDistance
}

// MovementCostFor is what a body pays for a tick in which it moved.
// Partial steps pay in proportion to the distance covered.
func (p EnergyParams) MovementCostFor(t components.Traits, distance float32) float32 {
	if t.Speed <= 0 || distance <= 0 {
		return 0
	}
	frac := distance / t.Speed
	if frac > 1 {
		frac = 1
	}
	return p.MovementCost * t.Speed * t.Speed * frac
}

// PreyGain is the energy a predator takes from a victim.
func (p EnergyParams) PreyGain(victimEnergy float32) float32 {
	if victimEnergy <= 0 {
		return 0
	}
	return victimEnergy * p.PreyEfficiency
}
