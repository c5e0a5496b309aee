package main

import (
	"github.com/pthm-cable/bodies/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // config path, for logging
	Min     float64 // lower bound
	Max     float64 // upper bound
	Default float64
	apply   func(cfg *config.Config, v float64)
	get     func(cfg *config.Config) float64
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters: the energy
// economy and the plant supply.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "energy.mass_cost", Min: 0.0001, Max: 0.002, Default: 0.0004,
				apply: func(c *config.Config, v float64) { c.Energy.MassCost = v },
				get:   func(c *config.Config) float64 { return c.Energy.MassCost },
			},
			{
				Name: "energy.vision_cost", Min: 0.000005, Max: 0.0001, Default: 0.00002,
				apply: func(c *config.Config, v float64) { c.Energy.VisionCost = v },
				get:   func(c *config.Config) float64 { return c.Energy.VisionCost },
			},
			{
				Name: "energy.movement_cost", Min: 0.01, Max: 0.2, Default: 0.04,
				apply: func(c *config.Config, v float64) { c.Energy.MovementCost = v },
				get:   func(c *config.Config) float64 { return c.Energy.MovementCost },
			},
			{
				Name: "energy.plant_energy", Min: 50, Max: 400, Default: 180,
				apply: func(c *config.Config, v float64) { c.Energy.PlantEnergy = v },
				get:   func(c *config.Config) float64 { return c.Energy.PlantEnergy },
			},
			{
				Name: "energy.prey_efficiency", Min: 0.3, Max: 1.0, Default: 0.7,
				apply: func(c *config.Config, v float64) { c.Energy.PreyEfficiency = v },
				get:   func(c *config.Config) float64 { return c.Energy.PreyEfficiency },
			},
			{
				Name: "plant.spawn_chance", Min: 0.05, Max: 1.0, Default: 0.35,
				apply: func(c *config.Config, v float64) { c.Plant.SpawnChance = v },
				get:   func(c *config.Config) float64 { return c.Plant.SpawnChance },
			},
			{
				Name: "body.average_procreation_threshold", Min: 450, Max: 2000, Default: 900,
				apply: func(c *config.Config, v float64) { c.Body.AverageProcreationThreshold = v },
				get:   func(c *config.Config) float64 { return c.Body.AverageProcreationThreshold },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize maps raw values onto [0, 1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	n := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		n[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return n
}

// Denormalize maps [0, 1] values back to raw values.
func (pv *ParamVector) Denormalize(n []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + n[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp restricts every value to its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].apply(cfg, v)
	}
}

// ExtractFromConfig reads the current values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
