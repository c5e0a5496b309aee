package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/bodies/components"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

// ---------- UpkeepCost ----------

func TestUpkeepCost(t *testing.T) {
	p := EnergyParams{MassCost: 0.001, VisionCost: 0.0001}

	tests := []struct {
		name   string
		energy float32
		vision float32
		want   float32
	}{
		{"blind and empty", 0, 0, 0},
		{"mass only", 500, 0, 0.5},
		{"vision only", 0, 100, 1},
		{"both", 500, 100, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.UpkeepCost(tt.energy, components.Traits{VisionDistance: tt.vision})
			if !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------- MovementCostFor ----------

func TestMovementCostFor(t *testing.T) {
	p := EnergyParams{MovementCost: 0.1}

	tests := []struct {
		name     string
		speed    float32
		distance float32
		want     float32
	}{
		{"full step", 2, 2, 0.4},
		{"half step", 2, 1, 0.2},
		{"overshoot capped", 2, 5, 0.4},
		{"stood still", 2, 0, 0},
		{"cannot move", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.MovementCostFor(components.Traits{Speed: tt.speed}, tt.distance)
			if !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------- PreyGain ----------

func TestPreyGain(t *testing.T) {
	p := EnergyParams{PreyEfficiency: 0.5}

	if got := p.PreyGain(300); !approx(got, 150) {
		t.Errorf("PreyGain(300): got %v, want 150", got)
	}
	if got := p.PreyGain(-10); got != 0 {
		t.Errorf("PreyGain(-10): got %v, want 0", got)
	}
}
