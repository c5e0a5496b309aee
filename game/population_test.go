package game

import (
	"testing"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/systems"
)

func TestPopulationCrosses(t *testing.T) {
	pop := NewPopulation()
	pop.AddCross(components.Position{X: 1, Y: 2}, 3, 100)
	pop.AddCross(components.Position{X: 4, Y: 5}, 6, 200)

	crosses := pop.AppendCrosses(nil, 150, 100)
	if len(crosses) != 2 {
		t.Fatalf("crosses: got %d, want 2", len(crosses))
	}
	for _, c := range crosses {
		var want float32
		switch c.Species {
		case 3:
			want = 0.5
		case 6:
			want = 0
		}
		if c.Fade < want-1e-6 || c.Fade > want+1e-6 {
			t.Errorf("species %d fade: got %v, want %v", c.Species, c.Fade, want)
		}
	}

	if got := pop.ExpireCrosses(150); got != 1 {
		t.Errorf("expired: got %d, want 1", got)
	}
	if got := len(pop.AppendCrosses(nil, 0, 0)); got != 1 {
		t.Errorf("remaining: got %d, want 1", got)
	}
}

func TestPopulationCounts(t *testing.T) {
	pop := NewPopulation()
	for _, sp := range []uint16{0, 0, 1, 2} {
		pop.AddBody(components.Position{}, components.Rotation{}, components.Energy{Value: float32(sp + 1)},
			components.Traits{}, components.Lineage{Species: sp}, components.Look{})
	}
	plant := pop.AddPlant(components.Position{}, 10)

	if got := pop.DistinctSpecies(0); got != 3 {
		t.Errorf("distinct species: got %d, want 3", got)
	}
	if got := pop.DistinctSpecies(2); got != 2 {
		t.Errorf("distinct species limited: got %d, want 2", got)
	}

	counts := make(map[uint16]int)
	pop.SpeciesCounts(counts)
	if counts[0] != 2 || counts[1] != 1 || counts[2] != 1 {
		t.Errorf("counts: got %v, want map[0:2 1:1 2:1]", counts)
	}

	totals := make(map[uint16]float64)
	pop.EnergyBySpecies(totals)
	if totals[0] != 2 || totals[2] != 3 {
		t.Errorf("energy totals: got %v, want 2 for species 0 and 3 for species 2", totals)
	}

	if !pop.IsPlant(plant) || pop.IsBody(plant) {
		t.Error("plant classified as body")
	}
	pop.RemovePlant(plant)
	if pop.PlantCount() != 0 || pop.IsPlant(plant) {
		t.Errorf("plants after removal: got %d, want 0", pop.PlantCount())
	}
}

func TestPopulationChildKeepsLook(t *testing.T) {
	pop := NewPopulation()
	e := pop.AddChild(systems.Child{
		Lineage: components.Lineage{Species: 7, Generation: 2},
		Look:    components.Look{Shape: components.ShapeRhombus},
	}, 1.5)

	if got := pop.Look(e).Shape; got != components.ShapeRhombus {
		t.Errorf("shape: got %v, want %v", got, components.ShapeRhombus)
	}
	lin := pop.Lineage(e)
	if lin.Species != 7 || lin.Generation != 2 || lin.ID == 0 {
		t.Errorf("lineage: got %+v, want species 7 generation 2 with an id", *lin)
	}
}

func TestCrossFadeStaysInRange(t *testing.T) {
	tests := []struct {
		name   string
		bornAt int64
		now    int64
		want   float32
	}{
		{"born later than now", 500, 100, 0},
		{"fresh", 100, 100, 0},
		{"halfway", 100, 150, 0.5},
		{"past its lifespan", 100, 900, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := NewPopulation()
			pop.AddCross(components.Position{}, 1, tt.bornAt)
			crosses := pop.AppendCrosses(nil, tt.now, 100)
			if len(crosses) != 1 {
				t.Fatalf("crosses: got %d, want 1", len(crosses))
			}
			if got := crosses[0].Fade; got != tt.want {
				t.Errorf("fade: got %v, want %v", got, tt.want)
			}
		})
	}
}
