package game

import (
	"testing"

	"github.com/pthm-cable/bodies/components"
)

type fakeCensus []uint16

func (c fakeCensus) Len() int { return len(c) }

func (c fakeCensus) DistinctSpecies(limit int) int {
	seen := make(map[uint16]bool)
	for _, sp := range c {
		seen[sp] = true
		if limit > 0 && len(seen) >= limit {
			break
		}
	}
	return len(seen)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		census fakeCensus
		want   Result
	}{
		{"empty", nil, ResultExtinction},
		{"single body", fakeCensus{3}, ResultMonoculture},
		{"one species", fakeCensus{2, 2, 2}, ResultMonoculture},
		{"two species", fakeCensus{0, 1}, ResultRunning},
		{"five bodies three species", fakeCensus{0, 1, 1, 2, 2}, ResultRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.census); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectPopulation(t *testing.T) {
	pop := NewPopulation()
	if got := Detect(pop); got != ResultExtinction {
		t.Errorf("empty population: got %v, want %v", got, ResultExtinction)
	}

	add := func(sp uint16) {
		pop.AddBody(components.Position{}, components.Rotation{}, components.Energy{Value: 1},
			components.Traits{}, components.Lineage{Species: sp}, components.Look{})
	}
	add(4)
	if got := Detect(pop); got != ResultMonoculture {
		t.Errorf("one body: got %v, want %v", got, ResultMonoculture)
	}
	add(5)
	if got := Detect(pop); got != ResultRunning {
		t.Errorf("two species: got %v, want %v", got, ResultRunning)
	}
}
