package ui

import (
	"fmt"
	"math"
)

// infoField is one line of the body info box.
type infoField struct {
	Label string
	Value func(b Body, speciesCount int) string
}

func rounded(v float32) string {
	return fmt.Sprintf("%d", int(math.Round(float64(v))))
}

var infoFields = []infoField{
	{"Energy", func(b Body, _ int) string { return rounded(b.Energy) }},
	{"Speed", func(b Body, _ int) string { return fmt.Sprintf("%.1f", b.Speed) }},
	{"Vision distance", func(b Body, _ int) string { return rounded(b.VisionDistance) }},
	{"Procreation threshold", func(b Body, _ int) string { return rounded(b.ProcreationThreshold) }},
	{"Food preference", func(b Body, _ int) string { return b.Food.String() }},
	{"Generation number", func(b Body, _ int) string { return fmt.Sprintf("%d", b.Generation) }},
	{"Amount of bodies with this species", func(_ Body, n int) string { return fmt.Sprintf("%d", n) }},
}

// InfoLines returns the info box text for b.
func InfoLines(b Body, bodies []Body) []string {
	n := SpeciesCount(bodies, b.Species)
	lines := make([]string, len(infoFields))
	for i, f := range infoFields {
		lines[i] = f.Label + ": " + f.Value(b, n)
	}
	return lines
}
