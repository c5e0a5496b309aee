package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// goldenAngle spreads consecutive species ids around the color wheel.
const goldenAngle = 137.50776

// speciesHue returns the hue in degrees for a species.
func speciesHue(species uint16) float32 {
	return float32(math.Mod(float64(species)*goldenAngle, 360))
}

// speciesColor returns the body color of a species, faded by alpha in [0, 1].
func speciesColor(species uint16, alpha float32) rl.Color {
	c := hsv(speciesHue(species), 0.65, 0.95)
	c.A = uint8(255 * min(max(alpha, 0), 1))
	return c
}

// hsv converts a hue in degrees plus saturation and value in [0, 1] to RGB.
func hsv(h, s, v float32) rl.Color {
	c := v * s
	hp := float64(h) / 60
	x := c * float32(1-math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float32
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := v - c
	return rl.Color{R: uint8(255 * (r + m)), G: uint8(255 * (g + m)), B: uint8(255 * (b + m)), A: 255}
}
