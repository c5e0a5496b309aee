// Package renderer draws the evolution field with raylib and runs the
// operator controls with raygui.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds the colors and metrics of the overlay panels.
type Theme struct {
	Background  rl.Color
	PanelBg     rl.Color
	PanelBorder rl.Color
	Header      rl.Color
	Text        rl.Color
	Tip         rl.Color
	Plant       rl.Color
	Highlight   rl.Color

	Padding    int32
	LineHeight int32
	FontSize   int32
	HeaderSize int32
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  rl.Color{R: 12, G: 16, B: 20, A: 255},
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:      rl.Yellow,
		Text:        rl.LightGray,
		Tip:         rl.Color{R: 230, G: 230, B: 200, A: 255},
		Plant:       rl.Color{R: 90, G: 170, B: 80, A: 255},
		Highlight:   rl.White,
		Padding:     10,
		LineHeight:  16,
		FontSize:    12,
		HeaderSize:  14,
	}
}

// drawPanel draws a panel background with border.
func (t Theme) drawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, t.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, t.PanelBorder)
}

// drawLines draws a panel sized to fit lines and returns its height.
func (t Theme) drawLines(x, y int32, header string, lines []string) int32 {
	width := rl.MeasureText(header, t.HeaderSize)
	for _, line := range lines {
		width = max(width, rl.MeasureText(line, t.FontSize))
	}
	width += 2 * t.Padding
	height := int32(len(lines)+1)*t.LineHeight + 2*t.Padding

	t.drawPanel(x, y, width, height)
	ty := y + t.Padding
	rl.DrawText(header, x+t.Padding, ty, t.HeaderSize, t.Header)
	for _, line := range lines {
		ty += t.LineHeight
		rl.DrawText(line, x+t.Padding, ty, t.FontSize, t.Text)
	}
	return height
}
