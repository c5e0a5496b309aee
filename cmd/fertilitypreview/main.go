// Fertility preview tool - interactive view of where plants grow.
//
// Usage: go run ./cmd/fertilitypreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodies/components"
	"github.com/pthm-cable/bodies/config"
	"github.com/pthm-cable/bodies/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
	samplePlants = 400
)

// previewParams are the plant settings under edit.
type previewParams struct {
	NoiseScale float32
	MinGap     float32
	Seed       int64
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := previewParams{
		NoiseScale: float32(cfg.Plant.NoiseScale),
		MinGap:     float32(cfg.Plant.MinGap),
		Seed:       1,
	}
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Fertility Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	grid := make([]float32, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var plants []components.Position
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			cfg.Plant.NoiseScale = float64(params.NoiseScale)
			cfg.Plant.MinGap = float64(params.MinGap)
			flora := systems.NewFlora(cfg, params.Seed)
			sampleFertility(flora, grid, cfg.Derived.WorldW32, cfg.Derived.WorldH32)
			updateTexture(texture, grid)
			plants = samplePlacements(flora, params.Seed, samplePlants)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		sx := previewSize / cfg.Derived.WorldW32
		sy := previewSize / cfg.Derived.WorldH32
		for _, p := range plants {
			rl.DrawCircleV(rl.Vector2{X: 10 + p.X*sx, Y: 10 + p.Y*sy}, 2, rl.DarkGreen)
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		minVal, maxVal, avg := gridStats(grid)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg: %.3f", minVal, maxVal, avg), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Placed %d of %d sample plants", len(plants), samplePlants), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Plant Fertility", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if v, changed := slider(panelX, &panelY, "Noise scale (fertility frequency)", params.NoiseScale, 0, 0.02, "%.4f"); changed {
			params.NoiseScale = v
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Min gap (border margin)", params.MinGap, 0, 100, "%.0f"); changed {
			params.MinGap = v
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Seed", float32(params.Seed), 1, 99999, "%.0f"); changed {
			params.Seed = int64(v)
			needsRegen = true
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(1, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 55

		yamlText := fmt.Sprintf("plant:\n  noise_scale: %.4f\n  min_gap: %.0f", params.NoiseScale, params.MinGap)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yamlText, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yamlText)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider and advances y past it.
func slider(x float32, y *float32, label string, value, lo, hi float32, format string) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	got := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return got, got != value
}

// sampleFertility fills grid with the fertility at the centre of every cell.
func sampleFertility(flora *systems.Flora, grid []float32, worldW, worldH float32) {
	for y := range gridSize {
		wy := (float32(y) + 0.5) / gridSize * worldH
		for x := range gridSize {
			wx := (float32(x) + 0.5) / gridSize * worldW
			grid[y*gridSize+x] = float32(flora.Fertility(wx, wy))
		}
	}
}

// samplePlacements places n plants the way an evolution seeds them.
func samplePlacements(flora *systems.Flora, seed int64, n int) []components.Position {
	rng := rand.New(rand.NewSource(seed))
	plants := make([]components.Position, 0, n)
	for range n {
		if p, ok := flora.Place(rng); ok {
			plants = append(plants, p)
		}
	}
	return plants
}

func gridStats(grid []float32) (lo, hi, avg float32) {
	lo, hi = 1, 0
	var sum float32
	for _, v := range grid {
		sum += v
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, sum / float32(len(grid))
}

// updateTexture uploads the grid as a brown-to-green gradient.
func updateTexture(texture rl.Texture2D, grid []float32) {
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		pixels[i] = color.RGBA{
			R: uint8(120 - v*90),
			G: uint8(90 + v*130),
			B: uint8(50 - v*20),
			A: 255,
		}
	}
	rl.UpdateTexture(texture, pixels)
}
