package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Derived.WorldW32 != float32(cfg.Screen.Width) || cfg.Derived.WorldH32 != float32(cfg.Screen.Height) {
		t.Errorf("world size: got %vx%v, want screen size %dx%d",
			cfg.Derived.WorldW32, cfg.Derived.WorldH32, cfg.Screen.Width, cfg.Screen.Height)
	}
	if want := time.Second / time.Duration(cfg.Screen.TargetFPS); cfg.Derived.FrameInterval != want {
		t.Errorf("frame interval: got %v, want %v", cfg.Derived.FrameInterval, want)
	}
	if cfg.Derived.HoverDelay != 300*time.Millisecond {
		t.Errorf("hover delay: got %v, want 300ms", cfg.Derived.HoverDelay)
	}
	if cfg.Derived.TimeLapse != 0 {
		t.Errorf("time-lapse: got %v, want 0", cfg.Derived.TimeLapse)
	}
	if cfg.Pacing.MaxBatchTicks != 0 {
		t.Errorf("max batch ticks: got %d, want 0 (off)", cfg.Pacing.MaxBatchTicks)
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "world:\n  width: 3000\npacing:\n  time_lapse: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.WorldW32 != 3000 {
		t.Errorf("world width: got %v, want 3000", cfg.Derived.WorldW32)
	}
	if cfg.Derived.WorldH32 != float32(cfg.Screen.Height) {
		t.Errorf("world height: got %v, want %d", cfg.Derived.WorldH32, cfg.Screen.Height)
	}
	if cfg.Derived.TimeLapse != 500*time.Millisecond {
		t.Errorf("time-lapse: got %v, want 500ms", cfg.Derived.TimeLapse)
	}
	if cfg.Population.Initial != 60 {
		t.Errorf("population kept from defaults: got %d, want 60", cfg.Population.Initial)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative time-lapse", "pacing:\n  time_lapse: -1\n", "pacing.time_lapse"},
		{"zero fps", "screen:\n  target_fps: 0\n", "screen.target_fps"},
		{"empty population", "population:\n  initial: 0\n", "population.initial"},
		{"more species than bodies", "population:\n  initial: 2\n  species: 3\n", "population.species"},
		{"spawn chance above one", "plant:\n  spawn_chance: 1.5\n", "plant.spawn_chance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("got nil error, want one")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("got nil error, want one")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Population.Species = 4

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Population.Species != 4 {
		t.Errorf("species: got %d, want 4", got.Population.Species)
	}
}
