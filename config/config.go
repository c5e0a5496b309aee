// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Body       BodyConfig       `yaml:"body"`
	Energy     EnergyConfig     `yaml:"energy"`
	Plant      PlantConfig      `yaml:"plant"`
	Pacing     PacingConfig     `yaml:"pacing"`
	Pause      PauseConfig      `yaml:"pause"`
	Markers    MarkersConfig    `yaml:"markers"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the evolution field dimensions.
// The field can be larger than the screen; the camera handles the viewport.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// PopulationConfig holds seeding parameters for a new evolution.
type PopulationConfig struct {
	Initial         int     `yaml:"initial"`        // bodies seeded per evolution
	Species         int     `yaml:"species"`        // distinct species among the seeds
	PassiveChance   float64 `yaml:"passive_chance"` // chance a species stands still when it sees no food
	CarnivoreChance float64 `yaml:"carnivore_chance"`
	OmnivoreChance  float64 `yaml:"omnivore_chance"`
}

// BodyConfig holds average body traits. Every seeded species draws its traits
// around these values, and every child draws around its parent's.
type BodyConfig struct {
	AverageEnergy               float64 `yaml:"average_energy"`
	AverageSpeed                float64 `yaml:"average_speed"`
	AverageVisionDistance       float64 `yaml:"average_vision_distance"`
	AverageProcreationThreshold float64 `yaml:"average_procreation_threshold"`
	Deviation                   float64 `yaml:"deviation"` // relative spread, 0.1 = ±10%
	Radius                      float64 `yaml:"radius"`
}

// EnergyConfig holds energy economics.
type EnergyConfig struct {
	MassCost       float64 `yaml:"mass_cost"`       // per tick, times energy
	VisionCost     float64 `yaml:"vision_cost"`     // per tick, times vision²
	MovementCost   float64 `yaml:"movement_cost"`   // per tick moved, times speed²
	PlantEnergy    float64 `yaml:"plant_energy"`    // gained per plant eaten
	PreyEfficiency float64 `yaml:"prey_efficiency"` // fraction of a victim's energy gained
}

// PlantConfig holds plant spawn parameters.
type PlantConfig struct {
	SpawnChance   float64 `yaml:"spawn_chance"` // chance per internal tick
	Initial       int     `yaml:"initial"`
	MinGap        float64 `yaml:"min_gap"`        // distance kept from the field border
	NoiseScale    float64 `yaml:"noise_scale"`    // fertility noise frequency
	SpawnAttempts int     `yaml:"spawn_attempts"` // rejection-sampling budget per spawn
}

// PacingConfig holds frame pacing parameters.
type PacingConfig struct {
	TimeLapse     float64 `yaml:"time_lapse"`      // seconds per rendered frame, 0 = off
	MaxBatchTicks int     `yaml:"max_batch_ticks"` // opt-in cap on ticks per frame, 0 = none
	MaxZoom       float64 `yaml:"max_zoom"`        // camera magnification limit
}

// PauseConfig holds pause/hover parameters.
type PauseConfig struct {
	HoverDelay   float64 `yaml:"hover_delay"`   // seconds a body must be hovered before it is selected
	PollInterval float64 `yaml:"poll_interval"` // seconds between pause polls
	StartPaused  bool    `yaml:"start_paused"`  // begin each evolution paused so the operator can guess
}

// MarkersConfig holds auxiliary marker parameters.
type MarkersConfig struct {
	CrossLifespan float64 `yaml:"cross_lifespan"` // seconds a death cross stays on the field
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int    `yaml:"stats_window"` // internal ticks per stats window
	OutputDir   string `yaml:"output_dir"`   // CSV output directory, empty = none
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32      float32       // Effective world width as float32
	WorldH32      float32       // Effective world height as float32
	Radius32      float32       // Body.Radius as float32
	FrameInterval time.Duration // 1 / Screen.TargetFPS
	TimeLapse     time.Duration // Pacing.TimeLapse
	HoverDelay    time.Duration
	PollInterval  time.Duration
	CrossLifespan time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every setting that cannot drive an evolution.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS))
	}
	if c.Population.Initial <= 0 {
		errs = append(errs, fmt.Errorf("population.initial must be positive, got %d", c.Population.Initial))
	}
	if c.Population.Species <= 0 || c.Population.Species > c.Population.Initial {
		errs = append(errs, fmt.Errorf("population.species must be in [1, %d], got %d", c.Population.Initial, c.Population.Species))
	}
	if c.Pacing.MaxBatchTicks < 0 {
		errs = append(errs, fmt.Errorf("pacing.max_batch_ticks must not be negative, got %d", c.Pacing.MaxBatchTicks))
	}
	if c.Pacing.TimeLapse < 0 {
		errs = append(errs, fmt.Errorf("pacing.time_lapse must not be negative, got %v", c.Pacing.TimeLapse))
	}
	if c.Plant.SpawnChance < 0 || c.Plant.SpawnChance > 1 {
		errs = append(errs, fmt.Errorf("plant.spawn_chance must be in [0, 1], got %v", c.Plant.SpawnChance))
	}
	if c.Body.Deviation < 0 || c.Body.Deviation >= 1 {
		errs = append(errs, fmt.Errorf("body.deviation must be in [0, 1), got %v", c.Body.Deviation))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
	c.Derived.Radius32 = float32(c.Body.Radius)

	c.Derived.FrameInterval = time.Second / time.Duration(c.Screen.TargetFPS)
	c.Derived.TimeLapse = seconds(c.Pacing.TimeLapse)
	c.Derived.HoverDelay = seconds(c.Pause.HoverDelay)
	c.Derived.PollInterval = seconds(c.Pause.PollInterval)
	c.Derived.CrossLifespan = seconds(c.Markers.CrossLifespan)

	if c.Pacing.MaxZoom < 1 {
		c.Pacing.MaxZoom = 1
	}
	if c.Plant.SpawnAttempts <= 0 {
		c.Plant.SpawnAttempts = 16
	}
	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 600
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
