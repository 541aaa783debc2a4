// Package tuning loads the simulation and app tuning from YAML. A complete
// default file is embedded in the binary; an optional disk file overrides
// only the keys it sets, and a watcher reloads it live so constants can be
// tweaked while the app runs.
package tuning

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/shapesplash/sim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// VortexTuning groups the vortex field constants.
type VortexTuning struct {
	Duration float64 `yaml:"duration"`
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	Pull     float64 `yaml:"pull"`
	Spin     float64 `yaml:"spin"`
}

// Tuning mirrors defaults.yaml. Simulation fields map onto sim.Config; the
// trailing block is app-side (spawn sizing, wheel push, attract idle).
type Tuning struct {
	Friction        float64 `yaml:"friction"`
	AngularFriction float64 `yaml:"angular_friction"`
	MinVelocity     float64 `yaml:"min_velocity"`
	Elasticity      float64 `yaml:"elasticity"`

	SpawnSpeedMin float64 `yaml:"spawn_speed_min"`
	SpawnSpeedMax float64 `yaml:"spawn_speed_max"`
	SpawnSpinMax  float64 `yaml:"spawn_spin_max"`
	MassModel     string  `yaml:"mass_model"` // "area" or "linear"
	MassScale     float64 `yaml:"mass_scale"`

	PushRadius       float64 `yaml:"push_radius"`
	PushForce        float64 `yaml:"push_force"`
	PushSpinMax      float64 `yaml:"push_spin_max"`
	CollisionSpinMax float64 `yaml:"collision_spin_max"`

	Vortex VortexTuning `yaml:"vortex"`

	SoftCap     int     `yaml:"soft_cap"`
	HardCap     int     `yaml:"hard_cap"`
	SlowSpeed   float64 `yaml:"slow_speed"`
	CapInterval float64 `yaml:"cap_interval"`

	SpawnSizeMin float64 `yaml:"spawn_size_min"`
	SpawnSizeMax float64 `yaml:"spawn_size_max"`
	WheelForce   float64 `yaml:"wheel_force"`
	IdleSeconds  float64 `yaml:"idle_seconds"`
}

var (
	defaultsOnce sync.Once
	defaults     Tuning
)

// Default returns the embedded tuning.
func Default() Tuning {
	defaultsOnce.Do(func() {
		if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
			// The embedded file ships with the binary; failing to parse it
			// is a build defect, not a runtime condition.
			panic(fmt.Sprintf("tuning: embedded defaults are invalid: %v", err))
		}
	})
	return defaults
}

// Load reads a tuning file layered over the embedded defaults: keys the
// file omits keep their default values.
func Load(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("tuning: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), fmt.Errorf("tuning: parse %s: %w", path, err)
	}
	return t, nil
}

// SimConfig converts the tuning into a sim.Config for the given playfield.
func (t Tuning) SimConfig(width, height float64) sim.Config {
	model := sim.MassArea
	if t.MassModel == "linear" {
		model = sim.MassLinear
	}
	return sim.Config{
		Width:  width,
		Height: height,

		Friction:        t.Friction,
		AngularFriction: t.AngularFriction,
		MinVelocity:     t.MinVelocity,
		Elasticity:      t.Elasticity,

		SpawnSpeedMin: t.SpawnSpeedMin,
		SpawnSpeedMax: t.SpawnSpeedMax,
		SpawnSpinMax:  t.SpawnSpinMax,
		MassModel:     model,
		MassScale:     t.MassScale,

		PushRadius:       t.PushRadius,
		PushForce:        t.PushForce,
		PushSpinMax:      t.PushSpinMax,
		CollisionSpinMax: t.CollisionSpinMax,

		VortexDuration: t.Vortex.Duration,
		VortexRadius:   t.Vortex.Radius,
		VortexStrength: t.Vortex.Strength,
		VortexPull:     t.Vortex.Pull,
		VortexSpin:     t.Vortex.Spin,

		SoftCap:     t.SoftCap,
		HardCap:     t.HardCap,
		SlowSpeed:   t.SlowSpeed,
		CapInterval: t.CapInterval,
	}
}
