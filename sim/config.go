package sim

// MassModel selects how a spawn size maps to mass. Area mass makes large
// objects dominate collisions; linear mass keeps them pushier.
type MassModel int

const (
	MassArea MassModel = iota
	MassLinear
)

// Config holds every tunable constant of the simulation. Velocities are in
// units per tick; durations and intervals are in seconds. Start from
// DefaultConfig rather than a zero value.
type Config struct {
	Width  float64
	Height float64

	Friction        float64 // per-tick velocity retention, just below 1
	AngularFriction float64 // per-tick spin retention, decays slower
	MinVelocity     float64 // below this a velocity axis snaps to zero
	Elasticity      float64 // restitution for walls and collisions

	SpawnSpeedMin float64
	SpawnSpeedMax float64
	SpawnSpinMax  float64 // max |spawn angular velocity|, degrees per tick
	MassModel     MassModel
	MassScale     float64

	PushRadius  float64 // spawn impulse reach
	PushForce   float64 // spawn impulse magnitude at zero distance
	PushSpinMax float64 // max random spin kick from a spawn push

	CollisionSpinMax float64 // max random spin kick per collision

	VortexDuration float64 // seconds
	VortexRadius   float64
	VortexStrength float64 // tangential accel per tick at full strength
	VortexPull     float64 // inward accel per tick at full strength
	VortexSpin     float64 // spin kick per tick inside the field

	SoftCap     int
	HardCap     int
	SlowSpeed   float64 // objects below this speed are eviction candidates
	CapInterval float64 // seconds between cap-enforcement runs
}

// DefaultConfig returns the tuning the app ships with. The window layer
// overrides Width and Height with the real playfield size.
func DefaultConfig() Config {
	return Config{
		Width:  1280,
		Height: 720,

		Friction:        0.995,
		AngularFriction: 0.998,
		MinVelocity:     0.05,
		Elasticity:      0.8,

		SpawnSpeedMin: 1,
		SpawnSpeedMax: 4,
		SpawnSpinMax:  3,
		MassModel:     MassArea,
		MassScale:     0.01,

		PushRadius:  150,
		PushForce:   60,
		PushSpinMax: 4,

		CollisionSpinMax: 1.5,

		VortexDuration: 5,
		VortexRadius:   300,
		VortexStrength: 0.5,
		VortexPull:     0.12,
		VortexSpin:     1.5,

		SoftCap:     150,
		HardCap:     200,
		SlowSpeed:   0.35,
		CapInterval: 2,
	}
}

func (c Config) massFor(size float64) float64 {
	scale := c.MassScale
	if scale <= 0 {
		scale = 1
	}
	m := size * scale
	if c.MassModel == MassArea {
		m = size * size * scale
	}
	if m <= 0 {
		m = 1
	}
	return m
}
