package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

// distanceEpsilon guards all force and collision math against dividing by a
// near-zero distance. Anything closer counts as "no interaction".
const distanceEpsilon = 1e-4

// Vortex is a time-limited force field: a tangential component spins objects
// around the center while a weaker radial component pulls them in. Both fade
// linearly with distance and with elapsed time, so the field dies smoothly.
type Vortex struct {
	Center   cp.Vector
	Elapsed  float64
	Duration float64
	Radius   float64
}

// Strength returns the time-decay multiplier in [0, 1].
func (v *Vortex) Strength() float64 {
	if v.Duration <= 0 || v.Elapsed >= v.Duration {
		return 0
	}
	return 1 - v.Elapsed/v.Duration
}

// applyVortex applies the active field to every object inside its radius.
// Objects in the inner half of the field get a spin kick one way, objects in
// the outer half the other way, which layers two counter-rotating bands.
func (w *World) applyVortex(v *Vortex) {
	decay := v.Strength()
	if decay <= 0 {
		return
	}
	cfg := w.cfg
	w.pool.ForEach(func(_ Handle, o *Object) {
		delta := o.Pos.Sub(v.Center)
		dist := delta.Length()
		if dist <= distanceEpsilon || dist >= v.Radius {
			return
		}
		falloff := (1 - dist/v.Radius) * decay
		radial := delta.Mult(1 / dist)
		tangent := radial.Perp()
		o.Vel = o.Vel.Add(tangent.Mult(cfg.VortexStrength * falloff))
		o.Vel = o.Vel.Sub(radial.Mult(cfg.VortexPull * falloff))
		spin := cfg.VortexSpin * falloff
		if dist > v.Radius/2 {
			spin = -spin
		}
		o.AngularVel += spin
	})
}

// applySpawnPush shoves every object near a spawn point away from it, with
// linear falloff over the push radius. Heavy objects move less, and each gets
// a small random spin kick. The freshly spawned object itself is excluded.
func (w *World) applySpawnPush(center cp.Vector, exclude Handle) {
	cfg := w.cfg
	w.pool.ForEach(func(h Handle, o *Object) {
		if h == exclude {
			return
		}
		delta := o.Pos.Sub(center)
		dist := delta.Length()
		if dist <= distanceEpsilon || dist >= cfg.PushRadius {
			return
		}
		mag := cfg.PushForce * (1 - dist/cfg.PushRadius) / o.Mass
		o.Vel = o.Vel.Add(delta.Mult(mag / dist))
		o.AngularVel += (w.rng.Float64()*2 - 1) * cfg.PushSpinMax
	})
}

// stepObject advances one object by one tick: friction, low-speed snap,
// position integration, wall bounce, then rotation. Each wall axis is
// checked independently and reflects only its own velocity component.
func stepObject(o *Object, cfg Config) {
	o.Vel.X *= cfg.Friction
	o.Vel.Y *= cfg.Friction
	if math.Abs(o.Vel.X) < cfg.MinVelocity {
		o.Vel.X = 0
	}
	if math.Abs(o.Vel.Y) < cfg.MinVelocity {
		o.Vel.Y = 0
	}

	o.Pos = o.Pos.Add(o.Vel)

	if o.Pos.X < o.Radius {
		o.Pos.X = o.Radius
		o.Vel.X = -o.Vel.X * cfg.Elasticity
	} else if o.Pos.X > cfg.Width-o.Radius {
		o.Pos.X = cfg.Width - o.Radius
		o.Vel.X = -o.Vel.X * cfg.Elasticity
	}
	if o.Pos.Y < o.Radius {
		o.Pos.Y = o.Radius
		o.Vel.Y = -o.Vel.Y * cfg.Elasticity
	} else if o.Pos.Y > cfg.Height-o.Radius {
		o.Pos.Y = cfg.Height - o.Radius
		o.Vel.Y = -o.Vel.Y * cfg.Elasticity
	}

	o.Rotation = math.Mod(o.Rotation+o.AngularVel, 360)
	if o.Rotation < 0 {
		o.Rotation += 360
	}
	o.AngularVel *= cfg.AngularFriction
}
