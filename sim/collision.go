package sim

import "math/rand"

// resolveCollisions runs the pairwise elastic pass over the whole
// population. This is O(n²) per tick, which is fine under the hard cap
// (<=200 objects); if the caps are ever raised this is the place that needs
// a broadphase, and raising them silently would also change the tie-break
// order of simultaneous multi-collisions.
func (w *World) resolveCollisions() {
	handles := w.pool.Handles()
	for i := 0; i < len(handles); i++ {
		a := w.pool.Get(handles[i])
		if a == nil {
			continue
		}
		for j := i + 1; j < len(handles); j++ {
			b := w.pool.Get(handles[j])
			if b == nil {
				continue
			}
			resolvePair(a, b, w.cfg.Elasticity, w.cfg.CollisionSpinMax, w.rng)
		}
	}
}

// resolvePair detects and resolves a single collision. The velocity impulse
// only fires while the objects are approaching; the positional correction
// runs on any overlap, even between objects already separating, so shapes
// never stay visibly merged. Reports whether the pair overlapped.
func resolvePair(a, b *Object, elasticity, spinMax float64, rng *rand.Rand) bool {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()
	combined := a.Radius + b.Radius
	if dist >= combined || dist <= distanceEpsilon {
		return false
	}

	normal := delta.Mult(1 / dist)
	dvn := a.Vel.Sub(b.Vel).Dot(normal)
	if dvn > 0 {
		impulse := 2 * dvn / (a.Mass + b.Mass) * elasticity
		a.Vel = a.Vel.Sub(normal.Mult(impulse * b.Mass))
		b.Vel = b.Vel.Add(normal.Mult(impulse * a.Mass))
		if rng != nil && spinMax > 0 {
			a.AngularVel += (rng.Float64()*2 - 1) * spinMax
			b.AngularVel += (rng.Float64()*2 - 1) * spinMax
		}
	}

	half := (combined - dist) / 2
	a.Pos = a.Pos.Sub(normal.Mult(half))
	b.Pos = b.Pos.Add(normal.Mult(half))
	return true
}
