// Package sim is the physics core of shapesplash: a single-threaded 2D
// particle simulation with friction, wall bounce, pairwise elastic
// collisions, spawn impulses, a timed vortex field, and soft/hard
// population caps.
//
// The core does no I/O and holds no locks. All mutation happens inside the
// caller's tick: input collaborators call Spawn, TriggerVortex, and
// ApplyUniformForce between ticks, the frame loop calls Advance once per
// tick, and the renderer reads Snapshot. Callers on other goroutines must
// marshal onto the tick goroutine first.
package sim

import (
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
)

// World owns the object pool, the active vortex (if any), and the RNG that
// drives spawn randomization and collision spin kicks.
type World struct {
	cfg    Config
	pool   *Pool
	rng    *rand.Rand
	vortex *Vortex

	sinceCaps float64
	events    []Event
}

// NewWorld creates a simulation. Passing a seeded rng makes every spawn and
// spin sequence reproducible; a nil rng gets a time-based seed.
func NewWorld(cfg Config, rng *rand.Rand) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	capacity := cfg.HardCap + 16
	if capacity < 16 {
		capacity = 16
	}
	return &World{
		cfg:  cfg,
		pool: NewPool(capacity),
		rng:  rng,
	}
}

// Config returns the current tuning.
func (w *World) Config() Config {
	return w.cfg
}

// SetConfig swaps the tuning live. Objects outside new, smaller bounds are
// pulled back in on their next tick by the wall clamp.
func (w *World) SetConfig(cfg Config) {
	w.cfg = cfg
}

// Spawn creates a randomized object centered near (x, y); out-of-bounds
// positions are clamped into the playfield, never rejected. With push set,
// nearby objects are shoved away from the spawn point. Half of size becomes
// the object's radius.
func (w *World) Spawn(x, y, size float64, push bool) Handle {
	return w.insert(w.createRandom(x, y, size), push)
}

// SpawnGlyph is Spawn pinned to the letter shape, carrying the given glyph.
func (w *World) SpawnGlyph(x, y, size float64, glyph rune, push bool) Handle {
	obj := w.createRandom(x, y, size)
	obj.Shape = ShapeLetter
	obj.Glyph = glyph
	return w.insert(obj, push)
}

func (w *World) insert(obj Object, push bool) Handle {
	h := w.pool.Insert(obj)
	w.emit(Event{Kind: EventSpawn, Pos: obj.Pos, Size: obj.Radius * 2, Color: obj.Color})
	if push {
		w.applySpawnPush(obj.Pos, h)
		w.emit(Event{Kind: EventPush, Pos: obj.Pos, Size: w.cfg.PushRadius, Color: obj.Color})
	}
	return h
}

// Remove destroys a single object. Stale handles are a no-op.
func (w *World) Remove(h Handle) bool {
	return w.pool.Remove(h)
}

// TriggerVortex starts (or restarts) the vortex field at (x, y). The field
// fades out over the configured duration and clears itself.
func (w *World) TriggerVortex(x, y float64) {
	center := clampToBounds(cp.Vector{X: x, Y: y}, 0, w.cfg.Width, w.cfg.Height)
	w.vortex = &Vortex{
		Center:   center,
		Duration: w.cfg.VortexDuration,
		Radius:   w.cfg.VortexRadius,
	}
	w.emit(Event{Kind: EventVortex, Pos: center, Size: w.cfg.VortexRadius})
}

// ActiveVortex returns a copy of the live field for rendering.
func (w *World) ActiveVortex() (Vortex, bool) {
	if w.vortex == nil {
		return Vortex{}, false
	}
	return *w.vortex, true
}

// ApplyUniformForce adds the same velocity step, magnitude units per tick
// along dir, to every live object. Used by the scroll/swipe collaborator.
func (w *World) ApplyUniformForce(dir cp.Vector, magnitude float64) {
	length := dir.Length()
	if length <= distanceEpsilon || magnitude == 0 {
		return
	}
	step := dir.Mult(magnitude / length)
	w.pool.ForEach(func(_ Handle, o *Object) {
		o.Vel = o.Vel.Add(step)
	})
}

// Advance runs one tick. dt is the wall-clock span the tick covers (seconds)
// and feeds only the vortex clock and the cap cadence; integration itself is
// per tick. The order is fixed: vortex timing, vortex force, collisions,
// then per-object friction/integration/bounds. Reordering changes behavior.
func (w *World) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}

	if v := w.vortex; v != nil {
		v.Elapsed += dt
		if v.Elapsed >= v.Duration {
			w.vortex = nil
		} else {
			w.applyVortex(v)
		}
	}

	w.resolveCollisions()

	cfg := w.cfg
	w.pool.ForEach(func(_ Handle, o *Object) {
		stepObject(o, cfg)
	})

	// Population control is a safety net, not physics, so it runs on its own
	// slower cadence. A burst of spawns may exceed the hard cap until then.
	w.sinceCaps += dt
	if w.sinceCaps >= cfg.CapInterval {
		w.sinceCaps = 0
		w.pool.EnforceCaps(cfg.SoftCap, cfg.HardCap, cfg.SlowSpeed)
	}
}

// Snapshot returns the render state of every object, oldest first. The
// slice is freshly allocated each call; readers own it and must not expect
// later ticks to show through.
func (w *World) Snapshot() []RenderState {
	out := make([]RenderState, 0, w.pool.Len())
	w.pool.ForEach(func(_ Handle, o *Object) {
		out = append(out, RenderState{
			Pos:      o.Pos,
			Rotation: o.Rotation,
			Radius:   o.Radius,
			Shape:    o.Shape,
			Glyph:    o.Glyph,
			Color:    o.Color,
		})
	})
	return out
}

// PopulationCount returns the live object count. Spawn-gating collaborators
// read this to throttle creation bursts.
func (w *World) PopulationCount() int {
	return w.pool.Len()
}

// Clear removes every object and any active vortex.
func (w *World) Clear() {
	w.pool.Clear()
	w.vortex = nil
}
