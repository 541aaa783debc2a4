package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

// createRandom builds a new object at (x, y): random shape kind, palette
// color, launch direction uniform over the full circle, speed and spin
// uniform over their configured ranges. The position is clamped so the whole
// shape starts inside the playfield.
func (w *World) createRandom(x, y, size float64) Object {
	cfg := w.cfg
	if size <= 0 {
		size = 2
	}
	radius := size / 2
	pos := clampToBounds(cp.Vector{X: x, Y: y}, radius, cfg.Width, cfg.Height)

	theta := w.rng.Float64() * 2 * math.Pi
	speed := cfg.SpawnSpeedMin + w.rng.Float64()*(cfg.SpawnSpeedMax-cfg.SpawnSpeedMin)

	obj := Object{
		Pos:        pos,
		Vel:        cp.Vector{X: speed * math.Cos(theta), Y: speed * math.Sin(theta)},
		Radius:     radius,
		Mass:       cfg.massFor(size),
		Rotation:   w.rng.Float64() * 360,
		AngularVel: (w.rng.Float64()*2 - 1) * cfg.SpawnSpinMax,
		Shape:      Shape(w.rng.Intn(int(shapeKinds))),
		Color:      Palette[w.rng.Intn(len(Palette))],
	}
	if obj.Shape == ShapeLetter {
		obj.Glyph = rune('A' + w.rng.Intn(26))
	}
	return obj
}

// clampToBounds keeps a center position at least radius away from every
// wall. A playfield smaller than the shape pins it to the middle.
func clampToBounds(p cp.Vector, radius, width, height float64) cp.Vector {
	p.X = clampAxis(p.X, radius, width)
	p.Y = clampAxis(p.Y, radius, height)
	return p
}

func clampAxis(v, radius, limit float64) float64 {
	if limit <= radius*2 {
		return limit / 2
	}
	if v < radius {
		return radius
	}
	if v > limit-radius {
		return limit - radius
	}
	return v
}
