package main

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/shapesplash/common"
	"github.com/milk9111/shapesplash/sim"
)

// maxEffects caps the visual layer independently of the sim population so
// an input storm cannot flood the frame with geometry.
const maxEffects = 256

type effectKind int

const (
	effectRing effectKind = iota
	effectSpark
)

// Effect is one transient visual: an expanding ring or a flying spark.
// Effects are render-only; they never feed back into the simulation.
type Effect struct {
	kind    effectKind
	pos     cp.Vector
	vel     cp.Vector
	radius  float64
	growth  float64
	color   color.RGBA
	life    int
	maxLife int
}

// EffectLayer owns all live effects and turns core events into new ones.
type EffectLayer struct {
	effects []Effect
	rng     *rand.Rand
}

func NewEffectLayer(rng *rand.Rand) *EffectLayer {
	return &EffectLayer{rng: rng}
}

// Absorb converts core events into visuals. Spawns get a small ring and a
// handful of sparks, pushes a wide ring, vortexes a burst of inward sparks.
func (l *EffectLayer) Absorb(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventSpawn:
			l.add(Effect{
				kind:    effectRing,
				pos:     ev.Pos,
				radius:  ev.Size / 2,
				growth:  1.2,
				color:   ev.Color,
				maxLife: 20,
			})
			l.sparks(ev.Pos, ev.Color, 6, 2.5)
		case sim.EventPush:
			l.add(Effect{
				kind:    effectRing,
				pos:     ev.Pos,
				radius:  8,
				growth:  ev.Size / 30,
				color:   ev.Color,
				maxLife: 24,
			})
		case sim.EventVortex:
			l.sparks(ev.Pos, color.RGBA{R: 180, G: 210, B: 255, A: 255}, 24, 4)
		}
	}
}

func (l *EffectLayer) sparks(pos cp.Vector, clr color.RGBA, n int, speed float64) {
	for i := 0; i < n; i++ {
		ang := l.rng.Float64() * 2 * math.Pi
		s := speed * (0.5 + l.rng.Float64())
		l.add(Effect{
			kind:    effectSpark,
			pos:     pos,
			vel:     cp.Vector{X: s * math.Cos(ang), Y: s * math.Sin(ang)},
			radius:  1.5 + l.rng.Float64()*2,
			color:   clr,
			maxLife: 25 + l.rng.Intn(20),
		})
	}
}

func (l *EffectLayer) add(e Effect) {
	if len(l.effects) >= maxEffects {
		// Drop the oldest; a missing effect is invisible in practice.
		copy(l.effects, l.effects[1:])
		l.effects = l.effects[:len(l.effects)-1]
	}
	l.effects = append(l.effects, e)
}

// Update advances every effect one frame and drops the expired ones.
func (l *EffectLayer) Update() {
	keep := l.effects[:0]
	for i := range l.effects {
		e := &l.effects[i]
		e.life++
		if e.life >= e.maxLife {
			continue
		}
		switch e.kind {
		case effectRing:
			e.radius += e.growth
		case effectSpark:
			e.pos.X += e.vel.X
			e.pos.Y += e.vel.Y
			e.vel.X *= 0.92
			e.vel.Y *= 0.92
		}
		keep = append(keep, *e)
	}
	l.effects = keep
}

// Draw renders all live effects with alpha fading out over their life.
func (l *EffectLayer) Draw(dst *ebiten.Image) {
	for i := range l.effects {
		e := &l.effects[i]
		fade := 1 - float64(e.life)/float64(e.maxLife)
		clr := scaleAlpha(e.color, fade)
		switch e.kind {
		case effectRing:
			vector.StrokeCircle(dst, float32(e.pos.X), float32(e.pos.Y), float32(e.radius), 2, clr, true)
		case effectSpark:
			r := common.Clamp(e.radius*fade, 0.5, e.radius)
			vector.DrawFilledCircle(dst, float32(e.pos.X), float32(e.pos.Y), float32(r), clr, true)
		}
	}
}

func scaleAlpha(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}
