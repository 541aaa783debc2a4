package sim

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func kineticEnergy(objs ...*Object) float64 {
	total := 0.0
	for _, o := range objs {
		total += 0.5 * o.Mass * o.Vel.LengthSq()
	}
	return total
}

func TestResolvePairHeadOn(t *testing.T) {
	a := &Object{Pos: cp.Vector{X: 100, Y: 100}, Vel: cp.Vector{X: 2}, Radius: 20, Mass: 20}
	b := &Object{Pos: cp.Vector{X: 130, Y: 100}, Vel: cp.Vector{X: -2}, Radius: 20, Mass: 20}

	if !resolvePair(a, b, 0.8, 0, nil) {
		t.Fatalf("objects 30 apart with combined radius 40 must collide")
	}

	if dist := a.Pos.Distance(b.Pos); dist < 40-1e-9 {
		t.Fatalf("positional correction must separate to at least 40, got %f", dist)
	}
	if a.Vel.X >= 0 {
		t.Fatalf("left object must reverse along x, got vx=%f", a.Vel.X)
	}
	if b.Vel.X <= 0 {
		t.Fatalf("right object must reverse along x, got vx=%f", b.Vel.X)
	}

	// Equal masses, elasticity 0.8: impulse = 2*4/40*0.8 = 0.16, so each
	// velocity flips to 1.2 the other way.
	if math.Abs(a.Vel.X+1.2) > 1e-9 || math.Abs(b.Vel.X-1.2) > 1e-9 {
		t.Fatalf("expected vx -1.2/+1.2, got %f/%f", a.Vel.X, b.Vel.X)
	}
}

func TestResolvePairDissipatesEnergy(t *testing.T) {
	cases := []struct {
		name  string
		massA float64
		massB float64
		velA  cp.Vector
		velB  cp.Vector
	}{
		{"equal_masses", 10, 10, cp.Vector{X: 3}, cp.Vector{X: -3}},
		{"heavy_light", 40, 5, cp.Vector{X: 2}, cp.Vector{X: -4}},
		{"oblique", 12, 8, cp.Vector{X: 2, Y: 1}, cp.Vector{X: -1, Y: -2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := &Object{Pos: cp.Vector{X: 0, Y: 0}, Vel: c.velA, Radius: 15, Mass: c.massA}
			b := &Object{Pos: cp.Vector{X: 20, Y: 5}, Vel: c.velB, Radius: 15, Mass: c.massB}

			before := kineticEnergy(a, b)
			if !resolvePair(a, b, 0.8, 0, nil) {
				t.Fatalf("overlapping pair must collide")
			}
			after := kineticEnergy(a, b)
			if after > before+1e-9 {
				t.Fatalf("kinetic energy grew: %f -> %f", before, after)
			}
		})
	}
}

func TestResolvePairSeparatingObjects(t *testing.T) {
	// Overlapping but already moving apart: no impulse, but the positional
	// correction still runs so the pair does not stay visibly merged.
	a := &Object{Pos: cp.Vector{X: 100, Y: 100}, Vel: cp.Vector{X: -1}, Radius: 20, Mass: 10}
	b := &Object{Pos: cp.Vector{X: 120, Y: 100}, Vel: cp.Vector{X: 1}, Radius: 20, Mass: 10}

	if !resolvePair(a, b, 0.8, 0, nil) {
		t.Fatalf("overlap must still be reported for separating objects")
	}
	if a.Vel.X != -1 || b.Vel.X != 1 {
		t.Fatalf("separating objects must keep their velocities, got %f/%f", a.Vel.X, b.Vel.X)
	}
	if dist := a.Pos.Distance(b.Pos); dist < 40-1e-9 {
		t.Fatalf("overlap must be corrected even without an impulse, got distance %f", dist)
	}
}

func TestResolvePairDegenerateDistance(t *testing.T) {
	// Two objects at (almost) the same point: skip instead of dividing by
	// a near-zero distance.
	a := &Object{Pos: cp.Vector{X: 50, Y: 50}, Vel: cp.Vector{X: 1}, Radius: 10, Mass: 5}
	b := &Object{Pos: cp.Vector{X: 50, Y: 50}, Vel: cp.Vector{X: -1}, Radius: 10, Mass: 5}

	if resolvePair(a, b, 0.8, 0, nil) {
		t.Fatalf("coincident centers must be treated as no interaction")
	}
	if a.Vel.X != 1 || b.Vel.X != -1 {
		t.Fatalf("degenerate pair must be left untouched")
	}
}

func TestResolvePairApart(t *testing.T) {
	a := &Object{Pos: cp.Vector{X: 0, Y: 0}, Radius: 10, Mass: 5}
	b := &Object{Pos: cp.Vector{X: 100, Y: 0}, Radius: 10, Mass: 5}
	if resolvePair(a, b, 0.8, 0, nil) {
		t.Fatalf("objects 100 apart must not collide")
	}
}

func TestMomentumConservedAtFullElasticity(t *testing.T) {
	a := &Object{Pos: cp.Vector{X: 0, Y: 0}, Vel: cp.Vector{X: 3}, Radius: 15, Mass: 10}
	b := &Object{Pos: cp.Vector{X: 25, Y: 0}, Vel: cp.Vector{X: -1}, Radius: 15, Mass: 30}

	px := a.Mass*a.Vel.X + b.Mass*b.Vel.X
	resolvePair(a, b, 1.0, 0, nil)
	after := a.Mass*a.Vel.X + b.Mass*b.Vel.X
	if math.Abs(px-after) > 1e-9 {
		t.Fatalf("momentum must be conserved at elasticity 1: %f -> %f", px, after)
	}
}
