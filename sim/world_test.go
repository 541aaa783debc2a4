package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
)

const testDt = 1.0 / 60.0

func TestSpawnClampsIntoBounds(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		want cp.Vector
	}{
		{"far_outside", -100, -100, cp.Vector{X: 20, Y: 20}},
		{"beyond_far_corner", 5000, 5000, cp.Vector{X: 780, Y: 580}},
		{"inside", 400, 300, cp.Vector{X: 400, Y: 300}},
		{"edge_overlap", 5, 300, cp.Vector{X: 20, Y: 300}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(testConfig(), rand.New(rand.NewSource(3)))
			h := w.Spawn(c.x, c.y, 40, false)
			if !h.Valid() {
				t.Fatalf("spawn must always succeed")
			}
			got := w.Snapshot()[0].Pos
			if got != c.want {
				t.Fatalf("expected clamped position %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestSpawnGlyph(t *testing.T) {
	w := NewWorld(testConfig(), rand.New(rand.NewSource(3)))
	w.SpawnGlyph(100, 100, 40, 'Q', false)
	rs := w.Snapshot()[0]
	if rs.Shape != ShapeLetter || rs.Glyph != 'Q' {
		t.Fatalf("expected letter Q, got shape=%v glyph=%q", rs.Shape, rs.Glyph)
	}
}

func TestSpawnMassModel(t *testing.T) {
	cases := []struct {
		name  string
		model MassModel
		size  float64
		want  float64
	}{
		{"area", MassArea, 40, 16},
		{"linear", MassLinear, 40, 0.4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.MassModel = c.model
			w := NewWorld(cfg, rand.New(rand.NewSource(3)))
			h := w.Spawn(400, 300, c.size, false)
			if got := w.pool.Get(h).Mass; math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("expected mass %f, got %f", c.want, got)
			}
		})
	}
}

func TestSnapshotOrderAndIsolation(t *testing.T) {
	w := NewWorld(testConfig(), rand.New(rand.NewSource(5)))
	w.Spawn(100, 100, 40, false)
	w.Spawn(200, 100, 40, false)
	w.Spawn(300, 100, 40, false)

	snap := w.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(snap))
	}
	if snap[0].Pos.X != 100 || snap[1].Pos.X != 200 || snap[2].Pos.X != 300 {
		t.Fatalf("snapshot must preserve insertion order, got %+v", snap)
	}

	// Mutating the snapshot must not leak into the simulation.
	snap[0].Pos.X = -1
	if w.Snapshot()[0].Pos.X != 100 {
		t.Fatalf("snapshot mutation leaked into the world")
	}
}

func TestVortexAppliesTangentialForce(t *testing.T) {
	cfg := testConfig()
	w := NewWorld(cfg, rand.New(rand.NewSource(9)))
	h := w.pool.Insert(Object{Pos: cp.Vector{X: 450, Y: 300}, Radius: 10, Mass: 1})

	w.TriggerVortex(400, 300)
	if _, ok := w.ActiveVortex(); !ok {
		t.Fatalf("vortex must be active after trigger")
	}
	w.Advance(testDt)

	vel := w.pool.Get(h).Vel
	if vel.Y == 0 {
		t.Fatalf("object 50 from the center must receive a tangential delta")
	}
	if vel.X >= 0 {
		t.Fatalf("radial component must pull inward (negative x), got %f", vel.X)
	}
}

func TestVortexExpiry(t *testing.T) {
	cfg := testConfig()
	w := NewWorld(cfg, rand.New(rand.NewSource(9)))
	h := w.pool.Insert(Object{Pos: cp.Vector{X: 450, Y: 300}, Radius: 10, Mass: 1})
	w.TriggerVortex(400, 300)

	ticks := int(cfg.VortexDuration/testDt) + 2
	for i := 0; i < ticks; i++ {
		w.Advance(testDt)
	}
	if _, ok := w.ActiveVortex(); ok {
		t.Fatalf("vortex must clear itself after its duration")
	}

	// With the field gone and the object forced to rest, nothing may move it.
	o := w.pool.Get(h)
	o.Vel = cp.Vector{}
	o.AngularVel = 0
	pos := o.Pos
	w.Advance(testDt)
	if got := w.pool.Get(h); got.Pos != pos || got.Vel.X != 0 || got.Vel.Y != 0 {
		t.Fatalf("expired vortex must exert no force, got pos=%+v vel=%+v", got.Pos, got.Vel)
	}
}

func TestVortexStrengthFades(t *testing.T) {
	v := &Vortex{Duration: 5}
	prev := v.Strength()
	for i := 0; i < 10; i++ {
		v.Elapsed += 0.5
		s := v.Strength()
		if s > prev {
			t.Fatalf("strength must decay monotonically, %f -> %f", prev, s)
		}
		prev = s
	}
	if prev != 0 {
		t.Fatalf("strength must reach zero at expiry, got %f", prev)
	}
}

func TestAdvanceRunsCapEnforcementOnItsCadence(t *testing.T) {
	cfg := testConfig()
	cfg.CapInterval = 1
	w := NewWorld(cfg, rand.New(rand.NewSource(11)))
	for i := 0; i < 210; i++ {
		w.Spawn(float64(10+i*3%780), 300, 20, false)
	}
	if w.PopulationCount() != 210 {
		t.Fatalf("burst above the hard cap is a tolerated transient, got %d", w.PopulationCount())
	}

	// Under a second of ticks: caps must not have run yet.
	for i := 0; i < 30; i++ {
		w.Advance(testDt)
	}
	if w.PopulationCount() != 210 {
		t.Fatalf("cap enforcement ran early, population %d", w.PopulationCount())
	}

	// Crossing the interval restores the invariant.
	for i := 0; i < 40; i++ {
		w.Advance(testDt)
	}
	if got := w.PopulationCount(); got > cfg.HardCap {
		t.Fatalf("population %d still above hard cap %d after scheduled run", got, cfg.HardCap)
	}
}

func TestDeterministicWithSeededRand(t *testing.T) {
	run := func() []RenderState {
		w := NewWorld(testConfig(), rand.New(rand.NewSource(42)))
		for i := 0; i < 20; i++ {
			w.Spawn(float64(50+i*35), 300, 30, i%2 == 0)
		}
		w.TriggerVortex(400, 300)
		for i := 0; i < 120; i++ {
			w.Advance(testDt)
		}
		return w.Snapshot()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs diverged in population: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("object %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDrainEvents(t *testing.T) {
	w := NewWorld(testConfig(), rand.New(rand.NewSource(2)))
	w.Spawn(100, 100, 30, true)
	w.TriggerVortex(200, 200)

	events := w.DrainEvents()
	kinds := make(map[EventKind]int)
	for _, ev := range events {
		kinds[ev.Kind]++
	}
	if kinds[EventSpawn] != 1 || kinds[EventPush] != 1 || kinds[EventVortex] != 1 {
		t.Fatalf("expected one spawn, push, and vortex event, got %v", kinds)
	}
	if w.DrainEvents() != nil {
		t.Fatalf("second drain must be empty")
	}
}

func TestClear(t *testing.T) {
	w := NewWorld(testConfig(), rand.New(rand.NewSource(2)))
	w.Spawn(100, 100, 30, false)
	w.TriggerVortex(200, 200)
	w.Clear()
	if w.PopulationCount() != 0 {
		t.Fatalf("expected empty world, got %d", w.PopulationCount())
	}
	if _, ok := w.ActiveVortex(); ok {
		t.Fatalf("clear must drop the vortex")
	}
}
