package main

import (
	"image/color"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/shapesplash/attract"
	"github.com/milk9111/shapesplash/sim"
	"github.com/milk9111/shapesplash/tuning"
)

// tickDt is the wall-clock span one simulation tick covers at 60 TPS.
const tickDt = 1.0 / 60.0

// spawnGateMargin is how far past the hard cap input spawns may burst
// before the gate closes; cap enforcement cleans the excess up on its own
// cadence.
const spawnGateMargin = 50

// attractStep is how often the attract script runs while idle.
const attractStep = 0.5

var backgroundColor = color.RGBA{R: 0x12, G: 0x10, B: 0x2a, A: 0xff}

type Game struct {
	world   *sim.World
	input   *Input
	effects *EffectLayer
	sprites *SpriteBank

	tun         tuning.Tuning
	tuningPath  string
	attractPath string
	watcher     *tuning.Watcher

	idle      *attract.Runtime
	idleTime  float64
	idleAccum float64
	wasIdle   bool

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	screenshotPending bool
	width, height     int
}

// NewGame wires the simulation, input, and visual layers together. seed 0
// means time-based randomness; any other value makes a run reproducible.
func NewGame(tun tuning.Tuning, tuningPath, attractPath string, seed int64, width, height int) (*Game, error) {
	var simRng *rand.Rand
	if seed != 0 {
		simRng = rand.New(rand.NewSource(seed))
	}
	appRng := rand.New(rand.NewSource(seed + 1))

	g := &Game{
		world:       sim.NewWorld(tun.SimConfig(float64(width), float64(height)), simRng),
		input:       NewInput(appRng),
		effects:     NewEffectLayer(appRng),
		sprites:     NewSpriteBank(),
		tun:         tun,
		tuningPath:  tuningPath,
		attractPath: attractPath,
		width:       width,
		height:      height,
	}
	g.input.SetBounds(float64(width), float64(height))
	g.input.SetSpawnSizes(tun.SpawnSizeMin, tun.SpawnSizeMax)

	var script []byte
	if attractPath != "" {
		data, err := os.ReadFile(attractPath)
		if err != nil {
			log.Printf("attract script unreadable, using built-in: %v", err)
		} else {
			script = data
		}
	}
	idle, err := attract.New(attract.Engine{
		Size: func() (float64, float64) { return float64(g.width), float64(g.height) },
		Spawn: func(x, y, size float64, push bool) {
			g.world.Spawn(x, y, size, push)
		},
		Vortex:     g.world.TriggerVortex,
		Population: g.world.PopulationCount,
	}, script)
	if err != nil {
		return nil, err
	}
	g.idle = idle

	g.startWatcher()
	return g, nil
}

// startWatcher begins hot-reload watching for the tuning file and attract
// script, when either was given on the command line.
func (g *Game) startWatcher() {
	dirs := watchDirs(g.tuningPath, g.attractPath)
	if len(dirs) == 0 {
		return
	}
	w, err := tuning.NewWatcher(dirs...)
	if err != nil {
		log.Printf("hot reload disabled: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainWatcher()

	g.input.SetBounds(float64(g.width), float64(g.height))
	g.input.Update()

	if g.input.QuitPressed {
		return ebiten.Termination
	}
	if g.input.PausePressed {
		g.paused = !g.paused
		if g.paused {
			g.pauseUI = NewPauseUI(g)
		}
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.input.ScreenshotPressed {
		g.screenshotPending = true
	}
	if g.input.ClearPressed {
		g.world.Clear()
	}

	g.applyInput()
	g.runAttract()

	g.world.Advance(tickDt)
	g.effects.Absorb(g.world.DrainEvents())
	g.effects.Update()
	return nil
}

// applyInput forwards this frame's input requests into the simulation. All
// of it happens on the tick goroutine, which is the only place the core may
// be mutated.
func (g *Game) applyInput() {
	gate := g.tun.HardCap + spawnGateMargin
	for _, req := range g.input.Spawns {
		if g.world.PopulationCount() >= gate {
			break
		}
		if req.Glyph != 0 {
			g.world.SpawnGlyph(req.X, req.Y, req.Size, req.Glyph, req.Push)
		} else {
			g.world.Spawn(req.X, req.Y, req.Size, req.Push)
		}
	}

	if g.input.VortexRequested {
		g.world.TriggerVortex(g.input.VortexX, g.input.VortexY)
	}

	if wx, wy := g.input.WheelX, g.input.WheelY; wx != 0 || wy != 0 {
		// Scrolling up pushes the shapes up; screen y grows downward.
		dir := cp.Vector{X: wx, Y: -wy}
		g.world.ApplyUniformForce(dir, g.tun.WheelForce*math.Hypot(wx, wy))
	}
}

// runAttract steps the idle script once no input has arrived for the
// configured stretch. Any real input resets the script state so every idle
// period starts its choreography fresh.
func (g *Game) runAttract() {
	if g.input.Active {
		if g.wasIdle {
			g.idle.Reset()
		}
		g.wasIdle = false
		g.idleTime = 0
		g.idleAccum = 0
		return
	}
	g.idleTime += tickDt
	if g.idleTime < g.tun.IdleSeconds {
		return
	}
	g.wasIdle = true
	g.idleAccum += tickDt
	if g.idleAccum >= attractStep {
		g.idleAccum = 0
		if err := g.idle.Step(attractStep); err != nil {
			log.Printf("attract script error: %v", err)
		}
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watcher error: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	if tuning.IsScript(path) {
		if g.attractPath == "" {
			return
		}
		data, err := os.ReadFile(g.attractPath)
		if err != nil {
			log.Printf("attract reload failed: %v", err)
			return
		}
		if err := g.idle.SetScript(data); err != nil {
			log.Printf("attract reload failed, keeping old script: %v", err)
			return
		}
		log.Printf("attract script reloaded")
		return
	}

	if g.tuningPath == "" {
		return
	}
	t, err := tuning.Load(g.tuningPath)
	if err != nil {
		log.Printf("tuning reload failed, keeping old values: %v", err)
		return
	}
	g.applyTuning(t)
	log.Printf("tuning reloaded")
}

func (g *Game) applyTuning(t tuning.Tuning) {
	g.tun = t
	g.world.SetConfig(t.SimConfig(float64(g.width), float64(g.height)))
	g.input.SetSpawnSizes(t.SpawnSizeMin, t.SpawnSizeMax)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, rs := range g.world.Snapshot() {
		g.sprites.Draw(screen, rs)
	}
	if v, ok := g.world.ActiveVortex(); ok {
		drawVortex(screen, v)
	}
	g.effects.Draw(screen)

	if g.paused {
		if g.pauseUI != nil {
			g.pauseUI.Draw(screen)
		}
	} else {
		drawCursor(screen)
	}

	if g.screenshotPending {
		g.screenshotPending = false
		captureToClipboard(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.world.SetConfig(g.tun.SimConfig(float64(outsideWidth), float64(outsideHeight)))
	}
	return outsideWidth, outsideHeight
}

func watchDirs(paths ...string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
