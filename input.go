package main

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// touchVortexFrames is how long a touch must be held before it becomes a
// vortex instead of just a spawn (~0.6s at 60 TPS).
const touchVortexFrames = 36

// dragSpawnInterval throttles spawn-while-dragging to every few frames so a
// swipe paints a trail instead of a solid blob.
const dragSpawnInterval = 5

// SpawnRequest is one input-driven spawn for this frame.
type SpawnRequest struct {
	X, Y  float64
	Size  float64
	Glyph rune // 0 = random shape
	Push  bool
}

// Input polls keyboard, mouse, wheel, and touch each frame and translates
// them into simulation requests. It never touches the world itself; the
// game loop applies the requests so everything mutates on the tick thread.
type Input struct {
	Spawns []SpawnRequest

	VortexRequested  bool
	VortexX, VortexY float64

	WheelX, WheelY float64

	PausePressed      bool
	ClearPressed      bool
	ScreenshotPressed bool
	QuitPressed       bool

	// Active is true when any key, button, wheel, touch, or cursor motion
	// arrived this frame. The attract mode watches it.
	Active bool

	width, height      float64
	sizeMin, sizeMax   float64
	rng                *rand.Rand
	keys               []ebiten.Key
	touches            []ebiten.TouchID
	vortexFired        map[ebiten.TouchID]bool
	dragCooldown       int
	lastCurX, lastCurY int
}

func NewInput(rng *rand.Rand) *Input {
	return &Input{
		rng:         rng,
		sizeMin:     24,
		sizeMax:     64,
		vortexFired: make(map[ebiten.TouchID]bool),
	}
}

// SetBounds tells the input layer the current playfield size, used for
// random spawn positions.
func (i *Input) SetBounds(w, h float64) {
	i.width, i.height = w, h
}

// SetSpawnSizes updates the random spawn size range from the tuning.
func (i *Input) SetSpawnSizes(min, max float64) {
	if min <= 0 || max < min {
		return
	}
	i.sizeMin, i.sizeMax = min, max
}

// Update polls all devices. Call once per tick before applying requests.
func (i *Input) Update() {
	i.Spawns = i.Spawns[:0]
	i.VortexRequested = false
	i.WheelX, i.WheelY = 0, 0
	i.PausePressed = false
	i.ClearPressed = false
	i.ScreenshotPressed = false
	i.QuitPressed = false
	i.Active = false

	i.pollKeyboard()
	i.pollMouse()
	i.pollTouch()
}

func (i *Input) pollKeyboard() {
	i.keys = inpututil.AppendJustPressedKeys(i.keys[:0])
	for _, k := range i.keys {
		i.Active = true
		switch k {
		case ebiten.KeyEscape:
			i.PausePressed = true
		case ebiten.KeyF2:
			i.ScreenshotPressed = true
		case ebiten.KeyF12:
			i.QuitPressed = true
		case ebiten.KeyBackspace, ebiten.KeyDelete:
			i.ClearPressed = true
		default:
			req := SpawnRequest{
				X:    i.rng.Float64() * i.width,
				Y:    i.rng.Float64() * i.height,
				Size: i.randomSize(),
			}
			// Letter keys spawn their own glyph, which is most of the fun
			// of keyboard-smashing.
			if k >= ebiten.KeyA && k <= ebiten.KeyZ {
				req.Glyph = 'A' + rune(k-ebiten.KeyA)
			}
			i.Spawns = append(i.Spawns, req)
		}
	}
}

func (i *Input) pollMouse() {
	cx, cy := ebiten.CursorPosition()
	if cx != i.lastCurX || cy != i.lastCurY {
		i.lastCurX, i.lastCurY = cx, cy
		i.Active = true
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		i.Active = true
		i.dragCooldown = dragSpawnInterval
		i.Spawns = append(i.Spawns, SpawnRequest{
			X: float64(cx), Y: float64(cy), Size: i.randomSize(), Push: true,
		})
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		i.Active = true
		i.dragCooldown--
		if i.dragCooldown <= 0 {
			i.dragCooldown = dragSpawnInterval
			i.Spawns = append(i.Spawns, SpawnRequest{
				X: float64(cx), Y: float64(cy), Size: i.sizeMin + i.rng.Float64()*(i.sizeMax-i.sizeMin)/2,
			})
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		i.Active = true
		i.VortexRequested = true
		i.VortexX, i.VortexY = float64(cx), float64(cy)
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		i.Active = true
		i.WheelX += wx
		i.WheelY += wy
	}
}

func (i *Input) pollTouch() {
	i.touches = inpututil.AppendJustPressedTouchIDs(i.touches[:0])
	for _, id := range i.touches {
		i.Active = true
		x, y := ebiten.TouchPosition(id)
		i.Spawns = append(i.Spawns, SpawnRequest{
			X: float64(x), Y: float64(y), Size: i.randomSize(), Push: true,
		})
	}

	// A long-press becomes a vortex, once per touch.
	i.touches = ebiten.AppendTouchIDs(i.touches[:0])
	for _, id := range i.touches {
		i.Active = true
		if i.vortexFired[id] {
			continue
		}
		if inpututil.TouchPressDuration(id) >= touchVortexFrames {
			i.vortexFired[id] = true
			x, y := ebiten.TouchPosition(id)
			i.VortexRequested = true
			i.VortexX, i.VortexY = float64(x), float64(y)
		}
	}

	i.touches = inpututil.AppendJustReleasedTouchIDs(i.touches[:0])
	for _, id := range i.touches {
		delete(i.vortexFired, id)
	}
}

func (i *Input) randomSize() float64 {
	return i.sizeMin + i.rng.Float64()*(i.sizeMax-i.sizeMin)
}
