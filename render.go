package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/shapesplash/common"
	"github.com/milk9111/shapesplash/sim"
)

// spriteSize is the pixel size of the pre-rendered white shape masks. They
// are tinted per object with a color scale and scaled/rotated with a GeoM,
// so one mask per kind covers every size and color.
const spriteSize = 128

// SpriteBank owns the prebuilt shape masks and lazily built letter glyphs.
type SpriteBank struct {
	shapes map[sim.Shape]*ebiten.Image
	glyphs map[rune]*ebiten.Image
	face   ebtext.Face
}

func NewSpriteBank() *SpriteBank {
	b := &SpriteBank{
		shapes: make(map[sim.Shape]*ebiten.Image),
		glyphs: make(map[rune]*ebiten.Image),
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
	}
	for _, kind := range []sim.Shape{sim.ShapeCircle, sim.ShapeSquare, sim.ShapeStar, sim.ShapeHeart, sim.ShapeTriangle} {
		b.shapes[kind] = renderMask(kind)
	}
	return b
}

// Draw renders one snapshot entry.
func (b *SpriteBank) Draw(dst *ebiten.Image, rs sim.RenderState) {
	src := b.imageFor(rs)
	if src == nil {
		return
	}
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(-float64(sw)/2, -float64(sh)/2)
	// Fit the mask's larger side to the object's diameter.
	scale := rs.Radius * 2 / float64(max(sw, sh))
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(rs.Rotation * math.Pi / 180)
	op.GeoM.Translate(rs.Pos.X, rs.Pos.Y)
	op.ColorScale.ScaleWithColor(rs.Color)
	dst.DrawImage(src, op)
}

func (b *SpriteBank) imageFor(rs sim.RenderState) *ebiten.Image {
	if rs.Shape == sim.ShapeLetter {
		return b.glyph(rs.Glyph)
	}
	return b.shapes[rs.Shape]
}

// glyph returns a white image of the rune, built on first use. The bitmap
// face comes out chunky once scaled up, which suits the toy look.
func (b *SpriteBank) glyph(r rune) *ebiten.Image {
	if r == 0 {
		r = '?'
	}
	if img, ok := b.glyphs[r]; ok {
		return img
	}
	s := string(r)
	w, h := ebtext.Measure(s, b.face, 0)
	if w < 1 || h < 1 {
		w, h = 8, 13
	}
	img := ebiten.NewImage(int(math.Ceil(w)), int(math.Ceil(h)))
	op := &ebtext.DrawOptions{}
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(img, s, b.face, op)
	b.glyphs[r] = img
	return img
}

// renderMask rasterizes one shape kind as a white mask with 2x2
// supersampled edges.
func renderMask(kind sim.Shape) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, spriteSize, spriteSize))
	half := float64(spriteSize) / 2
	for py := 0; py < spriteSize; py++ {
		for px := 0; px < spriteSize; px++ {
			hits := 0
			for _, off := range [4][2]float64{{0.25, 0.25}, {0.75, 0.25}, {0.25, 0.75}, {0.75, 0.75}} {
				x := (float64(px) + off[0] - half) / half
				y := (float64(py) + off[1] - half) / half
				if insideShape(kind, x, y) {
					hits++
				}
			}
			if hits == 0 {
				continue
			}
			a := uint8(hits * 255 / 4)
			img.SetRGBA(px, py, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return ebiten.NewImageFromImage(img)
}

// insideShape tests a point in the shape's unit square, x and y in [-1, 1],
// y growing downward.
func insideShape(kind sim.Shape, x, y float64) bool {
	switch kind {
	case sim.ShapeCircle:
		return x*x+y*y <= 1

	case sim.ShapeSquare:
		const corner = 0.35
		ax, ay := math.Abs(x), math.Abs(y)
		if ax > 1 || ay > 1 {
			return false
		}
		if ax > 1-corner && ay > 1-corner {
			dx, dy := ax-(1-corner), ay-(1-corner)
			return dx*dx+dy*dy <= corner*corner
		}
		return true

	case sim.ShapeTriangle:
		return insidePolygon(trianglePoints, x, y)

	case sim.ShapeStar:
		return insidePolygon(starPoints, x, y)

	case sim.ShapeHeart:
		// Classic implicit heart curve, flipped because screen y points
		// down, nudged so it centers in the mask.
		hx := x * 1.25
		hy := -y*1.25 + 0.1
		c := hx*hx + hy*hy - 1
		return c*c*c-hx*hx*hy*hy*hy <= 0
	}
	return false
}

var trianglePoints = [][2]float64{
	{0, -1},
	{0.93, 0.75},
	{-0.93, 0.75},
}

// starPoints is a five-point star: outer and inner vertices alternating.
var starPoints = func() [][2]float64 {
	const inner = 0.45
	pts := make([][2]float64, 10)
	for k := range pts {
		ang := -math.Pi/2 + float64(k)*math.Pi/5
		r := 1.0
		if k%2 == 1 {
			r = inner
		}
		pts[k] = [2]float64{r * math.Cos(ang), r * math.Sin(ang)}
	}
	return pts
}()

// insidePolygon is an even-odd ray cast.
func insidePolygon(pts [][2]float64, x, y float64) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		xi, yi := pts[i][0], pts[i][1]
		xj, yj := pts[j][0], pts[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// drawVortex renders the active field as fading concentric rings that
// collapse toward the center, matching the inward pull the field applies.
func drawVortex(dst *ebiten.Image, v sim.Vortex) {
	strength := v.Strength()
	if strength <= 0 {
		return
	}
	const rings = 3
	for i := 0; i < rings; i++ {
		phase := math.Mod(v.Elapsed*0.6+float64(i)/rings, 1)
		r := common.Lerp(v.Radius, v.Radius*0.1, phase)
		alpha := strength * phase * 0.5
		clr := color.RGBA{
			R: uint8(200 * alpha),
			G: uint8(220 * alpha),
			B: uint8(255 * alpha),
			A: uint8(255 * alpha),
		}
		vector.StrokeCircle(dst, float32(v.Center.X), float32(v.Center.Y), float32(r), 2, clr, true)
	}
}

// drawCursor replaces the hidden OS cursor with a soft dot.
func drawCursor(dst *ebiten.Image) {
	cx, cy := ebiten.CursorPosition()
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), 5, color.RGBA{R: 255, G: 255, B: 255, A: 110}, true)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), 2, color.RGBA{R: 255, G: 255, B: 255, A: 220}, true)
}
