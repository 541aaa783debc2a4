package sim

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

// Shape identifies what the renderer draws for an object. The physics core
// never looks past Radius; shape and color are carried through untouched.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeStar
	ShapeLetter
	ShapeHeart
	ShapeTriangle

	shapeKinds
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeStar:
		return "star"
	case ShapeLetter:
		return "letter"
	case ShapeHeart:
		return "heart"
	case ShapeTriangle:
		return "triangle"
	}
	return "unknown"
}

// Palette is the fixed spawn palette. Bright saturated colors read well on
// the dark playfield background.
var Palette = []color.RGBA{
	colornames.Tomato,
	colornames.Orange,
	colornames.Gold,
	colornames.Limegreen,
	colornames.Mediumturquoise,
	colornames.Deepskyblue,
	colornames.Mediumpurple,
	colornames.Hotpink,
	colornames.Springgreen,
	colornames.Coral,
}

// Object is one simulated particle. Velocity is in units per tick; Rotation
// and AngularVel are in degrees.
type Object struct {
	Pos        cp.Vector
	Vel        cp.Vector
	Radius     float64
	Mass       float64
	Rotation   float64
	AngularVel float64

	Shape Shape
	Glyph rune // letter shapes only
	Color color.RGBA
}

// Speed returns the magnitude of the object's velocity.
func (o *Object) Speed() float64 {
	return o.Vel.Length()
}

// RenderState is a read-only view of one object for the rendering layer.
type RenderState struct {
	Pos      cp.Vector
	Rotation float64
	Radius   float64
	Shape    Shape
	Glyph    rune
	Color    color.RGBA
}
