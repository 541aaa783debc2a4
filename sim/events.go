package sim

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// EventKind tags a core event for the visual-effects layer.
type EventKind int

const (
	// EventSpawn fires when an object is created.
	EventSpawn EventKind = iota
	// EventPush fires when a spawn applies its outward impulse.
	EventPush
	// EventVortex fires when a vortex field is triggered.
	EventVortex
)

// Event tells the rendering layer that something happened at a point, so it
// can play a transient effect there. Events carry no physics state and
// dropping them changes nothing in the simulation.
type Event struct {
	Kind  EventKind
	Pos   cp.Vector
	Size  float64
	Color color.RGBA
}

func (w *World) emit(ev Event) {
	w.events = append(w.events, ev)
}

// DrainEvents returns the events accumulated since the last drain and
// resets the queue. Meant to be called once per frame by the effects layer.
func (w *World) DrainEvents() []Event {
	if len(w.events) == 0 {
		return nil
	}
	out := w.events
	w.events = nil
	return out
}
