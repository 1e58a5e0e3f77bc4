// Package input holds the movement intent shared between event handlers and the
// frame loop. Handlers only write flags here; they never touch world positions.
package input

import (
	"math"

	"chosenoffset.com/tilewalk/internal/core/geom"
)

// TouchDeadZone is how far a drag must travel along its dominant axis before it
// counts as a direction.
const TouchDeadZone = 20

// State tracks four pressed flags and the most recently pressed direction.
type State struct {
	pressed [len(geom.Directions)]bool
	lastKey geom.Direction

	touchStart geom.Point
	touching   bool
}

// New returns an empty input state.
func New() *State {
	return &State{}
}

func index(d geom.Direction) (int, bool) {
	for i, dir := range geom.Directions {
		if dir == d {
			return i, true
		}
	}
	return 0, false
}

// SetPressed sets the flag for d. DirNone is ignored.
func (s *State) SetPressed(d geom.Direction, pressed bool) {
	if i, ok := index(d); ok {
		s.pressed[i] = pressed
	}
}

// Pressed reports the flag for d.
func (s *State) Pressed(d geom.Direction) bool {
	i, ok := index(d)
	return ok && s.pressed[i]
}

// SetLastKey records d as the most recent press.
func (s *State) SetLastKey(d geom.Direction) {
	s.lastKey = d
}

// LastKey returns the most recent press.
func (s *State) LastKey() geom.Direction {
	return s.lastKey
}

// ClearAll releases every direction. The last key is kept.
func (s *State) ClearAll() {
	s.pressed = [len(geom.Directions)]bool{}
}

// KeyDown handles a key press for d.
func (s *State) KeyDown(d geom.Direction) {
	if d == geom.DirNone {
		return
	}
	s.SetPressed(d, true)
	s.SetLastKey(d)
}

// KeyUp handles a key release for d. The last key is left alone so an earlier key
// still held does not take over until it is pressed again.
func (s *State) KeyUp(d geom.Direction) {
	s.SetPressed(d, false)
}

// TouchStart records where a drag began.
func (s *State) TouchStart(x, y float64) {
	s.touchStart = geom.Point{X: x, Y: y}
	s.touching = true
}

// TouchMove turns the drag from the start point into at most one pressed direction.
func (s *State) TouchMove(x, y float64) {
	if !s.touching {
		return
	}
	s.ClearAll()

	dx := x - s.touchStart.X
	dy := y - s.touchStart.Y

	var d geom.Direction
	if math.Abs(dx) > math.Abs(dy) {
		switch {
		case dx > TouchDeadZone:
			d = geom.DirRight
		case dx < -TouchDeadZone:
			d = geom.DirLeft
		}
	} else {
		switch {
		case dy > TouchDeadZone:
			d = geom.DirDown
		case dy < -TouchDeadZone:
			d = geom.DirUp
		}
	}
	s.KeyDown(d)
}

// TouchEnd releases every direction.
func (s *State) TouchEnd() {
	s.touching = false
	s.ClearAll()
}

// Active returns the direction that moves the player this frame: the last key, if
// it is still held.
func (s *State) Active() (geom.Direction, bool) {
	if s.lastKey == geom.DirNone || !s.Pressed(s.lastKey) {
		return geom.DirNone, false
	}
	return s.lastKey, true
}

// KeyDirection maps the movement keys to directions.
func KeyDirection(key rune) geom.Direction {
	switch key {
	case 'w', 'W':
		return geom.DirUp
	case 'a', 'A':
		return geom.DirLeft
	case 's', 'S':
		return geom.DirDown
	case 'd', 'D':
		return geom.DirRight
	}
	return geom.DirNone
}
