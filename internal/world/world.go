// Package world owns every entity that moves when the camera follows the player.
package world

import "chosenoffset.com/tilewalk/internal/core/geom"

// Body is a rectangle whose position shifts when the world scrolls.
type Body struct {
	Pos  geom.Point
	W, H float64
}

// NewBody creates a body from a rectangle.
func NewBody(r geom.Rect) *Body {
	return &Body{Pos: r.Pos, W: r.W, H: r.H}
}

// Bounds implements geom.Rectangle.
func (b *Body) Bounds() geom.Rect {
	return geom.Rect{Pos: b.Pos, W: b.W, H: b.H}
}

// Shift moves the body by (dx, dy).
func (b *Body) Shift(dx, dy float64) {
	b.Pos.X += dx
	b.Pos.Y += dy
}

// Movable is any entity the scroller may move.
type Movable interface {
	geom.Rectangle
	Shift(dx, dy float64)
}

// World holds the background, the obstacles and the foreground. The obstacle set is
// fixed at construction.
type World struct {
	Background *Body
	Foreground *Body

	obstacles []*Body
	colliders []geom.Rectangle
	movables  []Movable
}

// New builds a world from its layers. Background and foreground may be nil for
// frontends that draw no images.
func New(background, foreground *Body, obstacles []geom.Rect) *World {
	w := &World{
		Background: background,
		Foreground: foreground,
		obstacles:  make([]*Body, len(obstacles)),
		colliders:  make([]geom.Rectangle, len(obstacles)),
	}
	for i, r := range obstacles {
		b := NewBody(r)
		w.obstacles[i] = b
		w.colliders[i] = b
	}

	if background != nil {
		w.movables = append(w.movables, background)
	}
	for _, b := range w.obstacles {
		w.movables = append(w.movables, b)
	}
	if foreground != nil {
		w.movables = append(w.movables, foreground)
	}
	return w
}

// Obstacles returns the colliders in scan order. Callers must not modify the slice.
func (w *World) Obstacles() []geom.Rectangle {
	return w.colliders
}

// ObstacleBodies returns the obstacle bodies in draw order.
func (w *World) ObstacleBodies() []*Body {
	return w.obstacles
}

// Movables returns every entity that Scroll shifts, background first.
func (w *World) Movables() []Movable {
	return w.movables
}

// Scroll shifts every movable by speed against the player's travel direction d,
// so the world slides under a player that stays put.
func (w *World) Scroll(d geom.Direction, speed float64) {
	dx, dy := geom.Delta(d.Opposite())
	sx, sy := dx*speed, dy*speed
	for _, m := range w.movables {
		m.Shift(sx, sy)
	}
}

// Offset returns how far the world has scrolled, measured at the background. Worlds
// without a background report the first obstacle's position.
func (w *World) Offset() geom.Point {
	switch {
	case w.Background != nil:
		return w.Background.Pos
	case len(w.obstacles) > 0:
		return w.obstacles[0].Pos
	}
	return geom.Point{}
}
