// Package geom holds the value types shared by collision, world and rendering code.
package geom

// Point represents a 2D point in world or screen space
type Point struct {
	X, Y float64
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned rectangle. It is a value: every operation returns a new Rect.
type Rect struct {
	Pos  Point
	W, H float64
}

// NewRect creates a rectangle with its top-left corner at (x, y).
func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: Point{X: x, Y: y}, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Pos.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Pos.Y + r.H
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.Pos = r.Pos.Add(Point{X: dx, Y: dy})
	return r
}

// Bounds lets a bare Rect satisfy Rectangle.
func (r Rect) Bounds() Rect {
	return r
}

// Rectangle is implemented by anything that occupies an axis-aligned box:
// the player, obstacles and sprites.
type Rectangle interface {
	Bounds() Rect
}

// Overlaps reports whether a and b touch or intersect. Edges are inclusive, so two
// rectangles sharing a border overlap.
func Overlaps(a, b Rect) bool {
	return a.Pos.X+a.W >= b.Pos.X &&
		a.Pos.X <= b.Pos.X+b.W &&
		a.Pos.Y+a.H >= b.Pos.Y &&
		a.Pos.Y <= b.Pos.Y+b.H
}
