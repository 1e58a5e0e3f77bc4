// Package collision decides whether a fixed actor may take one step against a set of
// obstacles.
//
// The actor never moves. Instead each obstacle is probed at the position it would
// occupy after the world scrolls one step, which is the same as asking whether the
// actor would overlap it after moving.
package collision

import "chosenoffset.com/tilewalk/internal/core/geom"

// Probe returns r shifted by speed against the travel direction d.
func Probe(r geom.Rect, d geom.Direction, speed float64) geom.Rect {
	dx, dy := geom.Delta(d.Opposite())
	return r.Translate(dx*speed, dy*speed)
}

// Blocker returns the index of the first obstacle that would overlap actor after a
// step of speed in direction d.
func Blocker(actor geom.Rectangle, d geom.Direction, speed float64, obstacles []geom.Rectangle) (int, bool) {
	a := actor.Bounds()
	for i, o := range obstacles {
		if geom.Overlaps(a, Probe(o.Bounds(), d, speed)) {
			return i, true
		}
	}
	return -1, false
}

// CanMove reports whether actor may step in direction d. DirNone never moves.
func CanMove(actor geom.Rectangle, d geom.Direction, speed float64, obstacles []geom.Rectangle) bool {
	if d == geom.DirNone {
		return false
	}
	_, blocked := Blocker(actor, d, speed, obstacles)
	return !blocked
}
