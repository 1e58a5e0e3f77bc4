package world

import (
	"math/rand"
	"testing"

	"chosenoffset.com/tilewalk/internal/core/collision"
	"chosenoffset.com/tilewalk/internal/core/geom"
)

func newTestWorld(obstacles ...geom.Rect) *World {
	bg := NewBody(geom.NewRect(-776, -600, 3360, 1920))
	fg := NewBody(geom.NewRect(-776, -600, 3360, 1920))
	return New(bg, fg, obstacles)
}

func positions(w *World) []geom.Point {
	var out []geom.Point
	for _, m := range w.Movables() {
		out = append(out, m.Bounds().Pos)
	}
	return out
}

func TestMovablesOrder(t *testing.T) {
	w := newTestWorld(geom.NewRect(0, 0, 48, 48), geom.NewRect(48, 0, 48, 48))
	movables := w.Movables()
	if len(movables) != 4 {
		t.Fatalf("expected 4 movables, got %d", len(movables))
	}
	if movables[0] != Movable(w.Background) || movables[3] != Movable(w.Foreground) {
		t.Fatal("background must come first and foreground last")
	}
	if len(w.Obstacles()) != 2 || len(w.ObstacleBodies()) != 2 {
		t.Fatal("obstacle count changed during construction")
	}
}

func TestScrollRightShiftsWorldLeft(t *testing.T) {
	w := newTestWorld(geom.NewRect(500, 500, 48, 48))
	before := positions(w)
	w.Scroll(geom.DirRight, 3)
	after := positions(w)
	for i := range before {
		if after[i].X != before[i].X-3 || after[i].Y != before[i].Y {
			t.Errorf("movable %d moved from %v to %v, want x-3", i, before[i], after[i])
		}
	}
}

func TestScrollDirections(t *testing.T) {
	tests := []struct {
		dir    geom.Direction
		wantDX float64
		wantDY float64
	}{
		{geom.DirUp, 0, 4},
		{geom.DirDown, 0, -4},
		{geom.DirLeft, 4, 0},
		{geom.DirRight, -4, 0},
		{geom.DirNone, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			w := newTestWorld()
			start := w.Offset()
			w.Scroll(tc.dir, 4)
			got := w.Offset()
			if got.X-start.X != tc.wantDX || got.Y-start.Y != tc.wantDY {
				t.Fatalf("offset moved by (%v,%v), want (%v,%v)", got.X-start.X, got.Y-start.Y, tc.wantDX, tc.wantDY)
			}
		})
	}
}

func TestObstaclesTrackScroll(t *testing.T) {
	w := newTestWorld(geom.NewRect(10, 10, 5, 5))
	w.Scroll(geom.DirUp, 2)
	if got := w.Obstacles()[0].Bounds().Pos; got != (geom.Point{X: 10, Y: 12}) {
		t.Fatalf("collider did not follow its body: %v", got)
	}
}

func TestNoOverlapAfterApprovedStep(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	player := NewPlayer(1024, 576, 48, 68)

	for trial := 0; trial < 200; trial++ {
		var rects []geom.Rect
		for i := 0; i < 30; i++ {
			rects = append(rects, geom.NewRect(
				player.Rect.Pos.X+float64(rng.Intn(400)-200),
				player.Rect.Pos.Y+float64(rng.Intn(400)-200),
				48, 48,
			))
		}
		w := newTestWorld(rects...)
		d := geom.Directions[rng.Intn(len(geom.Directions))]
		speed := float64(1 + rng.Intn(6))

		if !collision.CanMove(player, d, speed, w.Obstacles()) {
			continue
		}
		w.Scroll(d, speed)
		for _, o := range w.Obstacles() {
			if geom.Overlaps(player.Bounds(), o.Bounds()) {
				t.Fatalf("trial %d: approved %v step left player overlapping %v", trial, d, o.Bounds())
			}
		}
	}
}

func TestWorldWithoutImages(t *testing.T) {
	w := New(nil, nil, []geom.Rect{geom.NewRect(3, 4, 1, 1)})
	if len(w.Movables()) != 1 {
		t.Fatalf("expected only the obstacle to be movable, got %d", len(w.Movables()))
	}
	if w.Offset() != (geom.Point{X: 3, Y: 4}) {
		t.Fatalf("offset = %v", w.Offset())
	}
	if New(nil, nil, nil).Offset() != (geom.Point{}) {
		t.Fatal("empty world should report a zero offset")
	}
}

func TestPlayerAnchor(t *testing.T) {
	p := NewPlayer(1024, 600, 48, 68)
	if p.Rect.Pos != (geom.Point{X: 224, Y: 199}) {
		t.Fatalf("anchor = %v", p.Rect.Pos)
	}
	if p.Facing != geom.DirDown || p.Moving {
		t.Fatalf("unexpected initial player state: %+v", p)
	}
}
