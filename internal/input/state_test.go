package input

import (
	"testing"

	"chosenoffset.com/tilewalk/internal/core/geom"
)

func TestKeyDownSetsLastKey(t *testing.T) {
	s := New()
	s.KeyDown(geom.DirUp)
	if d, ok := s.Active(); !ok || d != geom.DirUp {
		t.Fatalf("Active = %v, %v; want up", d, ok)
	}
	s.KeyDown(geom.DirLeft)
	if d, ok := s.Active(); !ok || d != geom.DirLeft {
		t.Fatalf("Active = %v, %v; want left", d, ok)
	}
}

func TestKeyUpKeepsLastKey(t *testing.T) {
	s := New()
	s.KeyDown(geom.DirUp)
	s.KeyDown(geom.DirRight)
	s.KeyUp(geom.DirRight)

	if s.LastKey() != geom.DirRight {
		t.Fatalf("last key changed on release: %v", s.LastKey())
	}
	if !s.Pressed(geom.DirUp) {
		t.Fatal("up should still be held")
	}
	// Up is held but is not the last key, so nothing moves.
	if d, ok := s.Active(); ok {
		t.Fatalf("expected no active direction, got %v", d)
	}

	s.KeyDown(geom.DirUp)
	if d, ok := s.Active(); !ok || d != geom.DirUp {
		t.Fatalf("pressing up again should resume, got %v, %v", d, ok)
	}
}

func TestAtMostOneActiveDirection(t *testing.T) {
	s := New()
	for _, d := range geom.Directions {
		s.KeyDown(d)
	}
	d, ok := s.Active()
	if !ok || d != geom.DirRight {
		t.Fatalf("Active = %v, %v; want right", d, ok)
	}
}

func TestSetPressedIgnoresNone(t *testing.T) {
	s := New()
	s.SetPressed(geom.DirNone, true)
	s.SetLastKey(geom.DirNone)
	if _, ok := s.Active(); ok {
		t.Fatal("DirNone must never be active")
	}
	if s.Pressed(geom.DirNone) {
		t.Fatal("DirNone must never be pressed")
	}
}

func TestClearAll(t *testing.T) {
	s := New()
	s.KeyDown(geom.DirDown)
	s.KeyDown(geom.DirLeft)
	s.ClearAll()
	for _, d := range geom.Directions {
		if s.Pressed(d) {
			t.Errorf("%v still pressed after ClearAll", d)
		}
	}
	if s.LastKey() != geom.DirLeft {
		t.Fatalf("ClearAll should keep last key, got %v", s.LastKey())
	}
}

func TestTouchDrag(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   geom.Direction
	}{
		{name: "right", dx: 30, dy: 5, want: geom.DirRight},
		{name: "left", dx: -25, dy: 10, want: geom.DirLeft},
		{name: "down", dx: 3, dy: 40, want: geom.DirDown},
		{name: "up", dx: -3, dy: -21, want: geom.DirUp},
		{name: "dead zone horizontal", dx: 20, dy: 1, want: geom.DirNone},
		{name: "dead zone vertical", dx: 0, dy: -20, want: geom.DirNone},
		{name: "tie goes vertical", dx: 30, dy: 30, want: geom.DirDown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			s.TouchStart(100, 100)
			s.TouchMove(100+tc.dx, 100+tc.dy)

			for _, d := range geom.Directions {
				if s.Pressed(d) != (d == tc.want) {
					t.Errorf("%v pressed = %v", d, s.Pressed(d))
				}
			}
			got, ok := s.Active()
			if tc.want == geom.DirNone {
				if ok {
					t.Fatalf("expected no active direction, got %v", got)
				}
				return
			}
			if !ok || got != tc.want || s.LastKey() != tc.want {
				t.Fatalf("Active = %v, %v, last key %v; want %v", got, ok, s.LastKey(), tc.want)
			}
		})
	}
}

func TestTouchMoveClearsKeyboardFlags(t *testing.T) {
	s := New()
	s.KeyDown(geom.DirUp)
	s.TouchStart(0, 0)
	s.TouchMove(30, 5)
	if s.Pressed(geom.DirUp) {
		t.Fatal("touch move should clear keyboard flags")
	}
	if d, _ := s.Active(); d != geom.DirRight {
		t.Fatalf("Active = %v, want right", d)
	}
}

func TestTouchEndClearsFlags(t *testing.T) {
	s := New()
	s.TouchStart(0, 0)
	s.TouchMove(0, 50)
	s.TouchEnd()
	if _, ok := s.Active(); ok {
		t.Fatal("touch end should stop movement")
	}
	// Moves after the touch ended are ignored.
	s.TouchMove(0, 100)
	if _, ok := s.Active(); ok {
		t.Fatal("move without an active touch should not press anything")
	}
}

func TestKeyDirection(t *testing.T) {
	tests := map[rune]geom.Direction{
		'w': geom.DirUp,
		'a': geom.DirLeft,
		's': geom.DirDown,
		'd': geom.DirRight,
		'D': geom.DirRight,
		'x': geom.DirNone,
	}
	for key, want := range tests {
		if got := KeyDirection(key); got != want {
			t.Errorf("KeyDirection(%q) = %v, want %v", key, got, want)
		}
	}
}
