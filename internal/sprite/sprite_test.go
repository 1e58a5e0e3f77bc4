package sprite

import (
	"image"
	"testing"

	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/render/rendertest"
)

func testSheets() map[geom.Direction]Sheet {
	return map[geom.Direction]Sheet{
		geom.DirUp:    {Image: rendertest.NewImage("up", 192, 68), Frames: 4},
		geom.DirDown:  {Image: rendertest.NewImage("down", 192, 68), Frames: 4},
		geom.DirLeft:  {Image: rendertest.NewImage("left", 192, 68), Frames: 4},
		geom.DirRight: {Image: rendertest.NewImage("right", 192, 68), Frames: 4},
	}
}

func TestSizeIsOneDownFrame(t *testing.T) {
	a, err := NewAnimated(testSheets(), 10)
	if err != nil {
		t.Fatalf("NewAnimated: %v", err)
	}
	w, h := a.Size()
	if w != 48 || h != 68 {
		t.Fatalf("Size = %vx%v, want 48x68", w, h)
	}
}

func TestAdvanceOnlyWhileMoving(t *testing.T) {
	a, _ := NewAnimated(testSheets(), 10)

	for i := 0; i < 50; i++ {
		a.Advance(false)
	}
	if a.Frame() != 0 {
		t.Fatalf("idle sprite animated to frame %d", a.Frame())
	}

	for i := 0; i < 9; i++ {
		a.Advance(true)
	}
	if a.Frame() != 0 {
		t.Fatalf("frame changed before hold elapsed: %d", a.Frame())
	}
	a.Advance(true)
	if a.Frame() != 1 {
		t.Fatalf("frame = %d after 10 ticks, want 1", a.Frame())
	}

	// Stopping keeps the current frame.
	a.Advance(false)
	if a.Frame() != 1 {
		t.Fatalf("stopping reset frame to %d", a.Frame())
	}

	for i := 0; i < 30; i++ {
		a.Advance(true)
	}
	if a.Frame() != 0 {
		t.Fatalf("frame = %d after wrapping, want 0", a.Frame())
	}
}

func TestDrawUsesFacingSheetAndFrame(t *testing.T) {
	a, _ := NewAnimated(testSheets(), 1)
	a.Advance(true)
	a.Advance(true)

	screen := rendertest.NewImage("screen", 800, 600)
	a.Draw(screen, geom.DirLeft, geom.Point{X: 224, Y: 199})

	if len(screen.Draws) != 1 {
		t.Fatalf("expected one draw, got %d", len(screen.Draws))
	}
	d := screen.Draws[0]
	if d.Src.Name != "left" {
		t.Errorf("drew %q sheet, want left", d.Src.Name)
	}
	if d.Region != image.Rect(96, 0, 144, 68) {
		t.Errorf("region = %v, want frame 2", d.Region)
	}
	if d.X != 224 || d.Y != 199 {
		t.Errorf("drawn at (%v,%v)", d.X, d.Y)
	}
}

func TestNewAnimatedErrors(t *testing.T) {
	noDown := testSheets()
	delete(noDown, geom.DirDown)

	mismatch := testSheets()
	mismatch[geom.DirUp] = Sheet{Image: rendertest.NewImage("up", 96, 68), Frames: 2}

	tests := []struct {
		name   string
		sheets map[geom.Direction]Sheet
		hold   int
	}{
		{"missing down", noDown, 10},
		{"frame mismatch", mismatch, 10},
		{"zero hold", testSheets(), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewAnimated(tc.sheets, tc.hold); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
