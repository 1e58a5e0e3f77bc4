package game

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"chosenoffset.com/tilewalk/internal/config"
	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/input"
	"chosenoffset.com/tilewalk/internal/world"
)

func newTestLoop(obstacles ...geom.Rect) *Loop {
	bg := world.NewBody(geom.NewRect(-776, -600, 3360, 1920))
	fg := world.NewBody(geom.NewRect(-776, -600, 3360, 1920))
	return &Loop{
		Input:  input.New(),
		World:  world.New(bg, fg, obstacles),
		Player: world.NewPlayer(1024, 576, 48, 68),
		Speed:  FixedSpeed(3),
		Logger: log.New(io.Discard),
	}
}

func movablePositions(w *world.World) []geom.Point {
	var out []geom.Point
	for _, m := range w.Movables() {
		out = append(out, m.Bounds().Pos)
	}
	return out
}

func TestStepIdle(t *testing.T) {
	l := newTestLoop()
	before := movablePositions(l.World)

	res := l.Step(1024, 576)
	if res.Phase != PhaseIdle || res.Moved || l.Player.Moving {
		t.Fatalf("unexpected result %+v, moving=%v", res, l.Player.Moving)
	}
	for i, p := range movablePositions(l.World) {
		if p != before[i] {
			t.Fatalf("idle step moved movable %d", i)
		}
	}
}

func TestStepRightScrollsEveryMovableLeft(t *testing.T) {
	l := newTestLoop(geom.NewRect(2000, 2000, 48, 48))
	before := movablePositions(l.World)

	l.Input.KeyDown(geom.DirRight)
	res := l.Step(1024, 576)

	if !res.Moved || res.Phase != PhaseMoving || res.Dir != geom.DirRight || res.Speed != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	if l.Player.Facing != geom.DirRight || !l.Player.Moving {
		t.Fatalf("player not facing right and moving: %+v", l.Player)
	}
	for i, p := range movablePositions(l.World) {
		if p.X != before[i].X-3 || p.Y != before[i].Y {
			t.Errorf("movable %d at %v, want x-3 from %v", i, p, before[i])
		}
	}
}

func TestStepBlockedOnePixelBelow(t *testing.T) {
	l := newTestLoop()
	p := l.Player.Rect
	l = newTestLoop(geom.NewRect(p.Pos.X, p.Bottom()+1, 48, 48))
	before := movablePositions(l.World)

	l.Input.KeyDown(geom.DirDown)
	res := l.Step(1024, 576)

	if !res.Blocked || res.Moved || res.Blocker != 0 {
		t.Fatalf("expected a block on obstacle 0, got %+v", res)
	}
	if !l.Player.Moving || l.Player.Facing != geom.DirDown {
		t.Fatalf("blocked player should still face and walk down: %+v", l.Player)
	}
	for i, pos := range movablePositions(l.World) {
		if pos != before[i] {
			t.Fatalf("blocked step moved movable %d", i)
		}
	}

	// Turning away is instant and unblocked.
	l.Input.KeyDown(geom.DirUp)
	if res := l.Step(1024, 576); !res.Moved || res.Dir != geom.DirUp {
		t.Fatalf("turning away should move up, got %+v", res)
	}
}

func TestStepTwoKeysWithoutLastKeyStays(t *testing.T) {
	l := newTestLoop()
	l.Input.KeyDown(geom.DirUp)
	l.Input.KeyDown(geom.DirRight)
	l.Input.KeyUp(geom.DirRight)

	res := l.Step(1024, 576)
	if res.Phase != PhaseIdle || res.Moved {
		t.Fatalf("up is held but not the last key, expected idle, got %+v", res)
	}
}

func TestPhaseTransitions(t *testing.T) {
	l := newTestLoop()
	if l.Phase() != PhaseIdle {
		t.Fatal("loop should start idle")
	}
	l.Input.KeyDown(geom.DirLeft)
	l.Step(800, 600)
	if l.Phase() != PhaseMoving {
		t.Fatal("expected moving")
	}
	l.Input.KeyUp(geom.DirLeft)
	l.Step(800, 600)
	if l.Phase() != PhaseIdle || l.Player.Moving {
		t.Fatal("expected idle after release")
	}
	if l.Player.Facing != geom.DirLeft {
		t.Fatalf("facing should persist after stopping, got %v", l.Player.Facing)
	}
}

func TestNoOverlapAfterManySteps(t *testing.T) {
	// A corridor of walls around the player; walking into them must never
	// leave the player overlapping one.
	p := newTestLoop().Player.Rect
	var walls []geom.Rect
	for i := -3; i <= 3; i++ {
		walls = append(walls,
			geom.NewRect(p.Pos.X+float64(i)*48, p.Pos.Y-100, 48, 48),
			geom.NewRect(p.Pos.X+float64(i)*48, p.Bottom()+50, 48, 48),
			geom.NewRect(p.Pos.X-130, p.Pos.Y+float64(i)*48, 48, 48),
			geom.NewRect(p.Right()+90, p.Pos.Y+float64(i)*48, 48, 48),
		)
	}
	l := newTestLoop(walls...)
	for _, d := range geom.Directions {
		l.Input.KeyDown(d)
		for i := 0; i < 100; i++ {
			l.Step(1024, 576)
			for _, o := range l.World.Obstacles() {
				if geom.Overlaps(l.Player.Bounds(), o.Bounds()) {
					t.Fatalf("walking %v overlapped %v", d, o.Bounds())
				}
			}
		}
		l.Input.KeyUp(d)
	}
}

func TestSpeedPolicies(t *testing.T) {
	if got := FixedSpeed(3)(1920, 1080); got != 3 {
		t.Errorf("fixed speed = %v", got)
	}
	resp := ResponsiveSpeed(0.005)
	if got := resp(1024, 576); math.Abs(got-2.88) > 1e-9 {
		t.Errorf("responsive speed = %v, want 2.88", got)
	}
	// Resizing changes the next step.
	if got := resp(400, 800); math.Abs(got-2) > 1e-9 {
		t.Errorf("responsive speed after resize = %v, want 2", got)
	}
}

func TestSpeedFromConfig(t *testing.T) {
	m := config.DefaultConfig().Movement
	if got := SpeedFromConfig(m, "linux")(1000, 1000); got != m.FixedSpeed {
		t.Errorf("desktop speed = %v", got)
	}
	if got := SpeedFromConfig(m, "android")(1000, 1000); math.Abs(got-5) > 1e-9 {
		t.Errorf("mobile speed = %v, want 5", got)
	}
}

func TestResponsiveSpeedUsedByStep(t *testing.T) {
	l := newTestLoop()
	l.Speed = ResponsiveSpeed(0.01)
	start := l.World.Offset()
	l.Input.KeyDown(geom.DirUp)
	res := l.Step(300, 500)
	if res.Speed != 3 || l.World.Offset().Y != start.Y+3 {
		t.Fatalf("speed %v, offset %v", res.Speed, l.World.Offset())
	}
}
