package game

import (
	"math"

	"github.com/charmbracelet/log"

	"chosenoffset.com/tilewalk/internal/config"
	"chosenoffset.com/tilewalk/internal/core/collision"
	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/input"
	"chosenoffset.com/tilewalk/internal/world"
)

// Phase is the movement state of the loop.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMoving
)

func (p Phase) String() string {
	if p == PhaseMoving {
		return "moving"
	}
	return "idle"
}

// SpeedFunc returns the step length in pixels for the current viewport.
type SpeedFunc func(viewW, viewH int) float64

// FixedSpeed steps a constant distance every frame.
func FixedSpeed(v float64) SpeedFunc {
	return func(int, int) float64 { return v }
}

// ResponsiveSpeed steps a fraction of the smaller viewport side, so the walk
// takes the same number of frames across a screen of any size.
func ResponsiveSpeed(factor float64) SpeedFunc {
	return func(w, h int) float64 {
		return math.Min(float64(w), float64(h)) * factor
	}
}

// SpeedFromConfig picks the policy for goos once at startup.
func SpeedFromConfig(m config.MovementConfig, goos string) SpeedFunc {
	if m.Resolve(goos) == config.SpeedResponsive {
		return ResponsiveSpeed(m.ResponsiveFactor)
	}
	return FixedSpeed(m.FixedSpeed)
}

// StepResult reports what one frame did.
type StepResult struct {
	Phase   Phase
	Dir     geom.Direction
	Speed   float64
	Moved   bool
	Blocked bool
	Blocker int // Index into World.Obstacles when Blocked
}

// Loop resolves movement intent against the world once per frame.
type Loop struct {
	Input  *input.State
	World  *world.World
	Player *world.Player
	Speed  SpeedFunc
	Logger *log.Logger

	phase   Phase
	dir     geom.Direction
	blocked bool
}

// Phase returns the phase of the last step.
func (l *Loop) Phase() Phase { return l.phase }

// Step runs one frame: read the active direction, face it, and scroll the
// world unless an obstacle is in the way.
func (l *Loop) Step(viewW, viewH int) StepResult {
	d, ok := l.Input.Active()
	if !ok {
		l.Player.Moving = false
		l.transition(PhaseIdle, geom.DirNone)
		return StepResult{Phase: PhaseIdle, Dir: geom.DirNone}
	}

	l.Player.Moving = true
	l.Player.Facing = d
	l.transition(PhaseMoving, d)

	speed := l.Speed(viewW, viewH)
	res := StepResult{Phase: PhaseMoving, Dir: d, Speed: speed}

	if i, hit := collision.Blocker(l.Player, d, speed, l.World.Obstacles()); hit {
		res.Blocked = true
		res.Blocker = i
		if !l.blocked && l.Logger != nil {
			l.Logger.Debug("Blocked", "dir", d, "obstacle", i, "at", l.World.Obstacles()[i].Bounds().Pos)
		}
		l.blocked = true
		return res
	}

	l.blocked = false
	l.World.Scroll(d, speed)
	res.Moved = true
	return res
}

func (l *Loop) transition(p Phase, d geom.Direction) {
	if p == l.phase && d == l.dir {
		return
	}
	if l.Logger != nil {
		l.Logger.Debug("Phase change", "from", l.phase, "to", p, "dir", d)
	}
	l.phase = p
	l.dir = d
	if p == PhaseIdle {
		l.blocked = false
	}
}
