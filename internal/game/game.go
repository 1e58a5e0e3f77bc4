package game

import (
	"image"

	"github.com/charmbracelet/log"

	"chosenoffset.com/tilewalk/internal/assets"
	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/input"
	"chosenoffset.com/tilewalk/internal/render"
	"chosenoffset.com/tilewalk/internal/sprite"
)

// movementKeys lists the walking keys in the order they are polled.
var movementKeys = [...]struct {
	key render.Key
	dir geom.Direction
}{
	{render.KeyW, geom.DirUp},
	{render.KeyA, geom.DirLeft},
	{render.KeyS, geom.DirDown},
	{render.KeyD, geom.DirRight},
}

// Game holds all session state and implements render.Game.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	Loop     *Loop
	Sprite   *sprite.Animated
	Images   *assets.Set
	Renderer render.Renderer
	InputMgr render.InputManager
	Music    Muter
	Logger   *log.Logger

	// Debug overlay
	ShowObstacles bool
	ShowHUD       bool

	// Active drag, from a finger or the left mouse button
	touchID    render.TouchID
	touching   bool
	mouseDown  bool
	mouseStart image.Point
	dragging   bool

	Messages   []Message
	Last       StepResult
	FrameCount int
}

// Update polls input, runs one movement step, and advances the walk cycle.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0
	g.FrameCount++
	g.updateMessages(dt)

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		g.Logger.Info("Quit requested", "frames", g.FrameCount)
		return render.ErrQuit
	}

	// Toggle debug overlay with F3
	if g.InputMgr.IsKeyJustPressed(render.KeyF3) {
		on := !(g.ShowObstacles || g.ShowHUD)
		g.ShowObstacles, g.ShowHUD = on, on
		if on {
			g.ShowMessage("Debug overlay on")
		} else {
			g.ShowMessage("Debug overlay off")
		}
	}

	// Toggle soundtrack with M
	if g.InputMgr.IsKeyJustPressed(render.KeyM) && g.Music != nil {
		if g.Music.ToggleMute() {
			g.ShowMessage("Music off")
		} else {
			g.ShowMessage("Music on")
		}
	}

	g.pollKeys()
	g.pollTouch()
	g.pollMouse()

	g.Last = g.Loop.Step(g.ScreenWidth, g.ScreenHeight)
	g.Sprite.Advance(g.Loop.Player.Moving)
	return nil
}

// pollKeys turns key edges into input events. Releases are applied before
// presses so a key tapped within one frame still sets the last key.
func (g *Game) pollKeys() {
	for _, mk := range movementKeys {
		if g.InputMgr.IsKeyJustReleased(mk.key) {
			g.Loop.Input.KeyUp(mk.dir)
		}
	}
	for _, mk := range movementKeys {
		if g.InputMgr.IsKeyJustPressed(mk.key) {
			g.Loop.Input.KeyDown(mk.dir)
		}
	}
}

// pollTouch follows the first finger down until it lifts.
func (g *Game) pollTouch() {
	if g.mouseDown {
		return
	}
	if !g.touching {
		ids := g.InputMgr.JustPressedTouchIDs()
		if len(ids) == 0 {
			return
		}
		g.touchID = ids[0]
		g.touching = true
		x, y := g.InputMgr.TouchPosition(g.touchID)
		g.Loop.Input.TouchStart(float64(x), float64(y))
		return
	}
	if g.InputMgr.IsTouchJustReleased(g.touchID) {
		g.touching = false
		g.Loop.Input.TouchEnd()
		return
	}
	x, y := g.InputMgr.TouchPosition(g.touchID)
	g.Loop.Input.TouchMove(float64(x), float64(y))
}

// pollMouse lets a left-button drag steer like a finger on desktop. A press
// only becomes a drag once the cursor leaves the dead zone, so a plain click
// leaves keyboard input alone.
func (g *Game) pollMouse() {
	if g.touching {
		return
	}
	if !g.mouseDown {
		if !g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
			return
		}
		g.mouseDown = true
		g.mouseStart.X, g.mouseStart.Y = g.InputMgr.GetCursorPosition()
		return
	}
	if g.InputMgr.IsMouseButtonJustReleased(render.MouseButtonLeft) || !g.InputMgr.IsMouseButtonPressed(render.MouseButtonLeft) {
		g.mouseDown = false
		if g.dragging {
			g.dragging = false
			g.Loop.Input.TouchEnd()
		}
		return
	}
	x, y := g.InputMgr.GetCursorPosition()
	if !g.dragging {
		d := image.Pt(x, y).Sub(g.mouseStart)
		if abs(d.X) <= input.TouchDeadZone && abs(d.Y) <= input.TouchDeadZone {
			return
		}
		g.dragging = true
		g.Loop.Input.TouchStart(float64(g.mouseStart.X), float64(g.mouseStart.Y))
	}
	g.Loop.Input.TouchMove(float64(x), float64(y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Layout follows the window size. Only the viewport changes; the world and
// the player anchor stay where they are.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.ScreenWidth || outsideHeight != g.ScreenHeight {
		g.Logger.Debug("Viewport resized", "width", outsideWidth, "height", outsideHeight)
		g.ScreenWidth, g.ScreenHeight = outsideWidth, outsideHeight
	}
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 2.0,
		MaxTime:  2.0,
	})
	g.Logger.Info("Message", "text", text)
}
