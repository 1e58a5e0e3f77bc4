// Package term runs the walker in a terminal. Each map tile is drawn as two
// columns by one row, walls as blocks and the player as an arrow.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/tilewalk/internal/config"
	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/game"
	"chosenoffset.com/tilewalk/internal/input"
	"chosenoffset.com/tilewalk/internal/world"
	"chosenoffset.com/tilewalk/internal/world/tilegrid"
)

const (
	// DefaultHoldTicks is how long a key counts as held after its last press.
	// Terminals report no key release, so a held key is seen as a press
	// followed by auto-repeats, and the first repeat can take half a second.
	DefaultHoldTicks = 32
	tickRate         = 16 * time.Millisecond // ~60 FPS
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	groundStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// App is a terminal session.
type App struct {
	screen tcell.Screen
	loop   *game.Loop
	logger *log.Logger

	cellW, cellH float64 // world pixels per terminal cell
	width        int
	height       int

	HoldTicks int
	hold      map[geom.Direction]int
	last      game.StepResult
	ticks     int
}

// New builds a session on an initialized screen.
func New(screen tcell.Screen, cfg *config.Config, m *tilegrid.CollisionMap, goos string, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	layout := m.Layout(game.LayoutFromConfig(cfg))
	if layout.TileWidth < 2 || layout.TileHeight < 1 {
		return nil, fmt.Errorf("tile size %vx%v is too small for the terminal", layout.TileWidth, layout.TileHeight)
	}
	grid := tilegrid.Reshape(m.Collisions, layout.Columns)
	obstacles := tilegrid.Obstacles(grid, layout)

	gw, gh := tilegrid.Size(grid, layout)
	ground := world.NewBody(geom.Rect{Pos: layout.Offset, W: gw, H: gh})

	facing, err := cfg.Player.StartFacing()
	if err != nil {
		return nil, fmt.Errorf("invalid player facing: %w", err)
	}

	a := &App{
		screen:    screen,
		logger:    logger,
		cellW:     layout.TileWidth / 2,
		cellH:     layout.TileHeight,
		HoldTicks: DefaultHoldTicks,
		hold:      make(map[geom.Direction]int, len(geom.Directions)),
	}
	a.width, a.height = screen.Size()

	vw, vh := a.viewport()
	player := world.NewPlayer(vw, vh, a.cellW*2, a.cellH)
	player.Facing = facing
	a.loop = &game.Loop{
		Input:  input.New(),
		World:  world.New(ground, nil, obstacles),
		Player: player,
		Speed:  game.SpeedFromConfig(cfg.Movement, goos),
		Logger: logger,
	}
	logger.Info("Terminal session ready",
		"cols", a.width, "rows", a.height,
		"obstacles", len(obstacles),
		"player", player.Rect.Pos)
	return a, nil
}

// Loop exposes the movement loop.
func (a *App) Loop() *game.Loop { return a.loop }

// viewport returns the map area in world pixels. The last row is the status line.
func (a *App) viewport() (int, int) {
	rows := max(a.height-1, 0)
	return int(float64(a.width) * a.cellW), int(float64(rows) * a.cellH)
}

// Run drives the session until ctx ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eventChan := make(chan tcell.Event, 100)
	go pumpEvents(ctx, a.screen, eventChan)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				a.logger.Info("Quit requested", "ticks", a.ticks)
				return nil
			}

		case <-ticker.C:
			a.Tick()
			a.Draw()
		}
	}
}

// poller is the part of tcell.Screen the event pump reads from.
type poller interface {
	PollEvent() tcell.Event
}

// pumpEvents forwards events from src to out until src is finalized or ctx
// ends. It never blocks on a full out once ctx is done.
func pumpEvents(ctx context.Context, src poller, out chan<- tcell.Event) {
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent feeds one terminal event into the input state. It returns
// false when the user asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		if ev.Rune() == 'q' {
			return false
		}
		if d := input.KeyDirection(ev.Rune()); d != geom.DirNone {
			a.loop.Input.KeyDown(d)
			a.hold[d] = a.HoldTicks
		}

	case *tcell.EventResize:
		a.width, a.height = ev.Size()
		a.screen.Sync()
		a.logger.Debug("Terminal resized", "cols", a.width, "rows", a.height)
	}
	return true
}

// Tick expires held keys and runs one movement step.
func (a *App) Tick() {
	a.ticks++
	for d, left := range a.hold {
		if left <= 1 {
			delete(a.hold, d)
			a.loop.Input.KeyUp(d)
			continue
		}
		a.hold[d] = left - 1
	}
	vw, vh := a.viewport()
	a.last = a.loop.Step(vw, vh)
}

// Draw renders the visible part of the map, the player and the status line.
func (a *App) Draw() {
	a.screen.Clear()
	rows := a.height - 1

	ground := a.loop.World.Background.Bounds()
	a.fill(ground, '·', groundStyle, rows)
	for _, o := range a.loop.World.ObstacleBodies() {
		a.fill(o.Bounds(), '█', wallStyle, rows)
	}
	a.fill(a.loop.Player.Bounds(), playerGlyph(a.loop.Player.Facing), playerStyle, rows)

	a.drawStatus(rows)
	a.screen.Show()
}

// fill paints every cell whose center lies inside r.
func (a *App) fill(r geom.Rect, ch rune, style tcell.Style, rows int) {
	x0 := max(int(math.Ceil(r.Pos.X/a.cellW-0.5)), 0)
	x1 := min(int(math.Ceil(r.Right()/a.cellW-0.5)), a.width)
	y0 := max(int(math.Ceil(r.Pos.Y/a.cellH-0.5)), 0)
	y1 := min(int(math.Ceil(r.Bottom()/a.cellH-0.5)), rows)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			a.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func playerGlyph(d geom.Direction) rune {
	switch d {
	case geom.DirUp:
		return '▲'
	case geom.DirLeft:
		return '◀'
	case geom.DirRight:
		return '▶'
	}
	return '▼'
}

func (a *App) drawStatus(row int) {
	if row < 0 {
		return
	}
	off := a.loop.World.Offset()
	state := a.last.Phase.String()
	if a.last.Phase == game.PhaseMoving {
		state += " " + a.last.Dir.String()
		if a.last.Blocked {
			state += " (blocked)"
		}
	}
	status := fmt.Sprintf(" %s | offset %.0f,%.0f | wasd move, q quit ", state, off.X, off.Y)
	for x := 0; x < a.width; x++ {
		ch := ' '
		if x < len(status) {
			ch = rune(status[x])
		}
		a.screen.SetContent(x, row, ch, nil, statusStyle)
	}
}
