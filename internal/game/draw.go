package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/tilewalk/internal/render"
	"chosenoffset.com/tilewalk/internal/world"
)

var (
	obstacleColor = color.NRGBA{R: 255, A: 90}
	hudBackdrop   = color.NRGBA{A: 160}
	hudText       = color.White
)

const (
	hudTextSize     = 14
	messageTextSize = 18
)

// Draw renders one frame. The order is fixed: background, obstacles, player,
// foreground, then overlays.
func (g *Game) Draw(screen render.Image) {
	w := g.Loop.World

	drawBody(screen, g.Images.Background, w.Background)
	if g.ShowObstacles {
		g.drawObstacles(screen)
	}
	g.Sprite.Draw(screen, g.Loop.Player.Facing, g.Loop.Player.Rect.Pos)
	drawBody(screen, g.Images.Foreground, w.Foreground)

	g.drawMessages(screen)
	if g.ShowHUD {
		g.drawHUD(screen)
	}
}

func drawBody(screen, img render.Image, body *world.Body) {
	if img == nil || body == nil {
		return
	}
	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Translate(body.Pos.X, body.Pos.Y)
	screen.DrawImage(img, opts)
}

func (g *Game) drawObstacles(screen render.Image) {
	sw, sh := float64(g.ScreenWidth), float64(g.ScreenHeight)
	for _, o := range g.Loop.World.ObstacleBodies() {
		r := o.Bounds()
		// Skip what is off screen
		if r.Right() < 0 || r.Bottom() < 0 || r.Pos.X > sw || r.Pos.Y > sh {
			continue
		}
		g.Renderer.FillRect(screen, float32(r.Pos.X), float32(r.Pos.Y), float32(r.W), float32(r.H), obstacleColor)
	}
}

func (g *Game) drawMessages(screen render.Image) {
	y := g.ScreenHeight - 40
	for i := len(g.Messages) - 1; i >= 0; i-- {
		msg := g.Messages[i]
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		tw, _ := g.Renderer.MeasureText(msg.Text, messageTextSize)
		g.Renderer.DrawText(screen, msg.Text, (g.ScreenWidth-tw)/2, y, color.NRGBA{255, 255, 255, alpha}, messageTextSize)
		y -= 24
	}
}

// HUDLines returns the debug readout for the last step.
func (g *Game) HUDLines() []string {
	off := g.Loop.World.Offset()
	state := g.Last.Phase.String()
	if g.Last.Phase == PhaseMoving {
		state += " " + g.Last.Dir.String()
		if g.Last.Blocked {
			state += " (blocked)"
		}
	}
	return []string{
		fmt.Sprintf("state: %s", state),
		fmt.Sprintf("speed: %.2f px", g.Last.Speed),
		fmt.Sprintf("offset: %.0f, %.0f", off.X, off.Y),
		fmt.Sprintf("obstacles: %d", len(g.Loop.World.Obstacles())),
		fmt.Sprintf("view: %dx%d", g.ScreenWidth, g.ScreenHeight),
	}
}

func (g *Game) drawHUD(screen render.Image) {
	lines := g.HUDLines()
	width := 0
	for _, l := range lines {
		tw, _ := g.Renderer.MeasureText(l, hudTextSize)
		width = max(width, tw)
	}
	lineHeight := hudTextSize + 4
	g.Renderer.FillRect(screen, 4, 4, float32(width+16), float32(len(lines)*lineHeight+12), hudBackdrop)
	for i, l := range lines {
		g.Renderer.DrawText(screen, l, 12, 10+i*lineHeight, hudText, hudTextSize)
	}
}
