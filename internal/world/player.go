package world

import "chosenoffset.com/tilewalk/internal/core/geom"

// Player is the on-screen actor. Its rectangle never moves; the world does.
type Player struct {
	Rect   geom.Rect
	Facing geom.Direction
	Moving bool
}

// NewPlayer places a player of size w x h at the anchor for a viewport of
// viewW x viewH, facing down.
func NewPlayer(viewW, viewH int, w, h float64) *Player {
	anchor := PlayerAnchor(viewW, viewH)
	return &Player{
		Rect:   geom.Rect{Pos: anchor, W: w, H: h},
		Facing: geom.DirDown,
	}
}

// PlayerAnchor is the fixed screen position of the player's top-left corner: a
// quarter across and a third down, nudged so the default map's spawn lines up.
func PlayerAnchor(viewW, viewH int) geom.Point {
	return geom.Point{
		X: float64(viewW)/4 - 32,
		Y: float64(viewH)/3 - 1,
	}
}

// Bounds implements geom.Rectangle.
func (p *Player) Bounds() geom.Rect {
	return p.Rect
}
