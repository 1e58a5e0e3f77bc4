// Package sprite draws the player from one horizontal strip per facing.
package sprite

import (
	"fmt"
	"image"

	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/render"
)

// Sheet is a horizontal strip of equally wide animation frames.
type Sheet struct {
	Image  render.Image
	Frames int
}

// FrameSize returns the size of one frame.
func (s Sheet) FrameSize() (w, h int) {
	iw, ih := s.Image.Size()
	return iw / s.Frames, ih
}

// Frame returns the sub-image for frame n.
func (s Sheet) Frame(n int) render.Image {
	w, h := s.FrameSize()
	b := s.Image.Bounds()
	x := b.Min.X + n*w
	return s.Image.SubImage(image.Rect(x, b.Min.Y, x+w, b.Min.Y+h))
}

// Animated is a directional sprite. The frame counter only runs while the
// owner is moving, and the frame it stopped on is kept when it halts.
type Animated struct {
	sheets map[geom.Direction]Sheet
	hold   int

	frame   int
	elapsed int
}

// NewAnimated builds a sprite from one sheet per direction. Every sheet must
// have the same frame count, and the down sheet is required since it sets the
// player's size.
func NewAnimated(sheets map[geom.Direction]Sheet, hold int) (*Animated, error) {
	down, ok := sheets[geom.DirDown]
	if !ok || down.Image == nil {
		return nil, fmt.Errorf("missing down-facing sheet")
	}
	if hold <= 0 {
		return nil, fmt.Errorf("invalid frame hold: %d", hold)
	}
	for d, s := range sheets {
		if s.Image == nil {
			return nil, fmt.Errorf("missing %s sheet image", d)
		}
		if s.Frames <= 0 {
			return nil, fmt.Errorf("invalid frame count for %s sheet: %d", d, s.Frames)
		}
		if s.Frames != down.Frames {
			return nil, fmt.Errorf("%s sheet has %d frames, down sheet has %d", d, s.Frames, down.Frames)
		}
	}
	return &Animated{sheets: sheets, hold: hold}, nil
}

// Size returns one frame of the down-facing sheet.
func (a *Animated) Size() (w, h float64) {
	fw, fh := a.sheets[geom.DirDown].FrameSize()
	return float64(fw), float64(fh)
}

// Frame returns the current frame index.
func (a *Animated) Frame() int { return a.frame }

// Advance runs one tick of the animation.
func (a *Animated) Advance(moving bool) {
	if !moving {
		return
	}
	frames := a.sheets[geom.DirDown].Frames
	if frames <= 1 {
		return
	}
	a.elapsed++
	if a.elapsed%a.hold == 0 {
		a.frame = (a.frame + 1) % frames
	}
}

// sheet picks the sheet for facing, falling back to down.
func (a *Animated) sheet(facing geom.Direction) Sheet {
	if s, ok := a.sheets[facing]; ok {
		return s
	}
	return a.sheets[geom.DirDown]
}

// Draw draws the current frame for facing with its top-left corner at pos.
func (a *Animated) Draw(dst render.Image, facing geom.Direction, pos geom.Point) {
	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Translate(pos.X, pos.Y)
	dst.DrawImage(a.sheet(facing).Frame(a.frame), opts)
}
