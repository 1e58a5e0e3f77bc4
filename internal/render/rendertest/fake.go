// Package rendertest provides in-memory render implementations for tests.
package rendertest

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"chosenoffset.com/tilewalk/internal/render"
)

// Draw is one recorded draw call on an Image.
type Draw struct {
	Src    *Image          // Nil for FillRect and DrawText
	Region image.Rectangle // Source bounds that were drawn
	X, Y   float64         // Destination of the source's top-left corner
	Kind   string          // "image", "rect" or "text"
	Text   string
	Color  color.Color
}

// Image is a render.Image that records draw calls instead of rasterizing.
type Image struct {
	Name   string
	bounds image.Rectangle
	root   *Image

	Draws []Draw
}

// NewImage returns a named image of the given size.
func NewImage(name string, w, h int) *Image {
	img := &Image{Name: name, bounds: image.Rect(0, 0, w, h)}
	img.root = img
	return img
}

// Root returns the image a sub-image was cut from.
func (i *Image) Root() *Image { return i.root }

func (i *Image) Bounds() image.Rectangle { return i.bounds }

func (i *Image) Size() (int, int) { return i.bounds.Dx(), i.bounds.Dy() }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Name: i.Name, bounds: r.Intersect(i.bounds), root: i.root}
}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	s := src.(*Image)
	var x, y float64
	if opts != nil && opts.GeoM != nil {
		x, y = opts.GeoM.Apply(0, 0)
	}
	i.root.Draws = append(i.root.Draws, Draw{Kind: "image", Src: s.root, Region: s.bounds, X: x, Y: y})
}

// Sources returns the names of the images drawn, in order.
func (i *Image) Sources() []string {
	var names []string
	for _, d := range i.root.Draws {
		switch d.Kind {
		case "image":
			names = append(names, d.Src.Name)
		case "rect":
			names = append(names, "rect")
		case "text":
			names = append(names, "text")
		}
	}
	return names
}

// Renderer is a render.Renderer that records on rendertest Images.
type Renderer struct{}

func (Renderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	return NewImage("decoded", b.Dx(), b.Dy())
}

func (Renderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) {
	d := dst.(*Image).root
	d.Draws = append(d.Draws, Draw{Kind: "rect", X: float64(x), Y: float64(y), Region: image.Rect(0, 0, int(w), int(h)), Color: clr})
}

func (Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, size float64) {
	d := dst.(*Image).root
	d.Draws = append(d.Draws, Draw{Kind: "text", Text: text, X: float64(x), Y: float64(y), Color: clr})
}

func (Renderer) MeasureText(text string, size float64) (int, int) {
	return int(float64(len(text)) * size / 2), int(size)
}

// Loader is a render.ResourceLoader backed by a map of named sizes.
// Paths missing from the map fail with os.ErrNotExist.
type Loader struct {
	Sizes  map[string]image.Point
	Loaded []string
}

func (l *Loader) LoadImage(path string) (render.Image, error) {
	l.Loaded = append(l.Loaded, path)
	size, ok := l.Sizes[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return NewImage(path, size.X, size.Y), nil
}

// Input is a scripted render.InputManager. Tests set the fields before each
// Update and call Reset afterwards.
type Input struct {
	JustPressed  map[render.Key]bool
	JustReleased map[render.Key]bool

	CursorX, CursorY int
	MouseDown        bool
	MousePressed     bool
	MouseReleased    bool

	NewTouches      []render.TouchID
	ReleasedTouches map[render.TouchID]bool
	TouchPos        map[render.TouchID]image.Point
}

// NewInput returns an input with nothing pressed.
func NewInput() *Input {
	in := &Input{}
	in.Reset()
	return in
}

// Reset clears the one-frame edges but keeps positions.
func (in *Input) Reset() {
	if in.TouchPos == nil {
		in.TouchPos = map[render.TouchID]image.Point{}
	}
	in.JustPressed = map[render.Key]bool{}
	in.JustReleased = map[render.Key]bool{}
	in.ReleasedTouches = map[render.TouchID]bool{}
	in.NewTouches = nil
	in.MousePressed = false
	in.MouseReleased = false
}

// Press marks key as just pressed.
func (in *Input) Press(key render.Key) {
	in.JustPressed[key] = true
}

// Release marks key as just released.
func (in *Input) Release(key render.Key) {
	in.JustReleased[key] = true
}

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.JustPressed[key] }
func (in *Input) IsKeyJustReleased(key render.Key) bool { return in.JustReleased[key] }
func (in *Input) GetCursorPosition() (int, int) { return in.CursorX, in.CursorY }
func (in *Input) IsMouseButtonPressed(render.MouseButton) bool {
	return in.MouseDown
}
func (in *Input) IsMouseButtonJustPressed(render.MouseButton) bool {
	return in.MousePressed
}
func (in *Input) IsMouseButtonJustReleased(render.MouseButton) bool {
	return in.MouseReleased
}
func (in *Input) JustPressedTouchIDs() []render.TouchID { return in.NewTouches }
func (in *Input) IsTouchJustReleased(id render.TouchID) bool {
	return in.ReleasedTouches[id]
}
func (in *Input) TouchPosition(id render.TouchID) (int, int) {
	p := in.TouchPos[id]
	return p.X, p.Y
}
