package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the loop cleanly.
var ErrQuit = errors.New("quit requested")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. Game logic only sees these calls, so tests can swap in a
// recording fake instead of a GPU-backed image.
type Renderer interface {
	// Image operations
	NewImageFromImage(src image.Image) Image

	// Vector operations
	FillRect(dst Image, x, y, width, height float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, size float64)
	MeasureText(text string, size float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Sub-image extraction
	SubImage(r image.Rectangle) Image

	// Drawing operations
	DrawImage(src Image, opts *DrawImageOptions)
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	// Translate shifts the image by (tx, ty).
	Translate(tx, ty float64)

	// Apply transforms the point (x, y).
	Apply(x, y float64) (float64, float64)
}

// NewGeoM creates a new geometric transformation matrix. Backends replace it
// with their own matrix type; the default is a plain Translation.
var NewGeoM = func() GeoM {
	return &Translation{}
}

// Translation is a backend-free matrix that only translates, which is all the
// frame loop needs.
type Translation struct {
	TX, TY float64
}

// Translate shifts the image by (tx, ty).
func (m *Translation) Translate(tx, ty float64) {
	m.TX += tx
	m.TY += ty
}

// Apply transforms the point (x, y).
func (m *Translation) Apply(x, y float64) (float64, float64) {
	return x + m.TX, y + m.TY
}

// TouchID identifies one finger for the length of a touch.
type TouchID int

// InputManager handles input from the user (keyboard, mouse, touch).
type InputManager interface {
	IsKeyJustPressed(key Key) bool
	IsKeyJustReleased(key Key) bool

	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool
	IsMouseButtonJustReleased(button MouseButton) bool

	JustPressedTouchIDs() []TouchID
	IsTouchJustReleased(id TouchID) bool
	TouchPosition(id TouchID) (x, y int)
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the walker listens to
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyM      // Mute toggle
	KeyF3     // Debug overlay toggle
	KeyEscape // Quit
)

// MouseButton represents a mouse button.
type MouseButton int

// MouseButtonLeft is the only button the walker reads; a left drag steers.
const MouseButtonLeft MouseButton = 0

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends or returns ErrQuit.
	RunGame(game Game) error
}
