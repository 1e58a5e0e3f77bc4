// Package placeholders draws stand-in art for a collision map so the walker
// runs without the real tileset.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/world/tilegrid"
)

// Player frame size. A four-frame strip is 192x68.
const (
	FrameWidth  = 48
	FrameHeight = 68
)

// ColorPalette defines colors for the placeholder town
var ColorPalette = struct {
	Grass1   color.RGBA
	Grass2   color.RGBA
	Wall     color.RGBA
	WallEdge color.RGBA
	Canopy   color.RGBA

	Player        color.RGBA
	PlayerOutline color.RGBA
	Face          color.RGBA
	Legs          color.RGBA
}{
	Grass1:   color.RGBA{96, 160, 88, 255},
	Grass2:   color.RGBA{88, 150, 80, 255},
	Wall:     color.RGBA{130, 125, 115, 255},
	WallEdge: color.RGBA{90, 85, 78, 255},
	Canopy:   color.RGBA{40, 90, 40, 170}, // Translucent so the player shows through

	Player:        color.RGBA{220, 60, 60, 255},
	PlayerOutline: color.RGBA{60, 20, 20, 255},
	Face:          color.RGBA{250, 215, 180, 255},
	Legs:          color.RGBA{50, 50, 120, 255},
}

// Set is one generated set of images.
type Set struct {
	Background *image.RGBA
	Foreground *image.RGBA
	Players    map[geom.Direction]*image.RGBA
}

// Generate draws a background and foreground covering the grid, and one
// player strip per direction.
func Generate(grid tilegrid.Grid, layout tilegrid.Layout, frames int) *Set {
	set := &Set{
		Background: Background(grid, layout),
		Foreground: Foreground(grid, layout),
		Players:    make(map[geom.Direction]*image.RGBA, len(geom.Directions)),
	}
	for _, d := range geom.Directions {
		set.Players[d] = PlayerSheet(d, frames)
	}
	return set
}

func gridPixels(grid tilegrid.Grid, layout tilegrid.Layout) (w, h int) {
	fw, fh := tilegrid.Size(grid, layout)
	return int(fw), int(fh)
}

func cellRect(i, j int, layout tilegrid.Layout) image.Rectangle {
	tw, th := int(layout.TileWidth), int(layout.TileHeight)
	return image.Rect(j*tw, i*th, (j+1)*tw, (i+1)*th)
}

func isWall(grid tilegrid.Grid, i, j, code int) bool {
	if i < 0 || i >= len(grid) || j < 0 || j >= len(grid[i]) {
		return false
	}
	return grid[i][j] == code
}

// Background draws grass with a checker variation and a bordered block on
// every wall cell. Pixel (0,0) is the top-left corner of cell (0,0).
func Background(grid tilegrid.Grid, layout tilegrid.Layout) *image.RGBA {
	w, h := gridPixels(grid, layout)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, row := range grid {
		for j := range row {
			r := cellRect(i, j, layout)
			fill := ColorPalette.Grass1
			if (i+j)%2 == 1 {
				fill = ColorPalette.Grass2
			}
			draw.Draw(img, r, &image.Uniform{fill}, image.Point{}, draw.Src)
			if isWall(grid, i, j, layout.WallCode) {
				drawBordered(img, r, ColorPalette.Wall, ColorPalette.WallEdge, 2)
			}
		}
	}
	return img
}

// Foreground is transparent except for a canopy strip that hangs over the
// top half of each wall cell with open ground below it. Walking up to such a
// wall tucks the player's head under the strip.
func Foreground(grid tilegrid.Grid, layout tilegrid.Layout) *image.RGBA {
	w, h := gridPixels(grid, layout)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, row := range grid {
		for j := range row {
			if !isWall(grid, i, j, layout.WallCode) || isWall(grid, i+1, j, layout.WallCode) {
				continue
			}
			r := cellRect(i, j, layout)
			r.Max.Y = r.Min.Y + r.Dy()/2
			draw.Draw(img, r, &image.Uniform{ColorPalette.Canopy}, image.Point{}, draw.Over)
		}
	}
	return img
}

// PlayerSheet draws a horizontal strip of frames for one facing. Legs swap
// on alternate frames and the face marks the direction.
func PlayerSheet(facing geom.Direction, frames int) *image.RGBA {
	if frames <= 0 {
		frames = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, frames*FrameWidth, FrameHeight))

	for f := 0; f < frames; f++ {
		ox := f * FrameWidth

		// Head
		head := image.Rect(ox+12, 4, ox+36, 28)
		drawBordered(img, head, ColorPalette.Face, ColorPalette.PlayerOutline, 1)

		// Body
		body := image.Rect(ox+10, 28, ox+38, 52)
		drawBordered(img, body, ColorPalette.Player, ColorPalette.PlayerOutline, 1)

		// Legs
		lift := 0
		if f%2 == 1 {
			lift = 4
		}
		draw.Draw(img, image.Rect(ox+14, 52, ox+22, 66-lift), &image.Uniform{ColorPalette.Legs}, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(ox+26, 52, ox+34, 62+lift), &image.Uniform{ColorPalette.Legs}, image.Point{}, draw.Src)

		// Eyes
		eye := Darken(ColorPalette.PlayerOutline, 0.5)
		for _, p := range eyes(facing) {
			draw.Draw(img, image.Rect(ox+p.X, p.Y, ox+p.X+3, p.Y+3), &image.Uniform{eye}, image.Point{}, draw.Src)
		}
	}
	return img
}

func eyes(facing geom.Direction) []image.Point {
	switch facing {
	case geom.DirUp:
		return nil
	case geom.DirLeft:
		return []image.Point{{15, 13}}
	case geom.DirRight:
		return []image.Point{{30, 13}}
	}
	return []image.Point{{17, 13}, {28, 13}}
}

// drawBordered fills r and draws a border inside it
func drawBordered(img *image.RGBA, r image.Rectangle, fillColor, borderColor color.RGBA, borderWidth int) {
	draw.Draw(img, r, &image.Uniform{fillColor}, image.Point{}, draw.Src)

	for i := 0; i < borderWidth; i++ {
		// Top and bottom borders
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, r.Min.Y+i, borderColor)
			img.Set(x, r.Max.Y-1-i, borderColor)
		}
		// Left and right borders
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.Set(r.Min.X+i, y, borderColor)
			img.Set(r.Max.X-1-i, y, borderColor)
		}
	}
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveAll writes each image under dir using its map key as the file name.
// It returns the written paths in name order.
func SaveAll(dir string, files map[string]image.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	written := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := SavePNG(files[name], path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
