// Package tilegrid turns a flat collision array into a row-major grid and the
// world-space obstacle rectangles of its wall cells.
package tilegrid

import "chosenoffset.com/tilewalk/internal/core/geom"

const (
	// DefaultColumns is the row width of the bundled collision maps.
	DefaultColumns = 70
	// DefaultWallCode marks a blocking cell.
	DefaultWallCode = 1025
	// DefaultTileSize is the on-screen size of one map cell (12 px tiles at 400% zoom).
	DefaultTileSize = 48
)

// DefaultOffset places the map so the spawn point sits under the player.
var DefaultOffset = geom.Point{X: -776, Y: -600}

// Grid is a row-major grid of tile codes. Rows may differ in length only at the end.
type Grid [][]int

// Layout describes how grid cells map into world space.
type Layout struct {
	Columns    int
	WallCode   int
	TileWidth  float64
	TileHeight float64
	Offset     geom.Point
}

// DefaultLayout returns the layout used by the bundled maps.
func DefaultLayout() Layout {
	return Layout{
		Columns:    DefaultColumns,
		WallCode:   DefaultWallCode,
		TileWidth:  DefaultTileSize,
		TileHeight: DefaultTileSize,
		Offset:     DefaultOffset,
	}
}

// Reshape cuts flat into rows of columns cells. A short final row is kept as is.
func Reshape(flat []int, columns int) Grid {
	if columns <= 0 || len(flat) == 0 {
		return nil
	}
	grid := make(Grid, 0, (len(flat)+columns-1)/columns)
	for i := 0; i < len(flat); i += columns {
		end := min(i+columns, len(flat))
		grid = append(grid, flat[i:end:end])
	}
	return grid
}

// Obstacles emits one rectangle per wall cell, in row-major scan order.
func Obstacles(grid Grid, layout Layout) []geom.Rect {
	var out []geom.Rect
	for i, row := range grid {
		for j, code := range row {
			if code != layout.WallCode {
				continue
			}
			out = append(out, geom.NewRect(
				float64(j)*layout.TileWidth+layout.Offset.X,
				float64(i)*layout.TileHeight+layout.Offset.Y,
				layout.TileWidth,
				layout.TileHeight,
			))
		}
	}
	return out
}

// Build reshapes flat and returns its obstacles.
func Build(flat []int, layout Layout) []geom.Rect {
	return Obstacles(Reshape(flat, layout.Columns), layout)
}

// CountCode counts the cells equal to code.
func CountCode(flat []int, code int) int {
	n := 0
	for _, c := range flat {
		if c == code {
			n++
		}
	}
	return n
}

// Size returns the pixel size of the grid under layout, using the widest row.
func Size(grid Grid, layout Layout) (w, h float64) {
	cols := 0
	for _, row := range grid {
		cols = max(cols, len(row))
	}
	return float64(cols) * layout.TileWidth, float64(len(grid)) * layout.TileHeight
}
