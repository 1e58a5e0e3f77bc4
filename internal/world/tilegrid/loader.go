package tilegrid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// OffsetData is the JSON form of a world offset.
type OffsetData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CollisionMap is a collision file as stored on disk. Zero metadata fields fall back
// to the layout they are merged over.
type CollisionMap struct {
	Name       string      `json:"name"`
	Columns    int         `json:"columns"`
	WallCode   int         `json:"wall_code"`
	TileWidth  float64     `json:"tile_width"`
	TileHeight float64     `json:"tile_height"`
	Offset     *OffsetData `json:"offset"`
	Collisions []int       `json:"collisions"`
}

// Load reads a collision file from disk.
func Load(path string) (*CollisionMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collision file %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load collision file %s: %w", path, err)
	}
	return m, nil
}

// Parse accepts a JSON object, a bare JSON array, or a script that declares the
// array (`const collisions = [ ... ]`).
func Parse(data []byte) (*CollisionMap, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty collision data")
	}

	var m CollisionMap
	switch trimmed[0] {
	case '{':
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("failed to parse collision map: %w", err)
		}
	case '[':
		if err := json.Unmarshal(trimmed, &m.Collisions); err != nil {
			return nil, fmt.Errorf("failed to parse collision array: %w", err)
		}
	default:
		start := bytes.IndexByte(trimmed, '[')
		end := bytes.LastIndexByte(trimmed, ']')
		if start < 0 || end < start {
			return nil, fmt.Errorf("no collision array found")
		}
		if err := json.Unmarshal(trimmed[start:end+1], &m.Collisions); err != nil {
			return nil, fmt.Errorf("failed to parse collision array: %w", err)
		}
	}

	if err := validateCollisionMap(&m); err != nil {
		return nil, fmt.Errorf("invalid collision map: %w", err)
	}
	return &m, nil
}

func validateCollisionMap(m *CollisionMap) error {
	if len(m.Collisions) == 0 {
		return fmt.Errorf("collisions array is empty")
	}
	if m.Columns < 0 {
		return fmt.Errorf("invalid column count: %d", m.Columns)
	}
	if m.TileWidth < 0 || m.TileHeight < 0 {
		return fmt.Errorf("invalid tile size: %vx%v", m.TileWidth, m.TileHeight)
	}
	return nil
}

// Layout returns base with every metadata field the file sets applied over it.
func (m *CollisionMap) Layout(base Layout) Layout {
	if m.Columns > 0 {
		base.Columns = m.Columns
	}
	if m.WallCode != 0 {
		base.WallCode = m.WallCode
	}
	if m.TileWidth > 0 {
		base.TileWidth = m.TileWidth
	}
	if m.TileHeight > 0 {
		base.TileHeight = m.TileHeight
	}
	if m.Offset != nil {
		base.Offset.X = m.Offset.X
		base.Offset.Y = m.Offset.Y
	}
	return base
}

// Rows returns the number of grid rows the map reshapes into under columns.
func (m *CollisionMap) Rows(columns int) int {
	if columns <= 0 {
		return 0
	}
	return (len(m.Collisions) + columns - 1) / columns
}
