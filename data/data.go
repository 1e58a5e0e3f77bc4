// Package data embeds the default collision map.
package data

import (
	_ "embed"

	"chosenoffset.com/tilewalk/internal/world/tilegrid"
)

//go:embed collisions.json
var collisionsJSON []byte

// DefaultMap parses the embedded collision map.
func DefaultMap() (*tilegrid.CollisionMap, error) {
	return tilegrid.Parse(collisionsJSON)
}
