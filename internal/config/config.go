// Package config holds the tunable settings of a tilewalk session.
// Settings are loaded from a JSON file; anything the file omits keeps its default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"chosenoffset.com/tilewalk/internal/core/geom"
)

// Config holds all settings for a session
type Config struct {
	Window   WindowConfig   `json:"window"`
	Map      MapConfig      `json:"map"`
	Movement MovementConfig `json:"movement"`
	Player   PlayerConfig   `json:"player"`
	Assets   AssetsConfig   `json:"assets"`
	Audio    AudioConfig    `json:"audio"`
	Debug    DebugConfig    `json:"debug"`
}

// WindowConfig describes the initial window
type WindowConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	Resizable bool   `json:"resizable"`
}

// MapConfig describes where the collision data comes from and how it is laid out.
//
// The layout fields are fallbacks. A collision file that carries its own
// metadata (columns, wall code, tile size or offset) overrides the matching
// field here, so these values only apply to bare arrays, script files, and
// JSON maps that leave a field out. The embedded default map sets all of them.
type MapConfig struct {
	CollisionsPath string  `json:"collisions_path"` // Empty means the embedded default map
	Columns        int     `json:"columns"`         // Cells per row of the flat array
	WallCode       int     `json:"wall_code"`       // Tile code that blocks movement
	TileWidth      float64 `json:"tile_width"`      // Rendered cell width in pixels
	TileHeight     float64 `json:"tile_height"`     // Rendered cell height in pixels
	OffsetX        float64 `json:"offset_x"`        // World position of cell (0,0)
	OffsetY        float64 `json:"offset_y"`
}

// SpeedMode selects how the per-frame step is computed.
type SpeedMode string

const (
	SpeedAuto       SpeedMode = "auto"       // Responsive on touch platforms, fixed elsewhere
	SpeedFixed      SpeedMode = "fixed"      // Constant pixels per frame
	SpeedResponsive SpeedMode = "responsive" // Proportional to the smaller viewport side
)

// MovementConfig defines movement speed
type MovementConfig struct {
	Mode             SpeedMode `json:"mode"`
	FixedSpeed       float64   `json:"fixed_speed"`       // Pixels per frame for fixed mode
	ResponsiveFactor float64   `json:"responsive_factor"` // Fraction of min(width, height) per frame
}

// PlayerConfig defines the player sprite sheets
type PlayerConfig struct {
	Frames    int    `json:"frames"`     // Frames per directional sheet
	FrameHold int    `json:"frame_hold"` // Ticks each frame stays on screen while walking
	Facing    string `json:"facing"`     // Direction the player faces before the first step
}

// StartFacing parses Facing. Only the four real directions are accepted.
func (p PlayerConfig) StartFacing() (geom.Direction, error) {
	d, err := geom.ParseDirection(p.Facing)
	if err != nil {
		return geom.DirNone, err
	}
	if d == geom.DirNone {
		return geom.DirNone, fmt.Errorf("player must face a direction, got %q", p.Facing)
	}
	return d, nil
}

// AssetsConfig lists image and audio files, relative to Dir
type AssetsConfig struct {
	Dir          string `json:"dir"`
	Background   string `json:"background"`
	Foreground   string `json:"foreground"`
	PlayerUp     string `json:"player_up"`
	PlayerDown   string `json:"player_down"`
	PlayerLeft   string `json:"player_left"`
	PlayerRight  string `json:"player_right"`
	Music        string `json:"music"`
	Placeholders bool   `json:"placeholders"` // Generate missing images instead of failing
}

// AudioConfig controls the soundtrack
type AudioConfig struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"` // Relative volume in halvings; 0 is unchanged, -1 is half

	// FallbackTune plays a generated tune when the soundtrack file cannot be
	// played. Off means a failed soundtrack is silence.
	FallbackTune bool `json:"fallback_tune"`
}

// DebugConfig toggles developer overlays
type DebugConfig struct {
	ShowObstacles bool   `json:"show_obstacles"`
	ShowHUD       bool   `json:"show_hud"`
	LogLevel      string `json:"log_level"`
}

// DefaultConfig returns the settings of the bundled demo
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1024,
			Height:    576,
			Title:     "tilewalk - WASD to move",
			Resizable: true,
		},
		Map: MapConfig{
			Columns:    70,
			WallCode:   1025,
			TileWidth:  48,
			TileHeight: 48,
			OffsetX:    -776,
			OffsetY:    -600,
		},
		Movement: MovementConfig{
			Mode:             SpeedAuto,
			FixedSpeed:       3,
			ResponsiveFactor: 0.005,
		},
		Player: PlayerConfig{
			Frames:    4,
			FrameHold: 10,
			Facing:    "down",
		},
		Assets: AssetsConfig{
			Dir:         "img",
			Background:  "PelletTown.png",
			Foreground:  "foregroundObjects.png",
			PlayerUp:    "playerUp.png",
			PlayerDown:  "playerDown.png",
			PlayerLeft:  "playerLeft.png",
			PlayerRight: "playerRight.png",
			Music:       "music.wav",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  -1,
		},
		Debug: DebugConfig{
			LogLevel: "info",
		},
	}
}

// LoadConfig loads settings from a JSON file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks values that would break the frame loop
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Map.Columns <= 0 {
		return fmt.Errorf("invalid column count: %d", c.Map.Columns)
	}
	if c.Map.TileWidth <= 0 || c.Map.TileHeight <= 0 {
		return fmt.Errorf("invalid tile size: %vx%v", c.Map.TileWidth, c.Map.TileHeight)
	}
	switch c.Movement.Mode {
	case SpeedAuto, SpeedFixed, SpeedResponsive:
	default:
		return fmt.Errorf("unknown movement mode %q", c.Movement.Mode)
	}
	if c.Movement.FixedSpeed <= 0 {
		return fmt.Errorf("fixed speed must be positive, got %v", c.Movement.FixedSpeed)
	}
	if c.Movement.ResponsiveFactor <= 0 {
		return fmt.Errorf("responsive factor must be positive, got %v", c.Movement.ResponsiveFactor)
	}
	if c.Player.Frames <= 0 {
		return fmt.Errorf("player frames must be positive, got %d", c.Player.Frames)
	}
	if c.Player.FrameHold <= 0 {
		return fmt.Errorf("frame hold must be positive, got %d", c.Player.FrameHold)
	}
	if _, err := c.Player.StartFacing(); err != nil {
		return err
	}
	if c.Assets.Background == "" {
		return fmt.Errorf("background image is required")
	}
	return nil
}

// Resolve turns auto into a concrete mode for the given GOOS.
func (m MovementConfig) Resolve(goos string) SpeedMode {
	if m.Mode != SpeedAuto {
		return m.Mode
	}
	switch goos {
	case "android", "ios":
		return SpeedResponsive
	}
	return SpeedFixed
}

// AssetPath joins name onto the assets directory. Empty names stay empty.
func (c *Config) AssetPath(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) || c.Assets.Dir == "" {
		return name
	}
	return filepath.Join(c.Assets.Dir, name)
}
