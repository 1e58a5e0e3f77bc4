package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"chosenoffset.com/tilewalk/internal/assets"
	"chosenoffset.com/tilewalk/internal/config"
	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/input"
	"chosenoffset.com/tilewalk/internal/render"
	"chosenoffset.com/tilewalk/internal/sprite"
	"chosenoffset.com/tilewalk/internal/world"
	"chosenoffset.com/tilewalk/internal/world/tilegrid"
)

// Options carries everything New needs to build a session.
type Options struct {
	Config   *config.Config
	Map      *tilegrid.CollisionMap
	Renderer render.Renderer
	InputMgr render.InputManager
	Loader   render.ResourceLoader
	Music    Muter
	Logger   *log.Logger
	GOOS     string
}

// LayoutFromConfig returns the map layout configured in cfg.
func LayoutFromConfig(cfg *config.Config) tilegrid.Layout {
	return tilegrid.Layout{
		Columns:    cfg.Map.Columns,
		WallCode:   cfg.Map.WallCode,
		TileWidth:  cfg.Map.TileWidth,
		TileHeight: cfg.Map.TileHeight,
		Offset:     geom.Point{X: cfg.Map.OffsetX, Y: cfg.Map.OffsetY},
	}
}

// New loads the images, builds the world from the collision map, and places
// the player. The background is loaded before anything else, and nothing is
// built if it fails.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	layout := opts.Map.Layout(LayoutFromConfig(cfg))
	grid := tilegrid.Reshape(opts.Map.Collisions, layout.Columns)
	obstacles := tilegrid.Obstacles(grid, layout)
	logger.Info("Collision map loaded",
		"name", opts.Map.Name,
		"cells", len(opts.Map.Collisions),
		"rows", opts.Map.Rows(layout.Columns),
		"obstacles", len(obstacles))

	loader := &assets.Loader{
		Resources:    opts.Loader,
		Renderer:     opts.Renderer,
		Logger:       logger,
		Placeholders: cfg.Assets.Placeholders,
		Grid:         grid,
		Layout:       layout,
		Frames:       cfg.Player.Frames,
	}
	images, err := loader.Load(assets.PathsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	sheets := make(map[geom.Direction]sprite.Sheet, len(images.Player))
	for d, img := range images.Player {
		sheets[d] = sprite.Sheet{Image: img, Frames: cfg.Player.Frames}
	}
	anim, err := sprite.NewAnimated(sheets, cfg.Player.FrameHold)
	if err != nil {
		return nil, fmt.Errorf("failed to build player sprite: %w", err)
	}

	bg := layerBody(images.Background, layout.Offset)
	fg := layerBody(images.Foreground, layout.Offset)
	w := world.New(bg, fg, obstacles)

	facing, err := cfg.Player.StartFacing()
	if err != nil {
		return nil, fmt.Errorf("invalid player facing: %w", err)
	}
	pw, ph := anim.Size()
	player := world.NewPlayer(cfg.Window.Width, cfg.Window.Height, pw, ph)
	player.Facing = facing

	mode := cfg.Movement.Resolve(opts.GOOS)
	logger.Info("Session ready",
		"speed_mode", mode,
		"player", player.Rect.Pos,
		"view", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height))

	return &Game{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Loop: &Loop{
			Input:  input.New(),
			World:  w,
			Player: player,
			Speed:  SpeedFromConfig(cfg.Movement, opts.GOOS),
			Logger: logger,
		},
		Sprite:        anim,
		Images:        images,
		Renderer:      opts.Renderer,
		InputMgr:      opts.InputMgr,
		Music:         opts.Music,
		Logger:        logger,
		ShowObstacles: cfg.Debug.ShowObstacles,
		ShowHUD:       cfg.Debug.ShowHUD,
	}, nil
}

func layerBody(img render.Image, at geom.Point) *world.Body {
	if img == nil {
		return nil
	}
	w, h := img.Size()
	return world.NewBody(geom.Rect{Pos: at, W: float64(w), H: float64(h)})
}
