// Package assets loads the images a session draws.
package assets

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"

	"chosenoffset.com/tilewalk/internal/config"
	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/placeholders"
	"chosenoffset.com/tilewalk/internal/render"
	"chosenoffset.com/tilewalk/internal/world/tilegrid"
)

// Paths lists the image files of a session.
type Paths struct {
	Background string
	Foreground string // Optional
	Player     map[geom.Direction]string
}

// PathsFromConfig resolves the configured file names against the assets dir.
func PathsFromConfig(cfg *config.Config) Paths {
	return Paths{
		Background: cfg.AssetPath(cfg.Assets.Background),
		Foreground: cfg.AssetPath(cfg.Assets.Foreground),
		Player: map[geom.Direction]string{
			geom.DirUp:    cfg.AssetPath(cfg.Assets.PlayerUp),
			geom.DirDown:  cfg.AssetPath(cfg.Assets.PlayerDown),
			geom.DirLeft:  cfg.AssetPath(cfg.Assets.PlayerLeft),
			geom.DirRight: cfg.AssetPath(cfg.Assets.PlayerRight),
		},
	}
}

// Set holds the loaded images. Foreground is nil when none was configured.
type Set struct {
	Background render.Image
	Foreground render.Image
	Player     map[geom.Direction]render.Image
}

// Loader reads a Set through a ResourceLoader.
//
// With Placeholders set, a file that fails to load is replaced by generated
// art for Grid, and a warning is logged. Otherwise the first failure is
// returned.
type Loader struct {
	Resources    render.ResourceLoader
	Renderer     render.Renderer
	Logger       *log.Logger
	Placeholders bool

	Grid   tilegrid.Grid
	Layout tilegrid.Layout
	Frames int

	generated *placeholders.Set
}

// Load reads the background first, then the foreground and player sheets.
func (l *Loader) Load(paths Paths) (*Set, error) {
	set := &Set{Player: make(map[geom.Direction]render.Image, len(geom.Directions))}

	bg, err := l.load("background", paths.Background, func(s *placeholders.Set) image.Image { return s.Background })
	if err != nil {
		return nil, err
	}
	set.Background = bg

	if paths.Foreground != "" {
		fg, err := l.load("foreground", paths.Foreground, func(s *placeholders.Set) image.Image { return s.Foreground })
		if err != nil {
			return nil, err
		}
		set.Foreground = fg
	}

	for _, d := range geom.Directions {
		img, err := l.load("player "+d.String(), paths.Player[d], func(s *placeholders.Set) image.Image { return s.Players[d] })
		if err != nil {
			return nil, err
		}
		set.Player[d] = img
	}

	return set, nil
}

func (l *Loader) load(what, path string, fallback func(*placeholders.Set) image.Image) (render.Image, error) {
	var err error
	if path == "" {
		err = fmt.Errorf("no %s image configured", what)
	} else {
		var img render.Image
		img, err = l.Resources.LoadImage(path)
		if err == nil {
			l.logger().Debug("Loaded image", "kind", what, "path", path)
			return img, nil
		}
		err = fmt.Errorf("failed to load %s image %s: %w", what, path, err)
	}

	if !l.Placeholders || l.Renderer == nil {
		return nil, err
	}

	l.logger().Warn("Using placeholder image", "kind", what, "path", path, "error", err)
	if l.generated == nil {
		frames := l.Frames
		if frames <= 0 {
			frames = 1
		}
		l.generated = placeholders.Generate(l.Grid, l.Layout, frames)
	}
	return l.Renderer.NewImageFromImage(fallback(l.generated)), nil
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}
