package assets

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"chosenoffset.com/tilewalk/internal/config"
	"chosenoffset.com/tilewalk/internal/core/geom"
	"chosenoffset.com/tilewalk/internal/render/rendertest"
	"chosenoffset.com/tilewalk/internal/world/tilegrid"
)

func testPaths() Paths {
	return Paths{
		Background: "bg.png",
		Foreground: "fg.png",
		Player: map[geom.Direction]string{
			geom.DirUp:    "up.png",
			geom.DirDown:  "down.png",
			geom.DirLeft:  "left.png",
			geom.DirRight: "right.png",
		},
	}
}

func allSizes() map[string]image.Point {
	return map[string]image.Point{
		"bg.png":    {3360, 1920},
		"fg.png":    {3360, 1920},
		"up.png":    {192, 68},
		"down.png":  {192, 68},
		"left.png":  {192, 68},
		"right.png": {192, 68},
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestLoadBackgroundFirst(t *testing.T) {
	res := &rendertest.Loader{Sizes: allSizes()}
	l := &Loader{Resources: res, Logger: quietLogger()}

	set, err := l.Load(testPaths())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Loaded) == 0 || res.Loaded[0] != "bg.png" {
		t.Fatalf("load order = %v, background must be first", res.Loaded)
	}
	if set.Foreground == nil || len(set.Player) != 4 {
		t.Fatalf("incomplete set: %+v", set)
	}
}

func TestBackgroundFailureStopsLoading(t *testing.T) {
	sizes := allSizes()
	delete(sizes, "bg.png")
	res := &rendertest.Loader{Sizes: sizes}
	l := &Loader{Resources: res, Logger: quietLogger()}

	_, err := l.Load(testPaths())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap the loader error, got %v", err)
	}
	if len(res.Loaded) != 1 {
		t.Fatalf("nothing should load after the background fails, loaded %v", res.Loaded)
	}
}

func TestPlayerFailureIsFatalWithoutPlaceholders(t *testing.T) {
	sizes := allSizes()
	delete(sizes, "left.png")
	l := &Loader{Resources: &rendertest.Loader{Sizes: sizes}, Logger: quietLogger()}
	if _, err := l.Load(testPaths()); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}

func TestPlaceholdersReplaceMissingFiles(t *testing.T) {
	layout := tilegrid.DefaultLayout()
	layout.Columns = 4
	grid := tilegrid.Reshape([]int{0, 0, layout.WallCode, 0}, layout.Columns)

	l := &Loader{
		Resources:    &rendertest.Loader{Sizes: map[string]image.Point{"fg.png": {10, 10}}},
		Renderer:     rendertest.Renderer{},
		Logger:       quietLogger(),
		Placeholders: true,
		Grid:         grid,
		Layout:       layout,
		Frames:       4,
	}
	set, err := l.Load(testPaths())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w, h := set.Background.Size(); w != 4*48 || h != 48 {
		t.Errorf("placeholder background = %dx%d", w, h)
	}
	if w, _ := set.Player[geom.DirDown].Size(); w != 4*48 {
		t.Errorf("placeholder sheet width = %d", w)
	}
	if w, _ := set.Foreground.Size(); w != 10 {
		t.Errorf("existing foreground should load from disk, got width %d", w)
	}
}

func TestEmptyForegroundIsOptional(t *testing.T) {
	paths := testPaths()
	paths.Foreground = ""
	l := &Loader{Resources: &rendertest.Loader{Sizes: allSizes()}, Logger: quietLogger()}
	set, err := l.Load(paths)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Foreground != nil {
		t.Fatal("foreground should be nil when not configured")
	}
}

func TestPathsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Assets.Dir = "art"
	p := PathsFromConfig(cfg)
	if p.Background != filepath.Join("art", "PelletTown.png") {
		t.Errorf("background path = %q", p.Background)
	}
	if p.Player[geom.DirRight] != filepath.Join("art", "playerRight.png") {
		t.Errorf("right sheet path = %q", p.Player[geom.DirRight])
	}
}
